// Package component manages the lifecycle of the long-running parts of a
// promptkit process: the HTTP server, telemetry exporters and the LLM
// backends whose reachability feeds the health report.
//
// Components start in registration order and stop in reverse. A component
// that also implements observability.HealthChecker contributes to
// Registry.Health.
package component
