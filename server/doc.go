// Package server exposes the workflow nodes over HTTP using Gin behind an
// h2c handler, so HTTP/2 clients work without TLS.
//
// # Middleware
//
// Server-level, wrapping every request (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation into log context
//   - Tracing: one span and request metrics per request
//   - CORS: cross-origin headers for browser-based workflow editors
//   - BodySizeLimit: request body cap
//   - RequestLogger: method, path, status and duration
//
// On the /v1 group: Auth (HS256 bearer tokens, when a secret is set) and
// RateLimit (when server.rate_limit is positive).
//
// # Endpoints
//
//   - GET /health, GET /version
//   - GET /v1/nodes, GET /v1/models
//   - POST /v1/nodes/single-chat, /v1/nodes/multi-chat, /v1/nodes/prompt-extractor
//   - DELETE /v1/nodes/multi-chat/session
//
// Node failures are reported in band: the response is 200, the node outputs
// carry "Error: ..." text and the envelope's error field holds the code.
package server
