// Package errors provides the error taxonomy shared by promptkit nodes,
// providers and transports.
//
// Every failure is an [AppError] carrying a machine-readable [ErrorCode].
// Nodes never abort the host: they turn any error into an in-band text
// result with [Text].
package errors
