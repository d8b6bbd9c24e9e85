package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Configuration errors are detected before any provider call.
const (
	// ErrCodeConfiguration indicates a missing credential, unknown model or
	// unknown domain tag.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeInvalidInput indicates a request parameter is out of range.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Transport errors come from a provider's network call.
const (
	// ErrCodeTransport indicates a network or HTTP failure.
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"
	// ErrCodeTimeout indicates the backend did not answer in time.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the backend rejected the call for rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeUnauthorized indicates the backend rejected the credential.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeProvider indicates the backend answered with an error payload
	// or with no usable content.
	ErrCodeProvider ErrorCode = "PROVIDER_ERROR"
)

// ErrCodeInternal indicates a bug or an unexpected panic.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

// transportCodes are the codes reported under the TransportError kind.
var transportCodes = map[ErrorCode]bool{
	ErrCodeTransport:    true,
	ErrCodeTimeout:      true,
	ErrCodeRateLimited:  true,
	ErrCodeUnauthorized: true,
	ErrCodeProvider:     true,
}

// IsTransportCode reports whether code belongs to the transport family.
func IsTransportCode(code ErrorCode) bool {
	return transportCodes[code]
}
