package insight

import "errors"

// Provider failure taxonomy. All of these trigger the same local fallback in
// the service; the distinction exists for diagnostics, never for control flow
// visible to callers. None of them are ever surfaced outside this package.
var (
	// ErrTimeout means the provider call exceeded its configured deadline
	// and was cancelled.
	ErrTimeout = errors.New("ai provider timeout")

	// ErrRateLimited means the provider rejected the call with HTTP 429.
	ErrRateLimited = errors.New("ai provider rate limited")

	// ErrNetwork covers transport failures and non-429 HTTP error statuses.
	ErrNetwork = errors.New("ai provider network error")

	// ErrMalformed means the provider responded but the vendor envelope did
	// not have the expected shape.
	ErrMalformed = errors.New("ai provider malformed response")
)
