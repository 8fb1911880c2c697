package afl

import "errors"

// Closed error set surfaced to callers. Per-endpoint failures inside the
// candidate loop are swallowed; only the final failure maps onto one of
// these. Match with errors.Is.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrCredentialStore    = errors.New("credential store unavailable")
	ErrNetwork            = errors.New("network error")
	ErrParse              = errors.New("response parse failed")
	ErrInvalidResponse    = errors.New("invalid response")
	ErrRateLimited        = errors.New("rate limited")
)
