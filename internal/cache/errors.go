package cache

import (
	"errors"
	"fmt"
)

var (
	// ErrWritingFailed is returned by DomainsStorage.StoreDomains when the cache could not be written.
	ErrWritingFailed = errors.New("writing domains cache failed")

	ErrWalletNotFound     = errors.New("wallet not found")
	ErrPrivateKeyNotFound = errors.New("private key not found")

	// ErrSignatureNotFound means no signature was ever stored for the domain.
	ErrSignatureNotFound = errors.New("signature not found")
	// ErrSignatureFoundOnlyExpired means signatures exist for the domain but all have expired.
	ErrSignatureFoundOnlyExpired = errors.New("only expired signatures found")

	ErrPasswordNotSet   = errors.New("password not set")
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrWeakPassword is returned when a new password fails the strength policy.
	ErrWeakPassword = fmt.Errorf(
		"password is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPasswordLength,
	)
)
