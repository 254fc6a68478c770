package store

import "errors"

var (
	// ErrNoDirectory is returned when a Directory has no configured path.
	ErrNoDirectory = errors.New("no directory configured")
	// ErrFileNotFound means the value was never written. Callers usually treat it as empty.
	ErrFileNotFound = errors.New("file not found")
	ErrReadFailed   = errors.New("read failed")
	ErrDecodeFailed = errors.New("decode failed")
	ErrWriteFailed  = errors.New("write failed")
	ErrEncodeFailed = errors.New("encode failed")

	// ErrAlreadyRegistered is returned when two stores claim the same backing name.
	ErrAlreadyRegistered = errors.New("storage name already registered")
	// ErrWorkerClosed is returned for work submitted after a store was closed.
	ErrWorkerClosed = errors.New("storage worker closed")
	// ErrWrongPassphrase is returned when a vault cannot be opened with the given passphrase.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted vault")
)
