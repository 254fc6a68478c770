package cache

import (
	"errors"
	"fmt"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"udwallet/internal/store"
	"udwallet/internal/util/memzero"
)

const (
	passwordHashKey = "CURRENT_PASSWORD_HASH"

	// minPasswordLength is the minimum number of characters of a backup password.
	minPasswordLength = 12
)

// PasswordStorage keeps the bcrypt hash of the current backup password.
// Writes go through the store's worker like every other preference store.
type PasswordStorage struct {
	prefs  store.Preferences
	cost   int
	worker *store.Worker
	logger *zap.Logger
}

// NewPasswordStorage returns the password store. A zero cost selects
// bcrypt.DefaultCost.
func NewPasswordStorage(deps Deps, cost int) (*PasswordStorage, error) {
	if err := deps.Registry.ClaimPreference(passwordHashKey); err != nil {
		return nil, err
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordStorage{
		prefs:  deps.Prefs,
		cost:   cost,
		worker: store.NewWorker(),
		logger: deps.logger("password"),
	}, nil
}

// SetPassword hashes password and stores it as the current one.
func (s *PasswordStorage) SetPassword(password string) error {
	if !isSecurePassword(password) {
		return ErrWeakPassword
	}
	pw := []byte(password)
	defer memzero.Zero(pw)
	hash, err := bcrypt.GenerateFromPassword(pw, s.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.worker.Do(func() error {
		if err := s.prefs.Set(passwordHashKey, hash); err != nil {
			s.logger.Error("storing password hash failed", zap.Error(err))
			return fmt.Errorf("%w: %w", store.ErrWriteFailed, err)
		}
		return nil
	})
}

// Hash returns the stored bcrypt hash.
func (s *PasswordStorage) Hash() (string, error) {
	b, ok, err := s.prefs.Get(passwordHashKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", store.ErrReadFailed, err)
	}
	if !ok {
		return "", ErrPasswordNotSet
	}
	return string(b), nil
}

// IsSet reports whether a password has been stored.
func (s *PasswordStorage) IsSet() bool {
	_, err := s.Hash()
	return err == nil
}

// Validate checks password against the stored hash.
func (s *PasswordStorage) Validate(password string) error {
	hash, err := s.Hash()
	if err != nil {
		return err
	}
	pw := []byte(password)
	defer memzero.Zero(pw)
	err = bcrypt.CompareHashAndPassword([]byte(hash), pw)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("comparing password: %w", err)
	}
}

// Clear forgets the stored password.
func (s *PasswordStorage) Clear() error {
	return s.worker.Do(func() error { return s.prefs.Delete(passwordHashKey) })
}

// Close stops the worker after queued writes finish.
func (s *PasswordStorage) Close() { s.worker.Close() }

// isSecurePassword enforces a basic strength policy.
func isSecurePassword(password string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len([]rune(password)) < minPasswordLength {
		return false
	}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
