package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"udwallet/internal/domain"
	"udwallet/internal/store"
)

const (
	signaturesKey           = "persisted_signatures"
	signaturesSchemaVersion = 1
)

// SignaturesStorage keeps timed profile signatures in the local vault.
type SignaturesStorage struct {
	storage *store.SecurePersistedStorage[domain.TimedSignature]
	now     func() time.Time
	logger  *zap.Logger
}

// NewSignaturesStorage returns the signature cache.
func NewSignaturesStorage(deps Deps) (*SignaturesStorage, error) {
	logger := deps.logger("signatures")
	s, err := store.NewSecurePersistedStorage[domain.TimedSignature](
		deps.LocalVault, deps.Registry, signaturesKey, signaturesSchemaVersion, logger, deps.Metrics,
	)
	if err != nil {
		return nil, err
	}
	return &SignaturesStorage{storage: s, now: time.Now, logger: logger}, nil
}

// WithClock replaces the time source; used by tests.
func (s *SignaturesStorage) WithClock(now func() time.Time) *SignaturesStorage {
	s.now = now
	return s
}

// GetAll returns every stored signature, expired ones included.
func (s *SignaturesStorage) GetAll() []domain.TimedSignature {
	return s.storage.GetElements()
}

// Save stores signature. An identical signature for the same domain is replaced.
func (s *SignaturesStorage) Save(signature domain.TimedSignature) error {
	key := domain.NormalizeDomainName(signature.Domain)
	return s.storage.Update(func(cur []domain.TimedSignature) []domain.TimedSignature {
		out := make([]domain.TimedSignature, 0, len(cur)+1)
		for _, sig := range cur {
			if domain.NormalizeDomainName(sig.Domain) == key && sig.Signature == signature.Signature {
				continue
			}
			out = append(out, sig)
		}
		return append(out, signature)
	})
}

// GetUserDomainProfileSignature returns the valid signature for domain that
// expires last. Expired signatures are filtered out before matching.
func (s *SignaturesStorage) GetUserDomainProfileSignature(name string) (domain.TimedSignature, error) {
	key := domain.NormalizeDomainName(name)
	now := s.now()

	found := false
	var best domain.TimedSignature
	valid := false
	for _, sig := range s.storage.GetElements() {
		if domain.NormalizeDomainName(sig.Domain) != key {
			continue
		}
		found = true
		if sig.IsExpired(now) {
			continue
		}
		if !valid || sig.Expires.After(best.Expires) {
			best = sig
			valid = true
		}
	}
	switch {
	case valid:
		return best, nil
	case found:
		return domain.TimedSignature{}, fmt.Errorf("%w: %s", ErrSignatureFoundOnlyExpired, name)
	default:
		return domain.TimedSignature{}, fmt.Errorf("%w: %s", ErrSignatureNotFound, name)
	}
}

// RevokeExpired purges every expired signature in one write and returns how
// many were removed.
func (s *SignaturesStorage) RevokeExpired() (int, error) {
	now := s.now()
	removed := 0
	err := s.storage.Update(func(cur []domain.TimedSignature) []domain.TimedSignature {
		out := make([]domain.TimedSignature, 0, len(cur))
		for _, sig := range cur {
			if sig.IsExpired(now) {
				removed++
				continue
			}
			out = append(out, sig)
		}
		return out
	})
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("revoked expired signatures", zap.Int("count", removed))
	}
	return removed, nil
}

// Revoke removes every signature for domain.
func (s *SignaturesStorage) Revoke(name string) error {
	key := domain.NormalizeDomainName(name)
	return s.storage.Update(func(cur []domain.TimedSignature) []domain.TimedSignature {
		out := make([]domain.TimedSignature, 0, len(cur))
		for _, sig := range cur {
			if domain.NormalizeDomainName(sig.Domain) != key {
				out = append(out, sig)
			}
		}
		return out
	})
}

// Clear removes all signatures.
func (s *SignaturesStorage) Clear() error { return s.storage.Clear() }

// Close stops the underlying worker.
func (s *SignaturesStorage) Close() { s.storage.Close() }

var _ domain.SignatureStore = (*SignaturesStorage)(nil)
