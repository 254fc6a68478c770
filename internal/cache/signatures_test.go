package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"udwallet/internal/cache"
	"udwallet/internal/domain"
)

func newSignatures(t *testing.T, now time.Time) *cache.SignaturesStorage {
	t.Helper()
	s, err := cache.NewSignaturesStorage(newDeps(t))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s.WithClock(func() time.Time { return now })
}

func TestSignaturesStorage_ProfileSignature(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSignatures(t, now)

	_, err := s.GetUserDomainProfileSignature("a.x")
	assert.ErrorIs(t, err, cache.ErrSignatureNotFound)

	require.NoError(t, s.Save(domain.TimedSignature{Domain: "a.x", Signature: "old", Expires: now.Add(-time.Minute)}))
	_, err = s.GetUserDomainProfileSignature("a.x")
	assert.ErrorIs(t, err, cache.ErrSignatureFoundOnlyExpired)

	require.NoError(t, s.Save(domain.TimedSignature{Domain: "a.x", Signature: "soon", Expires: now.Add(time.Hour)}))
	require.NoError(t, s.Save(domain.TimedSignature{Domain: "A.X", Signature: "late", Expires: now.Add(2 * time.Hour)}))
	require.NoError(t, s.Save(domain.TimedSignature{Domain: "b.x", Signature: "other", Expires: now.Add(3 * time.Hour)}))

	sig, err := s.GetUserDomainProfileSignature("a.x")
	require.NoError(t, err)
	assert.Equal(t, "late", sig.Signature)
}

func TestSignaturesStorage_SaveReplacesIdentical(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSignatures(t, now)
	require.NoError(t, s.Save(domain.TimedSignature{Domain: "a.x", Signature: "s", Expires: now.Add(time.Hour)}))
	require.NoError(t, s.Save(domain.TimedSignature{Domain: "a.x", Signature: "s", Expires: now.Add(2 * time.Hour)}))

	all := s.GetAll()
	require.Len(t, all, 1)
	assert.True(t, all[0].Expires.Equal(now.Add(2*time.Hour)))
}

func TestSignaturesStorage_RevokeExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newSignatures(t, now)
	require.NoError(t, s.Save(domain.TimedSignature{Domain: "a.x", Signature: "1", Expires: now}))
	require.NoError(t, s.Save(domain.TimedSignature{Domain: "b.x", Signature: "2", Expires: now.Add(-time.Hour)}))
	require.NoError(t, s.Save(domain.TimedSignature{Domain: "c.x", Signature: "3", Expires: now.Add(time.Hour)}))

	n, err := s.RevokeExpired()
	require.NoError(t, err)
	assert.Equal(t, 2, n, "a signature expiring exactly now is expired")

	all := s.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "c.x", all[0].Domain)

	n, err = s.RevokeExpired()
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.Revoke("C.x"))
	assert.Empty(t, s.GetAll())
}
