package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"udwallet/internal/cache"
	"udwallet/internal/store"
)

func TestPasswordStorage(t *testing.T) {
	s, err := cache.NewPasswordStorage(newDeps(t), bcrypt.MinCost)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	assert.False(t, s.IsSet())
	assert.ErrorIs(t, s.Validate("anything"), cache.ErrPasswordNotSet)

	assert.ErrorIs(t, s.SetPassword("short"), cache.ErrWeakPassword)
	assert.ErrorIs(t, s.SetPassword("alllowercase-but-long-1"), cache.ErrWeakPassword)

	const good = "Correct-Horse-9"
	require.NoError(t, s.SetPassword(good))
	assert.True(t, s.IsSet())
	assert.NoError(t, s.Validate(good))
	assert.ErrorIs(t, s.Validate("Wrong-Horse-9"), cache.ErrPasswordMismatch)

	hash, err := s.Hash()
	require.NoError(t, err)
	assert.NotContains(t, hash, good)

	require.NoError(t, s.Clear())
	assert.False(t, s.IsSet())
}

func TestPasswordStorage_WritesGoThroughWorker(t *testing.T) {
	deps := newDeps(t)
	s, err := cache.NewPasswordStorage(deps, bcrypt.MinCost)
	require.NoError(t, err)

	const pw = "Correct-Horse-9"
	require.NoError(t, s.SetPassword(pw))
	s.Close()

	assert.ErrorIs(t, s.SetPassword(pw), store.ErrWorkerClosed)
	assert.ErrorIs(t, s.Clear(), store.ErrWorkerClosed)
	assert.NoError(t, s.Validate(pw), "reads still work after close")
}
