package locking

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AcquireAndRelease(t *testing.T) {
	manager, err := NewManager(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	lock, err := manager.Acquire("cycle", time.Second)
	require.NoError(t, err)
	require.NotNil(t, lock)

	require.NoError(t, lock.Release())
	assert.NoError(t, lock.Release(), "double release is a no-op")
}

func TestManager_ContentionTimesOut(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir, zerolog.Nop())
	require.NoError(t, err)

	// Same lock through a second manager instance (separate file
	// descriptor, so flock actually contends).
	other, err := NewManager(dir, zerolog.Nop())
	require.NoError(t, err)

	held, err := manager.Acquire("cycle", time.Second)
	require.NoError(t, err)
	defer held.Release()

	_, err = other.Acquire("cycle", 300*time.Millisecond)
	require.Error(t, err)

	var timeoutErr *ErrLockTimeout
	assert.True(t, errors.As(err, &timeoutErr))
	assert.Equal(t, "cycle", timeoutErr.Name)
}

func TestManager_ReacquireAfterRelease(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir, zerolog.Nop())
	require.NoError(t, err)
	other, err := NewManager(dir, zerolog.Nop())
	require.NoError(t, err)

	first, err := manager.Acquire("cycle", time.Second)
	require.NoError(t, err)
	require.NoError(t, first.Release())

	second, err := other.Acquire("cycle", time.Second)
	require.NoError(t, err)
	assert.NoError(t, second.Release())
}

func TestManager_IndependentNames(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir, zerolog.Nop())
	require.NoError(t, err)
	other, err := NewManager(dir, zerolog.Nop())
	require.NoError(t, err)

	a, err := manager.Acquire("alpha", time.Second)
	require.NoError(t, err)
	defer a.Release()

	b, err := other.Acquire("beta", time.Second)
	require.NoError(t, err)
	defer b.Release()
}
