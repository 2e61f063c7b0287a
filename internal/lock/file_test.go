package lock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seconddraft/internal/domain"
)

func TestFileLocker(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	first := NewFileLocker(dir)
	second := NewFileLocker(dir)

	unlock, err := first.Lock(ctx, "collection:c1")
	require.NoError(t, err)

	_, err = second.Lock(ctx, "collection:c1")
	assert.ErrorIs(t, err, domain.ErrCollectionBusy)

	other, err := second.Lock(ctx, "collection:c2")
	require.NoError(t, err)
	require.NoError(t, other())

	require.NoError(t, unlock())

	again, err := second.Lock(ctx, "collection:c1")
	require.NoError(t, err)
	assert.NoError(t, again())
}

func TestFileLocker_CreatesDir(t *testing.T) {
	locker := NewFileLocker(t.TempDir() + "/nested/locks")

	unlock, err := locker.Lock(context.Background(), "collection/with/slashes")
	require.NoError(t, err)
	assert.NoError(t, unlock())
}
