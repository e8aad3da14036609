package selectionstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-l10n-dashboard/components/dashboard"
)

func TestOpenMemoryByDefault(t *testing.T) {
	store, closeFn, err := Open(context.Background(), Settings{})
	require.NoError(t, err)
	require.NoError(t, closeFn())
	_, ok := store.(*dashboard.MemoryKVStore)
	assert.True(t, ok)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sel.yaml")
	store, _, err := Open(context.Background(), Settings{Kind: KindFile, FilePath: path})
	require.NoError(t, err)
	fs, ok := store.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, path, fs.Path())
}

func TestOpenRejectsUnknownKind(t *testing.T) {
	_, closeFn, err := Open(context.Background(), Settings{Kind: "etcd"})
	require.Error(t, err)
	assert.NotNil(t, closeFn)
}

func TestOpenRedisNeedsURL(t *testing.T) {
	_, _, err := Open(context.Background(), Settings{Kind: KindRedis})
	assert.ErrorIs(t, err, ErrEmptyRedisURL)
}
