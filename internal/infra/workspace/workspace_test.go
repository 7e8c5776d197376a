package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rodneymanor/screenshot-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWipesLeftoverJobs(t *testing.T) {
	root := filepath.Join(t.TempDir(), "work")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "stale-job"), 0o755))

	ws := New(root)
	require.NoError(t, ws.Init())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "startup must discard leftover jobs")
}

func TestAllocateCreatesIsolatedDirs(t *testing.T) {
	ws := New(t.TempDir())
	require.NoError(t, ws.Init())

	a, err := ws.Allocate(uuid.NewString())
	require.NoError(t, err)
	b, err := ws.Allocate(uuid.NewString())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.DirExists(t, a)
	assert.DirExists(t, b)
}

func TestAllocateRejectsCollision(t *testing.T) {
	ws := New(t.TempDir())
	require.NoError(t, ws.Init())

	id := uuid.NewString()
	_, err := ws.Allocate(id)
	require.NoError(t, err)

	_, err = ws.Allocate(id)
	assert.True(t, errors.Is(err, entity.ErrResource))
}

func TestSaveUploadStripsPathComponents(t *testing.T) {
	ws := New(t.TempDir())
	require.NoError(t, ws.Init())

	dir, err := ws.Allocate(uuid.NewString())
	require.NoError(t, err)

	path, n, err := ws.SaveUpload(dir, "../../etc/clip.mp4", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clip.mp4"), path)
	assert.EqualValues(t, 4, n)
}

func TestRemoveJobUnknownID(t *testing.T) {
	ws := New(t.TempDir())
	require.NoError(t, ws.Init())

	err := ws.RemoveJob(uuid.NewString())
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestRemoveJobDeletesDir(t *testing.T) {
	ws := New(t.TempDir())
	require.NoError(t, ws.Init())

	id := uuid.NewString()
	dir, err := ws.Allocate(id)
	require.NoError(t, err)

	require.NoError(t, ws.RemoveJob(id))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
