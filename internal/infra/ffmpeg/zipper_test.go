package ffmpeg

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("no space left on device") }

func TestWriteZipSurfacesFinalizeError(t *testing.T) {
	// With no entries the only write is the central-directory flush in
	// Close; a short write there must not be reported as success.
	err := writeZip(context.Background(), failingWriter{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finalize zip")
}

func TestCreateZipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"screenshot_001.jpg", "screenshot_002.jpg"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
		paths = append(paths, p)
	}

	out := filepath.Join(dir, "screenshots.zip")
	require.NoError(t, NewZipArchiver().CreateZip(context.Background(), paths, out))

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer zr.Close()
	require.Len(t, zr.File, 2)
	assert.Equal(t, "screenshot_001.jpg", zr.File[0].Name)
}
