package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rodneymanor/screenshot-api/internal/domain/entity"
)

// Workspace owns the screenshot work-dir root. Each job gets a directory
// named after its UUID; nothing is shared between jobs.
type Workspace struct {
	root string
}

func New(root string) *Workspace {
	return &Workspace{root: root}
}

// Init wipes and recreates the root. Jobs left over from a previous run
// are discarded; there is no persistence guarantee across restarts.
func (w *Workspace) Init() error {
	if err := os.RemoveAll(w.root); err != nil {
		return fmt.Errorf("wipe work root %s: %w", w.root, err)
	}
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("create work root %s: %w", w.root, err)
	}
	return nil
}

func (w *Workspace) Allocate(jobID string) (string, error) {
	dir := filepath.Join(w.root, jobID)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("%w: job dir %s already exists", entity.ErrResource, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create job dir: %v", entity.ErrResource, err)
	}
	return dir, nil
}

func (w *Workspace) SaveUpload(jobDir, filename string, r io.Reader) (string, int64, error) {
	// filepath.Base strips any path components a client smuggles into the
	// multipart filename.
	path := filepath.Join(jobDir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: create upload file: %v", entity.ErrResource, err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return "", 0, fmt.Errorf("%w: write upload: %v", entity.ErrResource, err)
	}
	return path, n, nil
}

func (w *Workspace) Remove(jobDir string) error {
	return os.RemoveAll(jobDir)
}

// RemoveJob deletes the directory for a job id, for the explicit cleanup
// endpoint. Unknown ids report entity.ErrNotFound.
func (w *Workspace) RemoveJob(jobID string) error {
	dir := filepath.Join(w.root, jobID)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", entity.ErrNotFound, jobID)
		}
		return fmt.Errorf("stat job dir: %w", err)
	}
	return os.RemoveAll(dir)
}
