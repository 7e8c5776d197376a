package port

import "io"

// Workspace manages per-job isolated directories under the service's
// work root. Directory names are the job's UUID, so concurrent jobs
// never collide and ids are not enumerable.
type Workspace interface {
	// Allocate creates the job's directory and returns its path.
	Allocate(jobID string) (string, error)

	// SaveUpload streams the uploaded video into the job directory and
	// returns the stored path and byte count.
	SaveUpload(jobDir, filename string, r io.Reader) (string, int64, error)

	// Remove deletes a job directory and everything in it. Removing an
	// already-gone directory is not an error.
	Remove(jobDir string) error
}
