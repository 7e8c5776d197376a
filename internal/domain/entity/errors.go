package entity

import "errors"

// Domain error sentinels. Infra adapters and the use case wrap these with
// fmt.Errorf("...: %w", ...) so the HTTP layer can classify failures with
// errors.Is without depending on adapter internals.
var (
	// ErrInvalidParameter covers caller mistakes: non-positive screenshot
	// count, quality outside [1,31], unsupported file extension.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnprocessableMedia means probing succeeded but the content is
	// unusable (zero or negative duration, e.g. audio-only input).
	ErrUnprocessableMedia = errors.New("unprocessable media")

	// ErrProbe is an ffprobe failure: non-zero exit or non-numeric output.
	ErrProbe = errors.New("probe failed")

	// ErrExtraction is an ffmpeg failure while writing a single frame.
	ErrExtraction = errors.New("frame extraction failed")

	// ErrResource is a filesystem allocation failure (work dir creation,
	// upload persistence).
	ErrResource = errors.New("resource allocation failed")

	// ErrTimeout is an external tool call exceeding its deadline.
	ErrTimeout = errors.New("external tool timed out")

	// ErrNotFound is a cleanup request for an unknown job.
	ErrNotFound = errors.New("job not found")
)
