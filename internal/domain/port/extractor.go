package port

import "context"

// DurationProber inspects a media file and reports its duration in
// seconds. Read-only, no side effects.
type DurationProber interface {
	Probe(ctx context.Context, mediaPath string) (float64, error)
}

// FrameExtractor writes exactly one still frame from mediaPath at the
// given whole-second timestamp to destPath. Quality is the encoder scale
// in [1,31], lower is better. On failure no cleanup of a partial file is
// guaranteed here; the job lifecycle owns rollback.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, mediaPath string, seconds, quality int, destPath string) error
}
