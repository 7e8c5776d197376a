package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rodneymanor/screenshot-api/internal/domain/entity"
	"go.uber.org/zap"
)

// Prober reads a media file's duration with ffprobe.
type Prober struct {
	bin     string
	timeout time.Duration
	logger  *zap.Logger
}

func NewProber(bin string, timeout time.Duration, logger *zap.Logger) *Prober {
	return &Prober{bin: bin, timeout: timeout, logger: logger}
}

func (p *Prober) Probe(ctx context.Context, mediaPath string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		mediaPath,
	)
	// Bound the post-kill wait: an orphaned child holding stdout open
	// must not stall the call past its deadline.
	cmd.WaitDelay = time.Second

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w: ffprobe exceeded %s", entity.ErrTimeout, p.timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			p.logger.Error("ffprobe failed",
				zap.String("media_path", mediaPath),
				zap.ByteString("stderr", exitErr.Stderr),
			)
		}
		return 0, fmt.Errorf("%w: ffprobe: %v", entity.ErrProbe, err)
	}

	duration, err := parseDuration(string(output))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", entity.ErrProbe, err)
	}
	return duration, nil
}

func parseDuration(out string) (float64, error) {
	s := strings.TrimSpace(out)
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	return d, nil
}
