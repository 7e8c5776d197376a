package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/rodneymanor/screenshot-api/internal/domain/entity"
	"go.uber.org/zap"
)

// Extractor grabs single frames with ffmpeg. -ss before -i makes ffmpeg
// seek on the input, so each call decodes only around the target
// timestamp instead of the whole file.
type Extractor struct {
	bin     string
	timeout time.Duration
	logger  *zap.Logger
}

func NewExtractor(bin string, timeout time.Duration, logger *zap.Logger) *Extractor {
	return &Extractor{bin: bin, timeout: timeout, logger: logger}
}

func (e *Extractor) ExtractFrame(ctx context.Context, mediaPath string, seconds, quality int, destPath string) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.bin,
		"-ss", strconv.Itoa(seconds),
		"-i", mediaPath,
		"-vframes", "1",
		"-q:v", strconv.Itoa(quality),
		"-y",
		destPath,
	)
	// Bound the post-kill wait: an orphaned child holding the pipes open
	// must not stall the call past its deadline.
	cmd.WaitDelay = time.Second

	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: ffmpeg exceeded %s at %ds", entity.ErrTimeout, e.timeout, seconds)
		}
		e.logger.Error("ffmpeg failed",
			zap.String("media_path", mediaPath),
			zap.Int("seconds", seconds),
			zap.ByteString("output", output),
		)
		return fmt.Errorf("%w: ffmpeg at %ds: %v", entity.ErrExtraction, seconds, err)
	}

	return nil
}
