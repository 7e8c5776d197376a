package entity

import "fmt"

// Timepoint is one planned extraction: the 1-based screenshot index and
// the seek position in whole seconds.
type Timepoint struct {
	Index   int
	Seconds int
}

// ExtractionPlan is the ordered sequence of timestamps at which frames
// are extracted. Derived from (duration, count), never persisted.
type ExtractionPlan struct {
	Duration   float64
	Timepoints []Timepoint
}

// NewPlan divides the duration into count+1 equal intervals and places
// the i-th screenshot at i*duration/(count+1), truncated to whole
// seconds. The first and last screenshots therefore never land exactly
// on 0 or on the duration, which avoids black frames and out-of-range
// seeks at the media boundaries.
//
// For media shorter than count+1 seconds, truncation can yield duplicate
// timestamps. Duplicates are kept and each still gets its own extraction
// call; callers may receive identical frames. Known limitation.
func NewPlan(duration float64, count int) (*ExtractionPlan, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: num_screenshots must be positive, got %d", ErrInvalidParameter, count)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: media duration is %.3fs", ErrUnprocessableMedia, duration)
	}

	interval := duration / float64(count+1)
	points := make([]Timepoint, count)
	for i := 1; i <= count; i++ {
		points[i-1] = Timepoint{
			Index:   i,
			Seconds: int(interval * float64(i)),
		}
	}

	return &ExtractionPlan{Duration: duration, Timepoints: points}, nil
}
