// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/internal/logger"
)

// Validate checks that [start, end) is a usable range.
func Validate(start, end float64) error {
	if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) ||
		start < 0 || end <= start {
		return &InvalidRangeError{Start: start, End: end}
	}
	return nil
}

// FrameCount is the length of a rendered range: round((end-start)*rate),
// never less than one frame.
func FrameCount(start, end float64, rate int) int {
	return max(1, int(math.Round((end-start)*float64(rate))))
}

// Extract copies the samples of [start, end) into a new buffer at the clip's
// rate and channel count. Frames past the end of the clip are silent.
func Extract(clip *audio.Clip, start, end float64) (*audio.Buffer, error) {
	if clip == nil {
		return nil, ErrNoClip
	}
	if err := Validate(start, end); err != nil {
		return nil, err
	}

	rate := clip.SampleRate()
	frames := FrameCount(start, end, rate)
	first := int(math.Round(start * float64(rate)))

	out, err := audio.NewBuffer(rate, clip.Channels(), frames)
	if err != nil {
		return nil, err
	}

	if first >= clip.Frames() {
		return out, nil
	}

	for c := range clip.Channels() {
		src := clip.Channel(c)
		last := min(first+frames, len(src))
		copy(out.Channel(c), src[first:last])
	}

	return out, nil
}

type extractFunc func(clip *audio.Clip, start, end float64) (*audio.Buffer, error)

// Renderer runs extractions off the caller's goroutine. Every Render takes a
// token from a monotonically increasing sequence; a result whose token is no
// longer the newest is dropped with ErrSuperseded.
type Renderer struct {
	seq     atomic.Uint64
	log     *logger.Logger
	extract extractFunc
}

type Option func(*Renderer)

func WithLogger(l *logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		log:     logger.Discard(),
		extract: Extract,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render extracts [start, end) from clip. The range is validated before a
// token is taken, so an invalid request never supersedes a valid one.
func (r *Renderer) Render(ctx context.Context, clip *audio.Clip, start, end float64) (*audio.Buffer, error) {
	if clip == nil {
		return nil, ErrNoClip
	}
	if err := Validate(start, end); err != nil {
		return nil, err
	}

	token := r.seq.Add(1)

	type result struct {
		buf *audio.Buffer
		err error
	}
	done := make(chan result, 1)

	go func() {
		buf, err := r.extract(clip, start, end)
		done <- result{buf: buf, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		if r.seq.Load() != token {
			r.log.Debugf("render: dropping stale result %d", token)
			return nil, ErrSuperseded
		}
		return res.buf, nil
	}
}

// Invalidate supersedes every render in flight.
func (r *Renderer) Invalidate() {
	r.seq.Add(1)
}
