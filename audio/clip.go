// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many (0, nil) reads ReadClip tolerates in a row.
const maxEmptyReads = 100

// Clip is decoded source audio. It is immutable once built, so render and
// playback may read it concurrently without locking.
type Clip struct {
	buf *Buffer
}

// NewClip builds a Clip from planar channel data. The data is copied.
func NewClip(sampleRate int, channels [][]float32) (*Clip, error) {
	copied := make([][]float32, len(channels))
	for c, ch := range channels {
		copied[c] = append([]float32(nil), ch...)
	}

	buf, err := BufferFromChannels(sampleRate, copied)
	if err != nil {
		return nil, err
	}

	return &Clip{buf: buf}, nil
}

func (c *Clip) SampleRate() int { return c.buf.SampleRate() }
func (c *Clip) Channels() int   { return c.buf.Channels() }
func (c *Clip) Frames() int     { return c.buf.Frames() }

// Duration in seconds, derived from the decoded length and the sample rate.
func (c *Clip) Duration() float64 { return c.buf.Duration() }

// Channel returns the samples of channel ch. Callers must not modify them.
func (c *Clip) Channel(ch int) []float32 { return c.buf.Channel(ch) }

// ReadClip drains src into a Clip, de-interleaving its samples. A trailing
// partial frame is dropped. src is not closed.
func ReadClip(src Source) (*Clip, error) {
	sampleRate := src.SampleRate()
	channels := src.Channels()

	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	data := make([][]float32, channels)
	buf := make([]float32, size)
	pending := make([]float32, 0, channels)
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			empty = 0
			samples := buf[:n]

			// Complete a frame left over from the previous read.
			for len(pending) > 0 && len(pending) < channels && len(samples) > 0 {
				pending = append(pending, samples[0])
				samples = samples[1:]
			}
			if len(pending) == channels {
				for c := range channels {
					data[c] = append(data[c], pending[c])
				}
				pending = pending[:0]
			}

			frames := len(samples) / channels
			for f := range frames {
				for c := range channels {
					data[c] = append(data[c], samples[f*channels+c])
				}
			}
			pending = append(pending, samples[frames*channels:]...)
		} else if err == nil {
			empty++
			if empty > maxEmptyReads {
				return nil, ErrNoProgress
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
	}

	if len(data[0]) == 0 {
		return nil, ErrEmptySource
	}

	return &Clip{buf: &Buffer{sampleRate: sampleRate, data: data}}, nil
}
