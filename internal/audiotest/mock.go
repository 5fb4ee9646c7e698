// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audtrim/audio"
)

// Waveform returns the sample value of frame i on channel ch.
type Waveform func(i, ch int) float32

// Sine is a full-scale tone at freq Hz.
func Sine(rate int, freq float64) Waveform {
	return func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	}
}

// Constant holds every sample at v.
func Constant(v float32) Waveform {
	return func(int, int) float32 { return v }
}

// Source is an audio.Source generating frames from a Waveform.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Waveform
}

var _ audio.Source = (*Source)(nil)

func NewSource(rate, channels, frames int, wave Waveform) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, wave: wave}
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}
