// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders to audio.Source.
package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// DefaultBufSize is the read size, in values, before the first read.
const DefaultBufSize = 4096

// Reader is the part of a go-audio decoder a Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams integer samples from a Reader as float32 in [-1, 1).
type Source struct {
	r        Reader
	format   *goaudio.Format
	bitDepth int
	scale    float32
	name     string
	buf      *goaudio.IntBuffer
}

// NewSource wraps r. name labels read errors, e.g. "wav".
func NewSource(r Reader, format *goaudio.Format, bitDepth int, name string) *Source {
	return &Source{
		r:        r,
		format:   format,
		bitDepth: bitDepth,
		scale:    FullScale(bitDepth),
		name:     name,
	}
}

// FullScale is the magnitude of the most negative sample at depth bits.
func FullScale(depth int) float32 {
	if depth < 1 {
		depth = 16
	}
	return float32(int64(1) << (depth - 1))
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.buf != nil {
		return cap(s.buf.Data)
	}
	return DefaultBufSize
}

// ReadSamples fills dst with whole frames. A dst shorter than one frame
// reads nothing.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	want := len(dst)
	if ch := s.format.NumChannels; ch > 1 {
		want -= want % ch
	}
	if want == 0 {
		return 0, nil
	}

	if s.buf == nil || cap(s.buf.Data) < want {
		s.buf = &goaudio.IntBuffer{
			Data:           make([]int, want),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.r.PCMBuffer(s.buf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("read %s pcm: %w", s.name, err)
		}
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) / s.scale
	}

	return n, nil
}
