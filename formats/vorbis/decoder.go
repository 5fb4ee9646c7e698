// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audtrim/audio"
)

// oggReader is the part of oggvorbis.Reader the source needs; tests swap it.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// ReadSamples reads whole frames only; a dst shorter than one frame reads
// nothing.
func (s *source) ReadSamples(dst []float32) (int, error) {
	usable := len(dst) - len(dst)%s.channels
	if usable == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:usable])
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("read vorbis: %w", err)
	}
	return n, err
}

// Decoder reads Ogg Vorbis through jfreymuth/oggvorbis. Samples are
// already float32, so no scaling happens here.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open ogg stream: %w", err)
	}

	if dec.Channels() < 1 {
		return nil, audio.ErrInvalidChannels
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
