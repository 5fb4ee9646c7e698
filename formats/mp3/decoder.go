// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audtrim/audio"
)

// mp3Reader is the part of gomp3.Decoder the source needs; tests swap it.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// odd trailing byte of the previous read
	carry    byte
	hasCarry bool
}

func (s *source) SampleRate() int { return s.sampleRate }

// Channels is always 2: go-mp3 upmixes mono streams.
func (s *source) Channels() int { return 2 }
func (s *source) Close() error  { return nil }
func (s *source) BufSize() int  { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := 0
	if s.hasCarry {
		s.buf[0] = s.carry
		s.hasCarry = false
		off = 1
	}

	n, err := s.dec.Read(s.buf[off:])
	n += off

	samples := n / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768.0
	}

	if n%2 == 1 {
		s.carry = s.buf[n-1]
		s.hasCarry = true
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("read mp3: %w", err)
	}
	return samples, err
}

// Decoder reads MPEG-1/2 Layer III through go-mp3. Output is always
// stereo interleaved float32.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open mp3 stream: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
