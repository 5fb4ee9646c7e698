// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audtrim/audio"
)

type stubOgg struct {
	rate, channels int
	data           []float32
	err            error
}

func (s *stubOgg) SampleRate() int { return s.rate }
func (s *stubOgg) Channels() int   { return s.channels }

func (s *stubOgg) Read(p []float32) (int, error) {
	if len(s.data) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}
	n := copy(p, s.data)
	s.data = s.data[n:]
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{nil, []byte("OggS but not really"), bytes.Repeat([]byte{0xff}, 256)}
	for _, in := range inputs {
		if _, err := (Decoder{}).Decode(bytes.NewReader(in)); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", in)
		}
	}
}

func TestSource_ReadsWholeFrames(t *testing.T) {
	t.Parallel()

	data := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3, 0.4, -0.4, 0.5, -0.5}
	src := &source{dec: &stubOgg{rate: 48000, channels: 2, data: data}, sampleRate: 48000, channels: 2}

	buf := make([]float32, 5)
	var got []float32
	for {
		n, err := src.ReadSamples(buf)
		if n%2 != 0 {
			t.Fatalf("read %d values, not a whole number of frames", n)
		}
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples: %v", err)
		}
	}

	if len(got) != len(data) {
		t.Fatalf("got %d values, want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Errorf("value %d = %v, want %v", i, got[i], data[i])
		}
	}
}

func TestSource_ShortDst(t *testing.T) {
	t.Parallel()

	src := &source{dec: &stubOgg{channels: 6, data: make([]float32, 12)}, channels: 6}
	if n, err := src.ReadSamples(make([]float32, 5)); n != 0 || err != nil {
		t.Errorf("ReadSamples(5 values, 6 channels) = %d, %v", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	bad := errors.New("corrupt packet")
	src := &source{dec: &stubOgg{channels: 1, err: bad}, channels: 1}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, bad) {
		t.Errorf("err = %v, want %v", err, bad)
	}
}

func TestSource_ReadClip(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &stubOgg{rate: 8000, channels: 2, data: []float32{1, -1, 0.5, -0.5}},
		sampleRate: 8000,
		channels:   2,
	}

	clip, err := audio.ReadClip(src)
	if err != nil {
		t.Fatalf("ReadClip: %v", err)
	}
	if clip.Frames() != 2 || clip.Channel(1)[1] != -0.5 {
		t.Errorf("clip = %d frames, right = %v", clip.Frames(), clip.Channel(1))
	}
}
