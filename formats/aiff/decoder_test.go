// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

// encodeAIFF writes a fixture with go-audio's encoder, which needs a
// seekable file.
func encodeAIFF(t *testing.T, rate, depth, channels int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := aiff.NewEncoder(f, rate, depth, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: depth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func readAll(t *testing.T, r io.Reader) ([]float32, int, int) {
	t.Helper()

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	defer src.Close()

	var out []float32
	buf := make([]float32, 3)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, src.SampleRate(), src.Channels()
		}
		if err != nil {
			t.Fatalf("ReadSamples: %v", err)
		}
	}
}

func TestDecoder_16Bit(t *testing.T) {
	t.Parallel()

	data := encodeAIFF(t, 44100, 16, 2, []int{0, -32768, 16384, 32767})

	got, rate, channels := readAll(t, bytes.NewReader(data))
	if rate != 44100 || channels != 2 {
		t.Fatalf("format = %d Hz x %d", rate, channels)
	}

	want := []float32{0, -1, 0.5, 32767.0 / 32768}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecoder_24Bit(t *testing.T) {
	t.Parallel()

	data := encodeAIFF(t, 48000, 24, 1, []int{4194304, -8388608})

	got, _, _ := readAll(t, io.MultiReader(bytes.NewReader(data)))
	if len(got) != 2 || got[0] != 0.5 || got[1] != -1 {
		t.Errorf("samples = %v, want [0.5 -1]", got)
	}
}

func TestDecoder_NotAIFF(t *testing.T) {
	t.Parallel()

	for _, in := range [][]byte{nil, []byte("RIFF....WAVEfmt "), bytes.Repeat([]byte{0}, 64)} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(in)); !errors.Is(err, ErrNotAiffFile) {
			t.Errorf("Decode(%q) err = %v, want ErrNotAiffFile", in, err)
		}
	}
}
