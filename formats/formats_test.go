// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats/wav"
)

func TestNewRegistry_Formats(t *testing.T) {
	t.Parallel()

	got := NewRegistry().Formats()
	want := []string{"aif", "aiff", "mp3", "ogg", "wav"}
	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestNewRegistry_DecodeWAV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := wav.WriteWAV16(&buf, 8000, 1, []int16{0, 16384, -16384, 0}); err != nil {
		t.Fatal(err)
	}

	clip, err := NewRegistry().DecodeClip("voice memo.wav", &buf)
	if err != nil {
		t.Fatalf("DecodeClip: %v", err)
	}
	if clip.Frames() != 4 || clip.Channel(0)[1] != 0.5 {
		t.Errorf("clip = %d frames %v", clip.Frames(), clip.Channel(0))
	}
}

func TestNewRegistry_UnknownExtension(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().DecodeClip("notes.txt", bytes.NewReader([]byte("hello")))

	var decErr *audio.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("err = %v, want *audio.DecodeError", err)
	}
	if !errors.Is(err, audio.ErrUnknownFormat) || decErr.Format != "txt" {
		t.Errorf("err = %v (format %q)", err, decErr.Format)
	}
}

func TestNewRegistry_CorruptFile(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry().DecodeClip("broken.mp3", bytes.NewReader([]byte("not really mpeg data")))

	var decErr *audio.DecodeError
	if !errors.As(err, &decErr) || decErr.Format != "mp3" {
		t.Errorf("err = %v, want mp3 DecodeError", err)
	}
}
