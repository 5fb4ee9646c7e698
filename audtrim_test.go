// SPDX-License-Identifier: EPL-2.0

package audtrim

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/config"
	"github.com/ik5/audtrim/export"
	"github.com/ik5/audtrim/formats/wav"
	"github.com/ik5/audtrim/internal/audiotest"
	"github.com/ik5/audtrim/render"
)

type countingEncoder struct {
	frames *int
}

func (e countingEncoder) EncodeFrame(frame [][]float32) ([]byte, error) {
	*e.frames += len(frame[0])
	return []byte{0xFF, 0xFB}, nil
}

func (countingEncoder) Flush() ([]byte, error) { return nil, nil }
func (countingEncoder) Close() error           { return nil }

func TestTrimWAV(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV(t, 16000, 2, 32000, audiotest.Sine(16000, 440))

	a, err := Trim(context.Background(), bytes.NewReader(data), "/uploads/voice note.wav", 0.5, 1.25,
		WithEncoderFactory(nil))
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}

	if a.Name != "mediakit_voice note.wav" {
		t.Errorf("name = %q", a.Name)
	}
	if a.ContentType != export.ContentTypeWAV {
		t.Errorf("content type = %q", a.ContentType)
	}

	h, err := wav.ReadHeader(bytes.NewReader(a.Data))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Channels != 2 || h.SampleRate != 16000 {
		t.Errorf("header = %+v", h)
	}
	if got := h.Frames(); got != 12000 {
		t.Errorf("frames = %d, want 12000", got)
	}
}

func TestTrimCompressed(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV(t, 44100, 1, 44100, audiotest.Sine(44100, 440))

	frames := 0
	var gotRate, gotKbps int
	factory := func(_ context.Context, channels, rate, kbps int) (export.FrameEncoder, error) {
		gotRate, gotKbps = rate, kbps
		return countingEncoder{frames: &frames}, nil
	}

	cfg := config.Default()
	cfg.Export.Bitrate = 192
	cfg.Export.ProductTag = "clipper"

	a, err := Trim(context.Background(), bytes.NewReader(data), "song.wav", 0, 0.5,
		WithConfig(cfg), WithEncoderFactory(factory))
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}

	if a.Name != "clipper_song.mp3" || a.ContentType != export.ContentTypeMP3 {
		t.Errorf("artifact = %s (%s)", a.Name, a.ContentType)
	}
	if gotRate != 44100 || gotKbps != 192 {
		t.Errorf("encoder opened at %d Hz, %d kbps", gotRate, gotKbps)
	}
	if frames != 22050 {
		t.Errorf("encoded %d frames, want 22050", frames)
	}
}

func TestTrimKeepsMinGap(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV(t, 8000, 1, 8000, audiotest.Constant(0.25))

	a, err := Trim(context.Background(), bytes.NewReader(data), "tick.wav", 0.98, 0.99,
		WithEncoderFactory(nil))
	if err != nil {
		t.Fatalf("Trim: %v", err)
	}

	h, err := wav.ReadHeader(bytes.NewReader(a.Data))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	// start pinned to 1.0-0.1, end to the duration
	if got := h.Frames(); got != 800 {
		t.Errorf("frames = %d, want 800", got)
	}
}

func TestTrimInvalidRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end float64
	}{
		{"reversed", 2, 1},
		{"empty", 1, 1},
		{"negative", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Trim(context.Background(), bytes.NewReader(nil), "x.wav", tt.start, tt.end)
			if !errors.Is(err, render.ErrInvalidRange) {
				t.Errorf("err = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestTrimDecodeError(t *testing.T) {
	t.Parallel()

	_, err := Trim(context.Background(), bytes.NewReader([]byte("data")), "notes.txt", 0, 1)

	var decErr *audio.DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("err = %v, want *audio.DecodeError", err)
	}
	if !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestTrimFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "take1.wav")
	if err := os.WriteFile(path, audiotest.WAV(t, 8000, 1, 16000, audiotest.Sine(8000, 220)), 0o600); err != nil {
		t.Fatal(err)
	}

	a, err := TrimFile(context.Background(), path, 1, 1.5, WithEncoderFactory(nil))
	if err != nil {
		t.Fatalf("TrimFile: %v", err)
	}
	if a.Name != "mediakit_take1.wav" {
		t.Errorf("name = %q", a.Name)
	}

	_, err = TrimFile(context.Background(), filepath.Join(t.TempDir(), "missing.wav"), 0, 1)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func BenchmarkTrim(b *testing.B) {
	data := audiotest.WAV(b, 44100, 2, 44100*5, audiotest.Sine(44100, 440))

	for b.Loop() {
		if _, err := Trim(context.Background(), bytes.NewReader(data), "bench.wav", 1, 4, WithEncoderFactory(nil)); err != nil {
			b.Fatal(err)
		}
	}
}
