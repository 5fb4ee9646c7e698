// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ik5/audtrim/audio"
)

// rampClip returns a clip whose sample i on channel c is c*1000+i, scaled
// down so it stays inside [-1, 1].
func rampClip(t testing.TB, rate, channels, frames int) *audio.Clip {
	t.Helper()

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
		for i := range data[c] {
			data[c][i] = float32(c*1000+i) / 1e6
		}
	}

	clip, err := audio.NewClip(rate, data)
	if err != nil {
		t.Fatalf("NewClip: %v", err)
	}
	return clip
}

func TestFrameCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start, end float64
		rate       int
		want       int
	}{
		{0, 1, 44100, 44100},
		{1.25, 2.5, 48000, 60000},
		{0, 0.00001, 8000, 1},
		{0, 1.0 / 3, 3000, 1000},
		{0.5, 0.5004, 10000, 4},
	}

	for _, tt := range tests {
		if got := FrameCount(tt.start, tt.end, tt.rate); got != tt.want {
			t.Errorf("FrameCount(%v, %v, %d) = %d, want %d", tt.start, tt.end, tt.rate, got, tt.want)
		}
	}
}

func TestExtract_LengthWithinOneFrame(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 8000, 2, 8000*4)
	ranges := [][2]float64{{0, 4}, {0.1, 0.2}, {1.0001, 3.9999}, {2, 2.00001}, {3.5, 6}}

	for _, r := range ranges {
		buf, err := Extract(clip, r[0], r[1])
		if err != nil {
			t.Fatalf("Extract(%v): %v", r, err)
		}

		ideal := (r[1] - r[0]) * 8000
		if math.Abs(float64(buf.Frames())-ideal) > 1 && buf.Frames() != 1 {
			t.Errorf("Extract(%v) frames = %d, ideal %v", r, buf.Frames(), ideal)
		}
		if buf.SampleRate() != 8000 || buf.Channels() != 2 {
			t.Errorf("Extract(%v) shape = %d Hz x %d", r, buf.SampleRate(), buf.Channels())
		}
	}
}

func TestExtract_ExactSamples(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 1000, 2, 1000)

	buf, err := Extract(clip, 0.25, 0.5)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if buf.Frames() != 250 {
		t.Fatalf("frames = %d, want 250", buf.Frames())
	}

	for c := range 2 {
		src := clip.Channel(c)
		got := buf.Channel(c)
		for i := range got {
			if got[i] != src[250+i] {
				t.Fatalf("channel %d frame %d = %v, want %v", c, i, got[i], src[250+i])
			}
		}
	}
}

func TestExtract_PastEndIsSilent(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 100, 1, 100)

	buf, err := Extract(clip, 0.9, 1.2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if buf.Frames() != 30 {
		t.Fatalf("frames = %d, want 30", buf.Frames())
	}

	got := buf.Channel(0)
	for i := range 10 {
		if got[i] != clip.Channel(0)[90+i] {
			t.Errorf("frame %d = %v, want source sample", i, got[i])
		}
	}
	for i := 10; i < 30; i++ {
		if got[i] != 0 {
			t.Errorf("frame %d = %v, want silence", i, got[i])
		}
	}

	buf, err = Extract(clip, 5, 6)
	if err != nil {
		t.Fatalf("Extract past clip: %v", err)
	}
	for _, s := range buf.Channel(0) {
		if s != 0 {
			t.Fatal("range beyond the clip should be silent")
		}
	}
}

func TestExtract_TinyRangeYieldsOneFrame(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 8000, 1, 8000)

	buf, err := Extract(clip, 0.5, 0.50001)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if buf.Frames() != 1 {
		t.Errorf("frames = %d, want 1", buf.Frames())
	}
}

func TestExtract_DoesNotAlias(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 100, 1, 100)
	before := clip.Channel(0)[10]

	buf, err := Extract(clip, 0.1, 0.2)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	buf.Channel(0)[0] = 0.75

	if clip.Channel(0)[10] != before {
		t.Error("writing the rendered buffer changed the clip")
	}
}

func TestInvalidRange(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 100, 1, 100)
	r := NewRenderer()

	tests := []struct {
		name       string
		start, end float64
	}{
		{"equal", 0.5, 0.5},
		{"reversed", 0.6, 0.5},
		{"negative start", -0.1, 0.5},
		{"nan", math.NaN(), 0.5},
		{"infinite", 0, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := r.Render(context.Background(), clip, tt.start, tt.end)
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("err = %v, want ErrInvalidRange", err)
			}

			var rangeErr *InvalidRangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("err = %T, want *InvalidRangeError", err)
			}
		})
	}
}

func TestInvalidRange_TakesNoToken(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	clip := rampClip(t, 100, 1, 100)

	_, _ = r.Render(context.Background(), clip, 1, 0)
	if r.seq.Load() != 0 {
		t.Errorf("invalid request advanced the token to %d", r.seq.Load())
	}
}

func TestRender_NoClip(t *testing.T) {
	t.Parallel()

	_, err := NewRenderer().Render(context.Background(), nil, 0, 1)
	if !errors.Is(err, ErrNoClip) {
		t.Errorf("err = %v, want ErrNoClip", err)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 1000, 2, 2000)

	buf, err := NewRenderer().Render(context.Background(), clip, 0.5, 1.5)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.Frames() != 1000 || buf.Channels() != 2 || buf.SampleRate() != 1000 {
		t.Errorf("Render shape = %d frames, %d ch, %d Hz", buf.Frames(), buf.Channels(), buf.SampleRate())
	}
}

func TestRender_Superseded(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 1000, 1, 2000)
	r := NewRenderer()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	r.extract = func(c *audio.Clip, start, end float64) (*audio.Buffer, error) {
		if start == 0.1 {
			started <- struct{}{}
			<-release
		}
		return Extract(c, start, end)
	}

	type result struct {
		buf *audio.Buffer
		err error
	}
	first := make(chan result, 1)
	go func() {
		buf, err := r.Render(context.Background(), clip, 0.1, 0.2)
		first <- result{buf, err}
	}()

	<-started
	second, err := r.Render(context.Background(), clip, 0.3, 0.4)
	if err != nil {
		t.Fatalf("second Render: %v", err)
	}
	if second.Frames() != 100 {
		t.Errorf("second frames = %d, want 100", second.Frames())
	}

	close(release)
	res := <-first
	if !errors.Is(res.err, ErrSuperseded) {
		t.Errorf("first Render err = %v, want ErrSuperseded", res.err)
	}
	if res.buf != nil {
		t.Error("stale result should not be returned")
	}
}

func TestRender_Invalidate(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 1000, 1, 1000)
	r := NewRenderer()

	release := make(chan struct{})
	r.extract = func(c *audio.Clip, start, end float64) (*audio.Buffer, error) {
		<-release
		return Extract(c, start, end)
	}

	errc := make(chan error, 1)
	go func() {
		_, err := r.Render(context.Background(), clip, 0, 0.5)
		errc <- err
	}()

	// wait for the token to be taken
	for r.seq.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	r.Invalidate()
	close(release)

	if err := <-errc; !errors.Is(err, ErrSuperseded) {
		t.Errorf("err = %v, want ErrSuperseded", err)
	}
}

func TestRender_ContextCancelled(t *testing.T) {
	t.Parallel()

	clip := rampClip(t, 1000, 1, 1000)
	r := NewRenderer()

	release := make(chan struct{})
	defer close(release)
	r.extract = func(c *audio.Clip, start, end float64) (*audio.Buffer, error) {
		<-release
		return Extract(c, start, end)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Render(ctx, clip, 0, 0.5); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func BenchmarkExtract(b *testing.B) {
	clip := rampClip(b, 44100, 2, 44100*30)

	for b.Loop() {
		if _, err := Extract(clip, 5, 25); err != nil {
			b.Fatal(err)
		}
	}
}
