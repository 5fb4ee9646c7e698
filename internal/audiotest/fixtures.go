// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"testing"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats/wav"
	"github.com/ik5/audtrim/utils"
)

// Clip builds a decoded clip of frames frames.
func Clip(tb testing.TB, rate, channels, frames int, wave Waveform) *audio.Clip {
	tb.Helper()

	clip, err := audio.ReadClip(NewSource(rate, channels, frames, wave))
	if err != nil {
		tb.Fatalf("audiotest: build clip: %v", err)
	}
	return clip
}

// WAV encodes the generated frames as a 16-bit PCM file, the way an upload
// would arrive.
func WAV(tb testing.TB, rate, channels, frames int, wave Waveform) []byte {
	tb.Helper()

	clip := Clip(tb, rate, channels, frames, wave)
	planar := make([][]float32, channels)
	for ch := range planar {
		planar[ch] = clip.Channel(ch)
	}

	var b bytes.Buffer
	if err := wav.WriteWAV16(&b, rate, channels, utils.Interleave16(planar, frames)); err != nil {
		tb.Fatalf("audiotest: write wav: %v", err)
	}
	return b.Bytes()
}
