// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats/wav"
)

// ExampleRegistry_DecodeClip decodes an upload picked by its extension.
func ExampleRegistry_DecodeClip() {
	upload := new(bytes.Buffer)
	wav.WriteWAV16(upload, 8000, 2, make([]int16, 2*4000))

	registry := audio.NewRegistry()
	registry.Register("wav", wav.Decoder{})

	clip, err := registry.DecodeClip("Take 3.WAV", upload)
	if err != nil {
		fmt.Printf("decode error: %v\n", err)
		return
	}

	fmt.Printf("%d Hz, %d channels, %.1fs\n", clip.SampleRate(), clip.Channels(), clip.Duration())
	// Output: 8000 Hz, 2 channels, 0.5s
}

// ExampleRegistry_DecodeClip_unknownFormat shows the error for an extension
// nothing is registered for.
func ExampleRegistry_DecodeClip_unknownFormat() {
	registry := audio.NewRegistry()

	_, err := registry.DecodeClip("voice.flac", bytes.NewReader(nil))

	var decErr *audio.DecodeError
	fmt.Println(errors.As(err, &decErr), errors.Is(err, audio.ErrUnknownFormat), decErr.Format)
	// Output: true true flac
}

// ExampleResampleBuffer converts one second of audio to 48 kHz.
func ExampleResampleBuffer() {
	buf, _ := audio.NewBuffer(22050, 1, 22050)

	out, err := audio.ResampleBuffer(buf, 48000)
	if err != nil {
		fmt.Printf("resample error: %v\n", err)
		return
	}

	fmt.Println(out.SampleRate(), out.Frames(), out.Duration())
	// Output: 48000 48000 1
}
