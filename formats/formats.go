// SPDX-License-Identifier: EPL-2.0

// Package formats wires every bundled decoder into an audio.Registry.
package formats

import (
	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/formats/aiff"
	"github.com/ik5/audtrim/formats/mp3"
	"github.com/ik5/audtrim/formats/vorbis"
	"github.com/ik5/audtrim/formats/wav"
)

// NewRegistry returns a registry keyed by file extension: wav, mp3, ogg,
// aiff and aif.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})

	return r
}
