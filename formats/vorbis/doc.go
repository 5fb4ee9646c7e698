// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis using github.com/jfreymuth/oggvorbis.
//
// The decoder yields interleaved float32 samples at the stream's native
// rate and channel count. Register it for the "ogg" extension:
//
//	reg := audio.NewRegistry()
//	reg.Register("ogg", vorbis.Decoder{})
//	clip, err := reg.DecodeClip("take.ogg", f)
package vorbis
