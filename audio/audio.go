// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register stores d under format. Keys are case-insensitive and a leading
// dot is ignored, so "WAV", ".wav" and "wav" are the same format.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeFormat(format)]
	return d, ok
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// FormatOf returns the format key for a file name, taken from its extension.
func FormatOf(name string) string {
	return normalizeFormat(filepath.Ext(name))
}

// DecodeClip picks a decoder from the extension of name, decodes r and
// drains it into a Clip. Every failure is reported as a *DecodeError.
func (r *Registry) DecodeClip(name string, rd io.Reader) (*Clip, error) {
	format := FormatOf(name)

	dec, ok := r.Get(format)
	if !ok {
		return nil, &DecodeError{Format: format, Name: name, Err: ErrUnknownFormat}
	}

	src, err := dec.Decode(rd)
	if err != nil {
		return nil, &DecodeError{Format: format, Name: name, Err: err}
	}
	defer src.Close()

	clip, err := ReadClip(src)
	if err != nil {
		return nil, &DecodeError{Format: format, Name: name, Err: err}
	}

	return clip, nil
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
