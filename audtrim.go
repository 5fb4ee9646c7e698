// SPDX-License-Identifier: EPL-2.0

package audtrim

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/config"
	"github.com/ik5/audtrim/export"
	"github.com/ik5/audtrim/formats"
	"github.com/ik5/audtrim/internal/logger"
	"github.com/ik5/audtrim/region"
	"github.com/ik5/audtrim/render"
)

type options struct {
	cfg        *config.Config
	log        *logger.Logger
	registry   *audio.Registry
	factory    export.EncoderFactory
	factorySet bool
}

type Option func(*options)

func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.cfg = cfg
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func WithRegistry(r *audio.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithEncoderFactory replaces the ffmpeg MP3 encoder. A nil factory writes
// WAV.
func WithEncoderFactory(f export.EncoderFactory) Option {
	return func(o *options) {
		o.factory = f
		o.factorySet = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		cfg: config.Default(),
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = formats.NewRegistry()
	}
	if !o.factorySet {
		o.factory = export.NewMP3Factory(o.cfg.Export.FFmpegPath, o.log)
	}
	return o
}

// Trim decodes the upload read from r, cuts [start, end) out of it and
// encodes the result, without an interactive session.
//
// name is the upload's file name. Its extension picks the decoder and its
// base name names the artifact, e.g. "mediakit_memo.mp3".
//
// The range is kept inside the clip the same way a drag would be: start is
// pinned into [0, duration-minGap] and end into [start+minGap, duration].
// A reversed, negative or NaN range is rejected with render.ErrInvalidRange.
//
// The artifact is MP3 when the compressed encoder works and 16-bit WAV
// otherwise. Only when both fail is an *export.ExportFailedError returned.
func Trim(ctx context.Context, r io.Reader, name string, start, end float64, opts ...Option) (export.Artifact, error) {
	if err := render.Validate(start, end); err != nil {
		return export.Artifact{}, err
	}

	o := newOptions(opts)

	clip, err := o.registry.DecodeClip(name, r)
	if err != nil {
		return export.Artifact{}, err
	}

	ctrl := region.NewController(nil, nil, region.WithMinGap(o.cfg.MinGap), region.WithLogger(o.log))
	ctrl.Ready(clip.Duration())
	b := ctrl.Update(region.Patch{Start: &start, End: &end})
	if b.Start != start || b.End != end {
		o.log.Debugf("audtrim: range [%g, %g) kept inside clip as [%g, %g)", start, end, b.Start, b.End)
	}

	enc := export.NewEncoder(o.cfg.Export, o.factory, export.WithEncoderLogger(o.log))
	x := export.NewExporter(o.cfg.Export, enc, export.NewStore(), export.WithLogger(o.log))

	return x.Export(ctx, clip, b.Start, b.End, name)
}

// TrimFile is Trim over the file at path.
func TrimFile(ctx context.Context, path string, start, end float64, opts ...Option) (export.Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return export.Artifact{}, fmt.Errorf("audtrim: %w", err)
	}
	defer f.Close()

	return Trim(ctx, f, path, start, end, opts...)
}
