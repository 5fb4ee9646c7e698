// SPDX-License-Identifier: EPL-2.0

package export

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/config"
	"github.com/ik5/audtrim/internal/logger"
	"github.com/ik5/audtrim/render"
)

// Exporter renders a range, encodes it and publishes the result. Exactly one
// artifact is live at a time: each export revokes the previous artifact
// before doing any work, and a result that a newer export overtook is
// dropped with ErrSuperseded.
type Exporter struct {
	enc      *Encoder
	renderer *render.Renderer
	store    *Store
	tag      string
	fallback string
	log      *logger.Logger

	seq atomic.Uint64

	mu      sync.Mutex
	current *Artifact
}

type ExporterOption func(*Exporter)

func WithLogger(l *logger.Logger) ExporterOption {
	return func(x *Exporter) {
		if l != nil {
			x.log = l
		}
	}
}

func WithRenderer(r *render.Renderer) ExporterOption {
	return func(x *Exporter) {
		if r != nil {
			x.renderer = r
		}
	}
}

// NewExporter names artifacts with cfg.ProductTag and cfg.BaseName.
func NewExporter(cfg config.ExportConfig, enc *Encoder, store *Store, opts ...ExporterOption) *Exporter {
	x := &Exporter{
		enc:      enc,
		store:    store,
		tag:      cfg.ProductTag,
		fallback: cfg.BaseName,
		log:      logger.Discard(),
	}
	if x.tag == "" {
		x.tag = config.DefaultProductTag
	}
	if x.fallback == "" {
		x.fallback = config.DefaultBaseName
	}
	if x.store == nil {
		x.store = NewStore()
	}
	for _, opt := range opts {
		opt(x)
	}
	if x.renderer == nil {
		x.renderer = render.NewRenderer(render.WithLogger(x.log))
	}
	return x
}

func (x *Exporter) Store() *Store { return x.store }

// Export trims clip to [start, end), encodes it and publishes the artifact
// under a name derived from original.
func (x *Exporter) Export(ctx context.Context, clip *audio.Clip, start, end float64, original string) (Artifact, error) {
	token := x.seq.Add(1)
	x.Release()

	buf, err := x.renderer.Render(ctx, clip, start, end)
	if errors.Is(err, render.ErrSuperseded) {
		return Artifact{}, ErrSuperseded
	}
	if err != nil {
		return Artifact{}, err
	}

	res, err := x.enc.Encode(ctx, buf)
	if err != nil {
		return Artifact{}, err
	}

	return x.publish(token, Artifact{
		Name:        FileName(x.tag, original, x.fallback, res.Format),
		ContentType: res.ContentType,
		Format:      res.Format,
		Data:        res.Data,
	})
}

// PublishOriginal offers the untrimmed upload as the live artifact. It is
// the degraded path after an ExportFailedError.
func (x *Exporter) PublishOriginal(data []byte, original string) (Artifact, error) {
	if len(data) == 0 {
		return Artifact{}, ErrNoSource
	}

	token := x.seq.Add(1)
	x.Release()

	name := BaseName(original)
	if name == "" {
		name = x.fallback
	} else if ext := audio.FormatOf(original); ext != "" {
		name += "." + ext
	}

	return x.publish(token, Artifact{
		Name:        name,
		ContentType: ContentTypeFor(name),
		Format:      audio.FormatOf(name),
		Data:        data,
		Degraded:    true,
	})
}

func (x *Exporter) publish(token uint64, a Artifact) (Artifact, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.seq.Load() != token {
		x.log.Debugf("export: dropping stale result %d", token)
		return Artifact{}, ErrSuperseded
	}

	a = x.store.Publish(a)
	x.current = &a
	x.log.Infof("export: published %s (%s, %d bytes)", a.Name, a.ContentType, a.Size())

	return a, nil
}

// Current returns the live artifact.
func (x *Exporter) Current() (Artifact, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.current == nil {
		return Artifact{}, false
	}
	return *x.current, true
}

// Release revokes the live artifact, if any.
func (x *Exporter) Release() {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.current != nil {
		x.store.Revoke(x.current.ID)
		x.current = nil
	}
}

// Cancel supersedes every export in flight and releases the live artifact.
func (x *Exporter) Cancel() {
	x.seq.Add(1)
	x.renderer.Invalidate()
	x.Release()
}
