// SPDX-License-Identifier: EPL-2.0

package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/config"
	"github.com/ik5/audtrim/export"
	"github.com/ik5/audtrim/formats"
	"github.com/ik5/audtrim/gesture"
	"github.com/ik5/audtrim/internal/logger"
	"github.com/ik5/audtrim/region"
	"github.com/ik5/audtrim/timeline"
)

// Waveform is the view built for one clip: the region plugin plus playback.
type Waveform interface {
	region.Library
	region.Player
	// Destroy releases the view. It must be safe to call more than once.
	Destroy()
}

// WaveformFactory builds the view for a freshly decoded clip. The view is
// expected to report the decoded duration through Session.HandleReady.
type WaveformFactory func(clip *audio.Clip) (Waveform, error)

// Exporter is the part of *export.Exporter a session drives.
type Exporter interface {
	Export(ctx context.Context, clip *audio.Clip, start, end float64, original string) (export.Artifact, error)
	PublishOriginal(data []byte, original string) (export.Artifact, error)
	Current() (export.Artifact, bool)
	Cancel()
}

// Session is one editing session over a single loaded clip at a time.
type Session struct {
	newWaveform WaveformFactory
	win         gesture.Window
	layout      gesture.Layout

	cfg        *config.Config
	registry   *audio.Registry
	factory    export.EncoderFactory
	factorySet bool
	exporter   Exporter
	log        *logger.Logger

	mu       sync.Mutex
	closed   bool
	loads    uint64
	clip     *audio.Clip
	name     string
	original []byte
	wave     Waveform
	ctrl     *region.Controller
	drag     *gesture.Handler
}

type Option func(*Session)

func WithConfig(cfg *config.Config) Option {
	return func(s *Session) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRegistry replaces the bundled decoders.
func WithRegistry(r *audio.Registry) Option {
	return func(s *Session) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithEncoderFactory replaces the ffmpeg MP3 encoder. A nil factory sends
// every export straight to WAV.
func WithEncoderFactory(f export.EncoderFactory) Option {
	return func(s *Session) {
		s.factory = f
		s.factorySet = true
	}
}

// WithExporter replaces the exporter built from the config.
func WithExporter(x Exporter) Option {
	return func(s *Session) {
		if x != nil {
			s.exporter = x
		}
	}
}

// NewSession returns an empty session. newWaveform is called once per
// loaded clip; win and layout feed the drag handler.
func NewSession(newWaveform WaveformFactory, win gesture.Window, layout gesture.Layout, opts ...Option) *Session {
	s := &Session{
		newWaveform: newWaveform,
		win:         win,
		layout:      layout,
		cfg:         config.Default(),
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry == nil {
		s.registry = formats.NewRegistry()
	}
	if !s.factorySet {
		s.factory = export.NewMP3Factory(s.cfg.Export.FFmpegPath, s.log)
	}
	if s.exporter == nil {
		enc := export.NewEncoder(s.cfg.Export, s.factory, export.WithEncoderLogger(s.log))
		s.exporter = export.NewExporter(s.cfg.Export, enc, export.NewStore(), export.WithLogger(s.log))
	}

	return s
}

type loaded struct {
	wave Waveform
	ctrl *region.Controller
	drag *gesture.Handler
}

func (l loaded) destroy() {
	if l.drag != nil {
		l.drag.Close()
	}
	if l.ctrl != nil {
		l.ctrl.Detach()
	}
	if l.wave != nil {
		l.wave.Destroy()
	}
}

// detach clears the per-clip state. The caller holds s.mu.
func (s *Session) detach() loaded {
	old := loaded{wave: s.wave, ctrl: s.ctrl, drag: s.drag}
	s.clip = nil
	s.name = ""
	s.original = nil
	s.wave = nil
	s.ctrl = nil
	s.drag = nil
	return old
}

// Load replaces the current clip with the upload read from r. name is the
// upload's file name; its extension picks the decoder. The previous clip,
// its view, any drag and the live artifact are released before decoding.
func (s *Session) Load(r io.Reader, name string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.loads++
	token := s.loads
	old := s.detach()
	s.mu.Unlock()

	old.destroy()
	s.exporter.Cancel()

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("editor: read %s: %w", name, err)
	}
	if len(data) == 0 {
		return ErrEmptyUpload
	}

	clip, err := s.registry.DecodeClip(name, bytes.NewReader(data))
	if err != nil {
		return err
	}

	if s.newWaveform == nil {
		return ErrNoWaveform
	}
	wave, err := s.newWaveform(clip)
	if err != nil {
		return fmt.Errorf("editor: build waveform: %w", err)
	}
	if wave == nil {
		return ErrNoWaveform
	}

	ctrl := region.NewController(wave, wave,
		region.WithMinGap(s.cfg.MinGap),
		region.WithLogger(s.log),
	)
	next := loaded{
		wave: wave,
		ctrl: ctrl,
		drag: gesture.New(s.win, s.layout, ctrl, gesture.WithLogger(s.log)),
	}

	s.mu.Lock()
	if s.closed || s.loads != token {
		s.mu.Unlock()
		next.destroy()
		if s.closed {
			return ErrClosed
		}
		return fmt.Errorf("editor: load of %s superseded", name)
	}
	s.clip = clip
	s.name = name
	s.original = data
	s.wave = next.wave
	s.ctrl = next.ctrl
	s.drag = next.drag
	s.mu.Unlock()

	s.log.Infof("editor: loaded %s (%d Hz, %d ch, %s)",
		name, clip.SampleRate(), clip.Channels(), timeline.FormatTime(clip.Duration()))

	return nil
}

func (s *Session) controller() *region.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl
}

// HandleReady is the view's ready notification carrying the decoded
// duration. It initialises the trim region to the whole clip.
func (s *Session) HandleReady(duration float64) (region.Bounds, error) {
	ctrl := s.controller()
	if ctrl == nil {
		return region.Bounds{}, ErrNoClip
	}
	return ctrl.Ready(duration), nil
}

// HandleRegionUpdated is the view's region-updated notification.
func (s *Session) HandleRegionUpdated(b region.Bounds) (region.Bounds, error) {
	ctrl := s.controller()
	if ctrl == nil {
		return region.Bounds{}, ErrNoClip
	}
	return ctrl.HandleLibraryUpdate(b), nil
}

func (s *Session) UpdateStart(t float64) (region.Bounds, error) {
	ctrl := s.controller()
	if ctrl == nil {
		return region.Bounds{}, ErrNoClip
	}
	return ctrl.UpdateStart(t), nil
}

func (s *Session) UpdateEnd(t float64) (region.Bounds, error) {
	ctrl := s.controller()
	if ctrl == nil {
		return region.Bounds{}, ErrNoClip
	}
	return ctrl.UpdateEnd(t), nil
}

// PointerDown starts dragging a trim handle. Moves and the final up or
// cancel arrive through the window listeners.
func (s *Session) PointerDown(handle gesture.Handle, ev gesture.PointerEvent, el gesture.Capturer) error {
	s.mu.Lock()
	drag := s.drag
	s.mu.Unlock()

	if drag == nil {
		return ErrNoClip
	}
	return drag.PointerDown(handle, ev, el)
}

// Dragging reports the handle of the drag in progress.
func (s *Session) Dragging() (gesture.Handle, bool) {
	s.mu.Lock()
	drag := s.drag
	s.mu.Unlock()

	if drag == nil {
		return 0, false
	}
	return drag.Active()
}

// TogglePlay pauses or plays the trimmed range.
func (s *Session) TogglePlay() (bool, error) {
	ctrl := s.controller()
	if ctrl == nil {
		return false, ErrNoClip
	}
	return ctrl.TogglePlay()
}

// Bounds returns the trim region, zero when nothing is loaded.
func (s *Session) Bounds() region.Bounds {
	ctrl := s.controller()
	if ctrl == nil {
		return region.Bounds{}
	}
	return ctrl.Bounds()
}

// HandlePositions places the start and end handles over a container of the
// given width.
func (s *Session) HandlePositions(width float64) (left, right float64) {
	ctrl := s.controller()
	if ctrl == nil {
		return 0, 0
	}

	b, d := ctrl.Bounds(), ctrl.Duration()
	return timeline.TimeToPixel(b.Start, d, width), timeline.TimeToPixel(b.End, d, width)
}

// Labels returns the MM:SS captions for the start, end and total duration.
func (s *Session) Labels() (start, end, total string) {
	ctrl := s.controller()
	if ctrl == nil {
		zero := timeline.FormatTime(0)
		return zero, zero, zero
	}

	b := ctrl.Bounds()
	return timeline.FormatTime(b.Start), timeline.FormatTime(b.End), timeline.FormatTime(ctrl.Duration())
}

func (s *Session) CanExport() bool {
	ctrl := s.controller()
	return ctrl != nil && ctrl.CanExport()
}

// Clip returns the loaded clip and the name it was uploaded under.
func (s *Session) Clip() (*audio.Clip, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clip, s.name
}

// Export renders and encodes the trim region and publishes it as the live
// artifact. If both encoding tiers fail the untrimmed upload is published
// instead and returned along with the *export.ExportFailedError.
func (s *Session) Export(ctx context.Context) (export.Artifact, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return export.Artifact{}, ErrClosed
	}
	clip, ctrl, name, original := s.clip, s.ctrl, s.name, s.original
	s.mu.Unlock()

	if clip == nil || ctrl == nil {
		return export.Artifact{}, ErrNoClip
	}
	if !ctrl.CanExport() {
		return export.Artifact{}, ErrNotExportable
	}

	b := ctrl.Bounds()
	a, err := s.exporter.Export(ctx, clip, b.Start, b.End, name)

	var failed *export.ExportFailedError
	if !errors.As(err, &failed) {
		return a, err
	}

	s.log.Errorf("editor: export of %s failed, offering the original: %v", name, err)

	fallback, ferr := s.exporter.PublishOriginal(original, name)
	if ferr != nil {
		return export.Artifact{}, errors.Join(err, ferr)
	}
	return fallback, err
}

// Artifact returns the live export, if any.
func (s *Session) Artifact() (export.Artifact, bool) {
	return s.exporter.Current()
}

// Close releases the clip, its view and the live artifact. Further loads
// and exports fail with ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	old := s.detach()
	s.mu.Unlock()

	old.destroy()
	s.exporter.Cancel()

	return nil
}
