// SPDX-License-Identifier: EPL-2.0

package gesture

import (
	"errors"
	"sync"

	"github.com/ik5/audtrim/internal/logger"
	"github.com/ik5/audtrim/region"
	"github.com/ik5/audtrim/timeline"
)

type Handle int

const (
	HandleStart Handle = iota + 1
	HandleEnd
)

func (h Handle) String() string {
	switch h {
	case HandleStart:
		return "start"
	case HandleEnd:
		return "end"
	default:
		return "unknown"
	}
}

// EventType names a window-level pointer event.
type EventType string

const (
	PointerMove   EventType = "pointermove"
	PointerUp     EventType = "pointerup"
	PointerCancel EventType = "pointercancel"
)

type PointerEvent struct {
	PointerID int
	ClientX   float64
}

type Listener func(PointerEvent)

// Window registers window-wide listeners. The returned func removes the
// listener and must be safe to call more than once.
type Window interface {
	AddEventListener(t EventType, l Listener) (remove func())
}

// Capturer is the element a drag started on.
type Capturer interface {
	SetPointerCapture(pointerID int) error
}

// Layout reports the current extent of the waveform container.
type Layout interface {
	ContainerRect() timeline.Rect
}

// Target receives the mapped times. *region.Controller implements it.
type Target interface {
	Duration() float64
	HasRegion() bool
	UpdateStart(t float64) region.Bounds
	UpdateEnd(t float64) region.Bounds
}

type drag struct {
	handle  Handle
	once    sync.Once
	removes []func()
}

func (d *drag) teardown() {
	d.once.Do(func() {
		for _, remove := range d.removes {
			remove()
		}
		d.removes = nil
	})
}

// Handler turns pointer-down/move/up sequences on the trim handles into
// region updates. At most one drag is active.
type Handler struct {
	win    Window
	layout Layout
	target Target
	log    *logger.Logger

	mu   sync.Mutex
	drag *drag
}

type Option func(*Handler)

func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

func New(win Window, layout Layout, target Target, opts ...Option) *Handler {
	h := &Handler{
		win:    win,
		layout: layout,
		target: target,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PointerDown starts a drag of handle. The pointer is captured on el (which
// may be nil) and move/up/cancel listeners are registered on the window for
// the lifetime of this drag. An active drag is torn down first.
func (h *Handler) PointerDown(handle Handle, ev PointerEvent, el Capturer) error {
	if handle != HandleStart && handle != HandleEnd {
		return ErrUnknownHandle
	}

	h.End()

	if el != nil {
		if err := el.SetPointerCapture(ev.PointerID); err != nil {
			h.log.Debugf("gesture: capture pointer %d: %v", ev.PointerID, err)
		}
	}

	d := &drag{handle: handle}
	if h.win != nil {
		d.removes = []func(){
			h.win.AddEventListener(PointerMove, h.moveListener(d)),
			h.win.AddEventListener(PointerUp, h.endListener(d)),
			h.win.AddEventListener(PointerCancel, h.endListener(d)),
		}
	}

	h.mu.Lock()
	prev := h.drag
	h.drag = d
	h.mu.Unlock()

	// a concurrent PointerDown may have slipped in between End and here
	if prev != nil {
		prev.teardown()
	}

	return nil
}

// Move maps ev.ClientX to a time and moves the dragged bound. Events that
// cannot apply return an error wrapping ErrGestureNoop.
func (h *Handler) Move(ev PointerEvent) (region.Bounds, error) {
	h.mu.Lock()
	d := h.drag
	h.mu.Unlock()

	if d == nil {
		return region.Bounds{}, ErrNotDragging
	}
	return h.apply(d, ev)
}

func (h *Handler) apply(d *drag, ev PointerEvent) (region.Bounds, error) {
	if h.target == nil || !h.target.HasRegion() {
		return region.Bounds{}, ErrNoRegion
	}

	var rect timeline.Rect
	if h.layout != nil {
		rect = h.layout.ContainerRect()
	}
	t := timeline.PixelToTime(ev.ClientX, rect, h.target.Duration())

	if d.handle == HandleStart {
		return h.target.UpdateStart(t), nil
	}
	return h.target.UpdateEnd(t), nil
}

// End finishes the active drag, if any. Safe to call repeatedly.
func (h *Handler) End() {
	h.mu.Lock()
	d := h.drag
	h.drag = nil
	h.mu.Unlock()

	if d != nil {
		d.teardown()
	}
}

func (h *Handler) endDrag(d *drag) {
	h.mu.Lock()
	if h.drag == d {
		h.drag = nil
	}
	h.mu.Unlock()

	d.teardown()
}

// Active reports the handle being dragged.
func (h *Handler) Active() (Handle, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.drag == nil {
		return 0, false
	}
	return h.drag.handle, true
}

// Close ends any drag. The handler can be reused afterwards.
func (h *Handler) Close() error {
	h.End()
	return nil
}

func (h *Handler) moveListener(d *drag) Listener {
	return func(ev PointerEvent) {
		defer func() {
			if r := recover(); r != nil {
				h.endDrag(d)
				panic(r)
			}
		}()

		h.mu.Lock()
		current := h.drag == d
		h.mu.Unlock()
		if !current {
			return
		}

		if _, err := h.apply(d, ev); err != nil && !errors.Is(err, ErrGestureNoop) {
			h.log.Warnf("gesture: move %s: %v", d.handle, err)
		}
	}
}

func (h *Handler) endListener(d *drag) Listener {
	return func(PointerEvent) {
		h.endDrag(d)
	}
}
