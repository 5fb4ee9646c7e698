// SPDX-License-Identifier: EPL-2.0

package region

import (
	"math"
	"sync"

	"github.com/ik5/audtrim/internal/logger"
)

// DefaultMinGap is the shortest allowed trim region in seconds.
const DefaultMinGap = 0.1

// Bounds is a trim range in seconds.
type Bounds struct {
	Start float64
	End   float64
}

// Length of the range in seconds.
func (b Bounds) Length() float64 { return b.End - b.Start }

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Start *float64
	End   *float64
}

// Library is the waveform region plugin. Only its first region is used.
type Library interface {
	Regions() []Bounds
	AddRegion(b Bounds) error
	// UpdateRegion moves the first region to b without emitting a
	// region-updated notification back to the controller.
	UpdateRegion(b Bounds) error
}

// Player controls playback of the loaded clip.
type Player interface {
	IsPlaying() bool
	Play(start, end float64) error
	Pause() error
}

// Controller owns the authoritative trim bounds of one loaded clip.
//
// Local drags write the bounds and are then pushed to the Library. Library
// notifications overwrite the bounds and are never pushed back.
type Controller struct {
	mu       sync.Mutex
	minGap   float64
	duration float64
	bounds   Bounds
	ready    bool

	lib    Library
	player Player
	log    *logger.Logger
}

type Option func(*Controller)

// WithMinGap overrides DefaultMinGap. Non-positive values are ignored.
func WithMinGap(gap float64) Option {
	return func(c *Controller) {
		if gap > 0 {
			c.minGap = gap
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// NewController binds a controller to the waveform library and player of a
// single clip. Either may be nil.
func NewController(lib Library, player Player, opts ...Option) *Controller {
	c := &Controller{
		minGap: DefaultMinGap,
		lib:    lib,
		player: player,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ready initialises the bounds to the whole clip once the library reports
// the decoded duration. It makes sure the library holds a region and, when
// it does, adopts that region's bounds.
func (c *Controller) Ready(duration float64) Bounds {
	if !(duration > 0) || math.IsInf(duration, 0) {
		duration = 0
	}

	c.mu.Lock()
	c.duration = duration
	c.bounds = Bounds{Start: 0, End: duration}
	c.ready = true
	lib := c.lib
	c.mu.Unlock()

	if lib == nil {
		return c.Bounds()
	}

	regions := lib.Regions()
	if len(regions) == 0 {
		if err := lib.AddRegion(Bounds{Start: 0, End: duration}); err != nil {
			c.log.Debugf("region: add initial region: %v", err)
		}
		regions = lib.Regions()
	}

	if len(regions) > 0 {
		c.mu.Lock()
		if c.lib == lib {
			c.bounds = c.clipToDuration(regions[0])
		}
		c.mu.Unlock()
	}

	return c.Bounds()
}

func (c *Controller) Bounds() Bounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounds
}

func (c *Controller) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

func (c *Controller) MinGap() float64 { return c.minGap }

// HasRegion reports whether the library currently holds a region.
func (c *Controller) HasRegion() bool {
	c.mu.Lock()
	lib := c.lib
	c.mu.Unlock()

	return lib != nil && len(lib.Regions()) > 0
}

// CanExport reports whether the bounds describe a non-empty range.
func (c *Controller) CanExport() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready && c.bounds.Start < c.bounds.End
}

// UpdateStart moves the start bound, clamped into [0, End-minGap].
func (c *Controller) UpdateStart(t float64) Bounds {
	return c.Update(Patch{Start: &t})
}

// UpdateEnd moves the end bound, clamped into [Start+minGap, duration].
func (c *Controller) UpdateEnd(t float64) Bounds {
	return c.Update(Patch{End: &t})
}

// Update applies a partial update. Values past a limit are pinned at the
// limit, never rejected. The result is pushed to the library.
func (c *Controller) Update(p Patch) Bounds {
	c.mu.Lock()
	if !c.ready {
		b := c.bounds
		c.mu.Unlock()
		return b
	}

	b := c.bounds
	if p.Start != nil && !math.IsNaN(*p.Start) {
		b.Start = max(min(*p.Start, b.End-c.minGap), 0)
	}
	if p.End != nil && !math.IsNaN(*p.End) {
		b.End = min(max(*p.End, b.Start+c.minGap), c.duration)
	}
	c.bounds = b
	lib := c.lib
	c.mu.Unlock()

	if lib != nil {
		if err := lib.UpdateRegion(b); err != nil {
			c.log.Debugf("region: push bounds %+v: %v", b, err)
		}
	}

	return b
}

// HandleLibraryUpdate applies a region-updated notification from the
// library. The notification wins over local state; values are only kept
// inside the clip. If the clip is playing, playback restarts on the new range.
func (c *Controller) HandleLibraryUpdate(b Bounds) Bounds {
	if math.IsNaN(b.Start) || math.IsNaN(b.End) {
		return c.Bounds()
	}

	c.mu.Lock()
	if !c.ready {
		c.mu.Unlock()
		return Bounds{}
	}
	c.bounds = c.clipToDuration(b)
	b = c.bounds
	player := c.player
	c.mu.Unlock()

	if player != nil && player.IsPlaying() {
		if err := player.Play(b.Start, b.End); err != nil {
			c.log.Warnf("region: restart playback at %+v: %v", b, err)
		}
	}

	return b
}

// TogglePlay pauses playback when playing, otherwise plays the current
// range. It reports whether the clip is playing afterwards.
func (c *Controller) TogglePlay() (bool, error) {
	c.mu.Lock()
	player := c.player
	b := c.bounds
	ready := c.ready
	duration := c.duration
	c.mu.Unlock()

	if player == nil {
		return false, nil
	}

	if player.IsPlaying() {
		if err := player.Pause(); err != nil {
			return true, err
		}
		return false, nil
	}

	if !ready || !(b.Start < b.End) {
		b = Bounds{Start: 0, End: duration}
	}
	if err := player.Play(b.Start, b.End); err != nil {
		return false, err
	}
	return true, nil
}

// Detach drops the library and player handles. After Detach the controller
// ignores updates and reports no region.
func (c *Controller) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lib = nil
	c.player = nil
	c.ready = false
	c.duration = 0
	c.bounds = Bounds{}
}

// clipToDuration keeps b inside [0, duration] without enforcing minGap.
// The caller holds c.mu.
func (c *Controller) clipToDuration(b Bounds) Bounds {
	b.Start = min(max(b.Start, 0), c.duration)
	b.End = min(max(b.End, 0), c.duration)
	if b.End < b.Start {
		b.End = b.Start
	}
	return b
}
