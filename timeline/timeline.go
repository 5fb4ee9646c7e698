// SPDX-License-Identifier: EPL-2.0

// Package timeline maps between horizontal pointer positions over the
// waveform container and time offsets within the loaded clip.
package timeline

import (
	"fmt"
	"math"
)

// Rect is the horizontal extent of the waveform container in client pixels.
type Rect struct {
	Left  float64
	Width float64
}

// Right edge of the container.
func (r Rect) Right() float64 { return r.Left + r.Width }

func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// PixelToTime converts a client X coordinate to seconds. clientX is clamped
// into the container before scaling, so positions outside it never produce
// out-of-range times. Returns 0 when the duration or width is unknown.
func PixelToTime(clientX float64, rect Rect, duration float64) float64 {
	if !usable(duration) || !usable(rect.Width) || math.IsNaN(clientX) {
		return 0
	}

	x := min(max(clientX-rect.Left, 0), rect.Width)
	return x / rect.Width * duration
}

// TimeToPixel converts seconds to an offset from the container's left edge,
// clamped to [0, width]. Returns 0 when the duration or width is unknown.
func TimeToPixel(t, duration, width float64) float64 {
	if !usable(duration) || !usable(width) || math.IsNaN(t) {
		return 0
	}

	return min(max(t/duration*width, 0), width)
}

// FormatTime renders seconds as MM:SS, flooring to whole seconds. Non-finite
// and non-positive values render as 00:00.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return "00:00"
	}

	total := int64(math.Floor(seconds))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
