// SPDX-License-Identifier: EPL-2.0

// Package gesture implements dragging of the trim handles.
//
// A drag is Idle until PointerDown on one of the two handles. While
// Dragging, every window pointer-move is mapped through timeline.PixelToTime
// and fed to the Target. Pointer-up or pointer-cancel ends the drag and
// removes the listeners the drag registered. Teardown runs at most once per
// drag and also runs when the Target panics during a move.
package gesture
