// SPDX-License-Identifier: EPL-2.0

// Package region owns the trim region of a loaded clip.
//
// A Controller is created per clip and bound to the waveform library's
// region plugin and player. It reconciles two sources of edits:
//
//   - Pointer drags on the custom handles, applied with UpdateStart and
//     UpdateEnd. These are clamped so that 0 <= Start, End <= duration and
//     End-Start >= the minimum gap, then pushed out to the library.
//   - Region-updated notifications from the library, applied with
//     HandleLibraryUpdate. These overwrite the local bounds (last writer
//     wins) and restart playback on the new range when the clip is playing.
//
// Detach releases the library and player handles when the clip changes or
// the editor is torn down.
package region
