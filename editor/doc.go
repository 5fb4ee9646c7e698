// SPDX-License-Identifier: EPL-2.0

// Package editor ties the trim engine together for one editing session.
//
// A Session owns the decoded clip, the waveform view built for it, the
// region controller, the drag handler and the exporter. Loading a new file
// tears all of them down before the replacement is decoded, so nothing from
// the previous clip survives a load.
//
//	s := editor.NewSession(newWaveform, win, layout, editor.WithConfig(cfg))
//	defer s.Close()
//
//	if err := s.Load(f, "interview.ogg"); err != nil {
//		return err
//	}
//	s.UpdateStart(1.5)
//	a, err := s.Export(ctx)
//
// When both encoding tiers fail, Export publishes the untrimmed upload and
// returns it together with the *export.ExportFailedError.
package editor
