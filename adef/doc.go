// SPDX-License-Identifier: EPL-2.0

// Package adef defines the audio format and frame metadata values shared by
// the codecs of this module.
//
// A Format is a plain comparable value. Codecs compare formats strictly:
//
//	if !frame.Info.Format.Equal(writerFormat) {
//	    // reject
//	}
//
// Intersect checks membership of a format in a set, which is how the WAV
// writer validates a requested format against its catalog.
//
// FrameInfo carries the synthesized per-frame timing: a timestamp in
// Timescale units (always TimescaleMicroseconds for frames produced by this
// module) and a running frame index.
package adef
