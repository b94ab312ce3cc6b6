// SPDX-License-Identifier: EPL-2.0

// Package audraw moves uncompressed PCM audio in and out of RIFF/WAVE files
// as fixed-size frames.
//
// The frame codec lives in formats/wav; adef holds the format and frame
// metadata types shared by every package. This package joins the sample
// pipeline of package audio to the WAVE writer:
//
//	src, _ := aiff.Decoder{}.Decode(in)
//	w, _ := wav.Create("out.wav", wav.WriterConfig{Format: adef.PCM16(44100, 1)})
//	frames, err := audraw.Encode(src, w, 1024)
//	...
//	err = w.Close()
//
// # Packages
//
//   - adef: Format, FrameInfo and WaveFormat
//   - formats/wav: Reader, Writer, header codec and supported-format catalog
//   - formats/aiff: AIFF input as an audio.Source
//   - audio: Source, Decoder registry and MonoMixer
//   - utils: sample conversion helpers
//
// See examples/wavtool for a command line front end.
package audraw
