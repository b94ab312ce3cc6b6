// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files. It feeds
// the transcoding pipeline, which turns PCM AIFF input into WAV frames:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	w, _ := wav.Create("out.wav", wav.WriterConfig{Format: adef.PCM16(44100, 2)})
//	frames, err := audraw.Encode(src, w, 0)
//
// Only 16-bit PCM is supported; other depths fail with
// ErrOnlyPCM16bitSupported. AIFF stores big-endian samples; the decoder
// yields normalized float32 values so callers never see byte order.
package aiff
