// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files holding uncompressed PCM,
// one fixed-size frame at a time.
//
// # Reading
//
// Open (or NewReader over any io.ReadSeeker) parses the header, skips any
// chunk that precedes "data" and leaves the stream at the first sample:
//
//	r, err := wav.Open("in.wav", wav.ReaderConfig{FrameLength: 1600})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	buf := make([]byte, r.MinBufSize())
//	for {
//	    frame, err := r.ReadFrame(buf)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err // ErrShortRead on a partial final frame
//	    }
//	    // frame.Data, frame.Info.Timestamp ...
//	}
//
// Each frame carries FrameLength samples per channel. Timestamps are in
// microseconds and advance by 1e6*FrameLength/SampleRate, truncated, per
// frame. The reader accepts any PCM bit depth and channel count.
//
// # Writing
//
// The writer accepts only the formats listed by SupportedFormats: 16-bit
// signed little-endian mono or stereo at twelve standard rates.
//
//	w, err := wav.Create("out.wav", wav.WriterConfig{Format: adef.PCM16(16000, 1)})
//	...
//	err = w.WriteFrame(frame)
//	...
//	err = w.Close() // patches the RIFF and data sizes
//
// Close must be called; until then the header declares an empty file.
// WriteWAV16 writes a whole mono file in one call to a plain io.Writer.
//
// # Decoding
//
// Decoder adapts a 16-bit file to audio.Source for the sample pipeline in
// package audio.
//
// # Errors
//
// Every error matches one of ErrInvalidArgument, ErrInvalidFormat, ErrIO,
// ErrShortRead or ErrShortWrite with errors.Is, and usually a more specific
// sentinel such as ErrNotWavFile or ErrFormatMismatch as well.
package wav
