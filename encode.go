// SPDX-License-Identifier: EPL-2.0

package audraw

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audraw/adef"
	"github.com/ik5/audraw/audio"
	"github.com/ik5/audraw/formats/wav"
	"github.com/ik5/audraw/utils"
)

var (
	ErrRateMismatch    = errors.New("source sample rate differs from writer format")
	ErrChannelMismatch = errors.New("source channels cannot be mapped to writer format")
	ErrZeroFrameLength = errors.New("frame length must be positive")
)

// maxEmptyReads bounds how often a Source may return no samples and no
// error before Encode gives up with io.ErrNoProgress.
const maxEmptyReads = 100

// Encode drains src into w as frames of frameLength samples per channel and
// returns the number of frames written. The source rate must equal the
// writer rate; a multi-channel source is mixed down when the writer is mono.
// The last frame may be shorter than frameLength.
//
// Encode neither closes src nor w.
func Encode(src audio.Source, w *wav.Writer, frameLength uint) (int, error) {
	if frameLength == 0 {
		return 0, ErrZeroFrameLength
	}

	format := w.Format()
	if src.SampleRate() != int(format.SampleRate) {
		return 0, fmt.Errorf("%w: %d Hz, want %d Hz", ErrRateMismatch, src.SampleRate(), format.SampleRate)
	}

	channels := int(format.ChannelCount)
	switch {
	case src.Channels() == channels:
	case channels == 1 && src.Channels() > 1:
		src = audio.NewMonoMixer(src)
	default:
		return 0, fmt.Errorf("%w: %d channels, want %d", ErrChannelMismatch, src.Channels(), channels)
	}

	samples := make([]float32, int(frameLength)*channels)
	data := make([]byte, 2*len(samples))
	step := uint64(adef.TimescaleMicroseconds) * uint64(frameLength) / uint64(format.SampleRate)

	var (
		index     int32
		timestamp uint64
	)

	for {
		n, err := fill(src, samples)
		if n > 0 {
			for i, s := range samples[:n] {
				utils.PutInt16LE(data[2*i:], utils.Float32ToInt16(s))
			}

			frame := wav.Frame{
				Data: data[:2*n],
				Info: adef.FrameInfo{
					Format:    format,
					Timestamp: timestamp,
					Timescale: adef.TimescaleMicroseconds,
					Index:     index,
				},
			}
			if werr := w.WriteFrame(frame); werr != nil {
				return int(index), werr
			}

			index++
			timestamp += step
		}

		if errors.Is(err, io.EOF) {
			return int(index), nil
		}
		if err != nil {
			return int(index), fmt.Errorf("reading source: %w", err)
		}
	}
}

// fill reads from src until dst is full or src fails.
func fill(src audio.Source, dst []float32) (int, error) {
	n, empty := 0, 0
	for n < len(dst) {
		m, err := src.ReadSamples(dst[n:])
		n += m
		if err != nil {
			return n, err
		}

		if m > 0 {
			empty = 0
			continue
		}
		empty++
		if empty >= maxEmptyReads {
			return n, io.ErrNoProgress
		}
	}

	return n, nil
}
