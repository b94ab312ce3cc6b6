// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/ik5/audraw/adef"
	"github.com/ik5/audraw/utils"
)

// WriteWAV16 writes a complete mono 16-bit PCM WAV at sampleRate to w.
// Unlike Writer it needs no seeking, since the data length is known up front.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	dataSize := uint64(len(samples)) * 2
	if dataSize > maxDataLength {
		return fmt.Errorf("%w: %d bytes", ErrDataTooLarge, dataSize)
	}

	h := NewHeader(adef.PCM16(uint32(sampleRate), 1))
	h.Subchunk2Size = uint32(dataSize)
	h.ChunkSize = dataIDOffset + h.Subchunk2Size

	if _, err := h.WriteTo(w); err != nil {
		return err
	}

	if len(samples) == 0 {
		return nil
	}

	const chunkSize = 8192 // samples per write

	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			utils.PutInt16LE(buf[j*2:], s)
		}

		if _, err := w.Write(buf); err != nil {
			return ioError("write", err)
		}
	}

	return nil
}
