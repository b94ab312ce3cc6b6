// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audraw/adef"
)

// HeaderSize is the size of the canonical PCM WAVE header.
const HeaderSize = 44

// Byte offsets of the fields that are patched once the data length is known.
const (
	chunkSizeOffset = 4
	fmtBodyOffset   = 20
	dataIDOffset    = 36
	dataSizeOffset  = 40
)

const pcmFmtSize = 16

// maxDataLength keeps the RIFF chunk size (dataIDOffset + data) within 32 bits.
const maxDataLength = 1<<32 - 1 - dataIDOffset

var (
	riffID = [4]byte{'R', 'I', 'F', 'F'}
	waveID = [4]byte{'W', 'A', 'V', 'E'}
	fmtID  = [4]byte{'f', 'm', 't', ' '}
	dataID = [4]byte{'d', 'a', 't', 'a'}
)

// Header is the RIFF/WAVE header of a PCM file. All numeric fields are stored
// little-endian on disk.
type Header struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	WaveID        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   adef.WaveFormat
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	// Subchunk2ID and Subchunk2Size describe the data chunk once the header
	// has been read; any chunk found before it has been skipped.
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// NewHeader returns the header for a file of format f with both size fields
// left at zero.
func NewHeader(f adef.Format) *Header {
	bytesPerSample := uint32(f.BytesPerSample())

	return &Header{
		ChunkID:       riffID,
		WaveID:        waveID,
		Subchunk1ID:   fmtID,
		Subchunk1Size: pcmFmtSize,
		AudioFormat:   adef.WaveFormatPCM,
		NumChannels:   uint16(f.ChannelCount),
		SampleRate:    f.SampleRate,
		ByteRate:      f.SampleRate * uint32(f.ChannelCount) * bytesPerSample,
		BlockAlign:    uint16(uint32(f.ChannelCount) * bytesPerSample),
		BitsPerSample: uint16(8 * bytesPerSample),
		Subchunk2ID:   dataID,
	}
}

// ReadHeader reads the header at the current position of rs, which must be
// the start of the file. Chunks between "fmt " and "data" are skipped by
// their declared size. On return rs is positioned at the first PCM byte.
func ReadHeader(rs io.ReadSeeker) (*Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(rs, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ioError("read header", err)
	}

	h := &Header{}
	if err := h.UnmarshalBinary(buf); err != nil {
		return nil, err
	}

	if h.ChunkID != riffID || h.WaveID != waveID {
		return nil, ErrNotWavFile
	}
	if h.Subchunk1ID != fmtID {
		return nil, ErrUnsupportedWavLayout
	}

	// A fmt chunk with trailing extension bytes pushes the next chunk header
	// past offset 36.
	if h.Subchunk1Size > pcmFmtSize {
		if _, err := rs.Seek(fmtBodyOffset+int64(h.Subchunk1Size), io.SeekStart); err != nil {
			return nil, ioError("seek", err)
		}
		if err := h.readChunkHeader(rs); err != nil {
			return nil, err
		}
	}

	for h.Subchunk2ID != dataID {
		if _, err := rs.Seek(int64(h.Subchunk2Size), io.SeekCurrent); err != nil {
			return nil, ioError("seek", err)
		}
		if err := h.readChunkHeader(rs); err != nil {
			return nil, err
		}
	}

	if h.AudioFormat != adef.WaveFormatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrNotPCM, h.AudioFormat)
	}

	if h.NumChannels == 0 || h.SampleRate == 0 || h.BitsPerSample == 0 || h.BitsPerSample%8 != 0 {
		return nil, fmt.Errorf("%w: %d channels, %d Hz, %d bits",
			ErrUnsupportedWavLayout, h.NumChannels, h.SampleRate, h.BitsPerSample)
	}

	return h, nil
}

func (h *Header) readChunkHeader(r io.Reader) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: no data chunk: %w", ErrUnsupportedWavChunks, err)
		}
		return ioError("read chunk header", err)
	}

	copy(h.Subchunk2ID[:], buf[:4])
	h.Subchunk2Size = binary.LittleEndian.Uint32(buf[4:])

	return nil
}

// Format derives the sample format described by the header. Only the
// little-endian RIFF variant exists, 8-bit samples are unsigned and wider
// samples are signed.
func (h *Header) Format() adef.Format {
	return adef.Format{
		Encoding:     adef.EncodingPCM,
		BitDepth:     uint(h.BitsPerSample),
		ChannelCount: uint(h.NumChannels),
		SampleRate:   h.SampleRate,
		PCM: adef.PCM{
			LittleEndian: true,
			Interleaved:  true,
			Signed:       h.BitsPerSample > 8,
		},
	}
}

// MarshalBinary encodes the header as its 44-byte on-disk record.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)

	copy(buf[0:4], h.ChunkID[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.ChunkSize)
	copy(buf[8:12], h.WaveID[:])

	copy(buf[12:16], h.Subchunk1ID[:])
	binary.LittleEndian.PutUint32(buf[16:20], h.Subchunk1Size)
	binary.LittleEndian.PutUint16(buf[20:22], uint16(h.AudioFormat))
	binary.LittleEndian.PutUint16(buf[22:24], h.NumChannels)
	binary.LittleEndian.PutUint32(buf[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(buf[28:32], h.ByteRate)
	binary.LittleEndian.PutUint16(buf[32:34], h.BlockAlign)
	binary.LittleEndian.PutUint16(buf[34:36], h.BitsPerSample)

	copy(buf[36:40], h.Subchunk2ID[:])
	binary.LittleEndian.PutUint32(buf[40:44], h.Subchunk2Size)

	return buf, nil
}

// UnmarshalBinary decodes a 44-byte header record without validating it.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", ErrInvalidArgument, len(data), HeaderSize)
	}

	copy(h.ChunkID[:], data[0:4])
	h.ChunkSize = binary.LittleEndian.Uint32(data[4:8])
	copy(h.WaveID[:], data[8:12])

	copy(h.Subchunk1ID[:], data[12:16])
	h.Subchunk1Size = binary.LittleEndian.Uint32(data[16:20])
	h.AudioFormat = adef.WaveFormat(binary.LittleEndian.Uint16(data[20:22]))
	h.NumChannels = binary.LittleEndian.Uint16(data[22:24])
	h.SampleRate = binary.LittleEndian.Uint32(data[24:28])
	h.ByteRate = binary.LittleEndian.Uint32(data[28:32])
	h.BlockAlign = binary.LittleEndian.Uint16(data[32:34])
	h.BitsPerSample = binary.LittleEndian.Uint16(data[34:36])

	copy(h.Subchunk2ID[:], data[36:40])
	h.Subchunk2Size = binary.LittleEndian.Uint32(data[40:44])

	return nil
}

// WriteTo writes the 44-byte record to w in a single call.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	buf, err := h.MarshalBinary()
	if err != nil {
		return 0, err
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), ioError("write header", err)
	}
	if n != len(buf) {
		return int64(n), fmt.Errorf("%w: header %d/%d bytes", ErrShortWrite, n, len(buf))
	}

	return int64(n), nil
}

// finalize records dataLen in both size fields and overwrites them in ws.
func (h *Header) finalize(ws io.WriteSeeker, dataLen uint32) error {
	h.Subchunk2Size = dataLen
	h.ChunkSize = dataIDOffset + dataLen

	var field [4]byte

	binary.LittleEndian.PutUint32(field[:], h.ChunkSize)
	if err := writeAt(ws, chunkSizeOffset, field[:]); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(field[:], h.Subchunk2Size)
	return writeAt(ws, dataSizeOffset, field[:])
}

func writeAt(ws io.WriteSeeker, off int64, p []byte) error {
	if _, err := ws.Seek(off, io.SeekStart); err != nil {
		return ioError("seek", err)
	}

	n, err := ws.Write(p)
	if err != nil {
		return ioError("write", err)
	}
	if n != len(p) {
		return fmt.Errorf("%w: %d/%d bytes at offset %d", ErrShortWrite, n, len(p), off)
	}

	return nil
}
