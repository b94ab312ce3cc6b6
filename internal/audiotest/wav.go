// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Chunk is a RIFF sub-chunk placed between "fmt " and "data".
type Chunk struct {
	ID   string
	Body []byte
}

// WAV describes a WAVE file to assemble byte by byte, including malformed
// ones. Zero values give a canonical 16-bit PCM file.
type WAV struct {
	RIFFID        string // default "RIFF"
	WaveID        string // default "WAVE"
	FmtID         string // default "fmt "
	AudioFormat   uint16 // default 1 (PCM)
	Channels      uint16
	SampleRate    uint32
	BitsPerSample uint16 // default 16
	// FmtExtra is appended to the 16-byte fmt body and counted in its size.
	FmtExtra []byte
	Chunks   []Chunk
	// OmitData leaves out the data chunk entirely.
	OmitData bool
	// DataSize overrides the declared data chunk size when non-zero.
	DataSize uint32
	Data     []byte
}

func or[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// Bytes renders the file.
func (w WAV) Bytes() []byte {
	buf := new(bytes.Buffer)

	bits := or(w.BitsPerSample, 16)
	blockAlign := w.Channels * (bits / 8)
	byteRate := w.SampleRate * uint32(blockAlign)

	body := new(bytes.Buffer)
	body.WriteString(or(w.WaveID, "WAVE"))

	body.WriteString(or(w.FmtID, "fmt "))
	binary.Write(body, binary.LittleEndian, uint32(16+len(w.FmtExtra)))
	binary.Write(body, binary.LittleEndian, or(w.AudioFormat, 1))
	binary.Write(body, binary.LittleEndian, w.Channels)
	binary.Write(body, binary.LittleEndian, w.SampleRate)
	binary.Write(body, binary.LittleEndian, byteRate)
	binary.Write(body, binary.LittleEndian, blockAlign)
	binary.Write(body, binary.LittleEndian, bits)
	body.Write(w.FmtExtra)

	for _, c := range w.Chunks {
		body.WriteString(c.ID)
		binary.Write(body, binary.LittleEndian, uint32(len(c.Body)))
		body.Write(c.Body)
	}

	if !w.OmitData {
		body.WriteString("data")
		binary.Write(body, binary.LittleEndian, or(w.DataSize, uint32(len(w.Data))))
		body.Write(w.Data)
	}

	buf.WriteString(or(w.RIFFID, "RIFF"))
	binary.Write(buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())

	return buf.Bytes()
}

// WriteFile renders the file into a fresh temporary directory and returns
// its path.
func (w WAV) WriteFile(tb testing.TB) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.wav")
	if err := os.WriteFile(path, w.Bytes(), 0o600); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}

	return path
}

// Ramp returns n bytes counting up from 0, wrapping at 256.
func Ramp(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
