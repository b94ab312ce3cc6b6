// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audraw/adef"
	"github.com/ik5/audraw/internal/audiotest"
	"github.com/orcaman/writerseeker"
)

type failingSeeker struct {
	*bytes.Reader
	err error
}

func (s failingSeeker) Seek(int64, int) (int64, error) { return 0, s.err }

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error)       { return 0, r.err }
func (r failingReader) Seek(int64, int) (int64, error) { return 0, nil }

func TestNewHeader_Layout(t *testing.T) {
	t.Parallel()

	h := NewHeader(adef.PCM16(16000, 2))
	h.ChunkSize = dataIDOffset + 100
	h.Subchunk2Size = 100

	buf, err := h.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	if len(buf) != HeaderSize {
		t.Fatalf("MarshalBinary() len = %d, want %d", len(buf), HeaderSize)
	}

	le := binary.LittleEndian
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"RIFF", string(buf[0:4]), "RIFF"},
		{"chunk size", le.Uint32(buf[4:8]), uint32(136)},
		{"WAVE", string(buf[8:12]), "WAVE"},
		{"fmt id", string(buf[12:16]), "fmt "},
		{"fmt size", le.Uint32(buf[16:20]), uint32(16)},
		{"audio format", le.Uint16(buf[20:22]), uint16(1)},
		{"channels", le.Uint16(buf[22:24]), uint16(2)},
		{"sample rate", le.Uint32(buf[24:28]), uint32(16000)},
		{"byte rate", le.Uint32(buf[28:32]), uint32(64000)},
		{"block align", le.Uint16(buf[32:34]), uint16(4)},
		{"bits", le.Uint16(buf[34:36]), uint16(16)},
		{"data id", string(buf[36:40]), "data"},
		{"data size", le.Uint32(buf[40:44]), uint32(100)},
	}

	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestHeader_UnmarshalBinary(t *testing.T) {
	t.Parallel()

	want := NewHeader(adef.PCM16(44100, 1))
	want.ChunkSize = 1036
	want.Subchunk2Size = 1000

	buf, _ := want.MarshalBinary()

	var got Header
	if err := got.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}
	if got != *want {
		t.Errorf("UnmarshalBinary() = %+v, want %+v", got, *want)
	}

	if err := got.UnmarshalBinary(buf[:43]); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("UnmarshalBinary(43 bytes) error = %v, want ErrInvalidArgument", err)
	}
}

func TestReadHeader_Canonical(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV{Channels: 2, SampleRate: 22050, Data: audiotest.Ramp(40)}.Bytes()
	rs := bytes.NewReader(data)

	h, err := ReadHeader(rs)
	if err != nil {
		t.Fatalf("ReadHeader() error = %v", err)
	}

	if h.NumChannels != 2 || h.SampleRate != 22050 || h.BitsPerSample != 16 {
		t.Errorf("ReadHeader() = %d ch %d Hz %d bits, want 2 ch 22050 Hz 16 bits",
			h.NumChannels, h.SampleRate, h.BitsPerSample)
	}
	if h.Subchunk2Size != 40 {
		t.Errorf("Subchunk2Size = %d, want 40", h.Subchunk2Size)
	}
	if h.ChunkSize != 76 {
		t.Errorf("ChunkSize = %d, want 76", h.ChunkSize)
	}

	pos, _ := rs.Seek(0, io.SeekCurrent)
	if pos != HeaderSize {
		t.Errorf("position after header = %d, want %d", pos, HeaderSize)
	}
}

func TestReadHeader_SkipsChunks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wav     audiotest.WAV
		wantPos int64
	}{
		{
			name: "one chunk",
			wav: audiotest.WAV{
				Chunks: []audiotest.Chunk{{ID: "PAD ", Body: []byte{1, 2, 3, 4}}},
			},
			wantPos: 56,
		},
		{
			name: "two chunks",
			wav: audiotest.WAV{
				Chunks: []audiotest.Chunk{
					{ID: "LIST", Body: []byte("INFOISFT")},
					{ID: "fact", Body: []byte{0, 0, 0, 0}},
				},
			},
			wantPos: 72,
		},
		{
			name:    "extended fmt",
			wav:     audiotest.WAV{FmtExtra: []byte{0, 0}},
			wantPos: 46,
		},
		{
			name: "extended fmt then chunk",
			wav: audiotest.WAV{
				FmtExtra: []byte{0, 0},
				Chunks:   []audiotest.Chunk{{ID: "PAD ", Body: []byte{9, 9}}},
			},
			wantPos: 56,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.wav.Channels = 1
			tt.wav.SampleRate = 16000
			tt.wav.Data = audiotest.Ramp(8)
			rs := bytes.NewReader(tt.wav.Bytes())

			h, err := ReadHeader(rs)
			if err != nil {
				t.Fatalf("ReadHeader() error = %v", err)
			}
			if h.Subchunk2ID != dataID || h.Subchunk2Size != 8 {
				t.Errorf("data chunk = %q/%d, want \"data\"/8", h.Subchunk2ID, h.Subchunk2Size)
			}

			pos, _ := rs.Seek(0, io.SeekCurrent)
			if pos != tt.wantPos {
				t.Errorf("position = %d, want %d", pos, tt.wantPos)
			}

			rest, _ := io.ReadAll(rs)
			if !bytes.Equal(rest, audiotest.Ramp(8)) {
				t.Errorf("payload = %v, want %v", rest, audiotest.Ramp(8))
			}
		})
	}
}

func TestReadHeader_Rejects(t *testing.T) {
	t.Parallel()

	canonical := audiotest.WAV{Channels: 1, SampleRate: 8000, Data: audiotest.Ramp(4)}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotWavFile},
		{"truncated", canonical.Bytes()[:20], ErrNotWavFile},
		{"bad riff", audiotest.WAV{RIFFID: "RIFX", Channels: 1, SampleRate: 8000}.Bytes(), ErrNotWavFile},
		{"bad wave", audiotest.WAV{WaveID: "AVI ", Channels: 1, SampleRate: 8000}.Bytes(), ErrNotWavFile},
		{"bad fmt", audiotest.WAV{FmtID: "junk", Channels: 1, SampleRate: 8000}.Bytes(), ErrUnsupportedWavLayout},
		{
			"no data chunk",
			audiotest.WAV{
				Channels: 1, SampleRate: 8000, OmitData: true,
				Chunks: []audiotest.Chunk{{ID: "LIST", Body: make([]byte, 8)}},
			}.Bytes(),
			ErrUnsupportedWavChunks,
		},
		{
			"chunk overruns file",
			audiotest.WAV{
				Channels: 1, SampleRate: 8000, OmitData: true,
				Chunks: []audiotest.Chunk{{ID: "LIST", Body: make([]byte, 8)}, {ID: "junk", Body: nil}},
			}.Bytes()[:50],
			ErrUnsupportedWavChunks,
		},
		{"ieee float", audiotest.WAV{AudioFormat: 3, Channels: 1, SampleRate: 8000, BitsPerSample: 32}.Bytes(), ErrNotPCM},
		{"extensible", audiotest.WAV{AudioFormat: 0xfffe, Channels: 2, SampleRate: 8000}.Bytes(), ErrNotPCM},
		{"zero channels", audiotest.WAV{SampleRate: 8000}.Bytes(), ErrUnsupportedWavLayout},
		{"zero rate", audiotest.WAV{Channels: 1}.Bytes(), ErrUnsupportedWavLayout},
		{"12 bits", audiotest.WAV{Channels: 1, SampleRate: 8000, BitsPerSample: 12}.Bytes(), ErrUnsupportedWavLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadHeader(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("ReadHeader() error = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("ReadHeader() error = %v, want ErrInvalidFormat kind", err)
			}
		})
	}
}

func TestReadHeader_IOErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	t.Run("read", func(t *testing.T) {
		t.Parallel()

		_, err := ReadHeader(failingReader{err: boom})
		if !errors.Is(err, ErrIO) || !errors.Is(err, boom) {
			t.Errorf("ReadHeader() error = %v, want ErrIO wrapping boom", err)
		}
	})

	t.Run("seek", func(t *testing.T) {
		t.Parallel()

		data := audiotest.WAV{
			Channels: 1, SampleRate: 8000,
			Chunks: []audiotest.Chunk{{ID: "PAD ", Body: []byte{0, 0}}},
		}.Bytes()

		_, err := ReadHeader(failingSeeker{Reader: bytes.NewReader(data), err: boom})
		if !errors.Is(err, ErrIO) || !errors.Is(err, boom) {
			t.Errorf("ReadHeader() error = %v, want ErrIO wrapping boom", err)
		}
	})
}

func TestHeader_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		wav  audiotest.WAV
		want adef.Format
	}{
		{
			name: "16-bit stereo",
			wav:  audiotest.WAV{Channels: 2, SampleRate: 48000},
			want: adef.PCM16(48000, 2),
		},
		{
			name: "8-bit is unsigned",
			wav:  audiotest.WAV{Channels: 1, SampleRate: 11025, BitsPerSample: 8},
			want: adef.Format{
				Encoding:     adef.EncodingPCM,
				BitDepth:     8,
				ChannelCount: 1,
				SampleRate:   11025,
				PCM:          adef.PCM{LittleEndian: true, Interleaved: true},
			},
		},
		{
			name: "24-bit",
			wav:  audiotest.WAV{Channels: 3, SampleRate: 96000, BitsPerSample: 24},
			want: adef.Format{
				Encoding:     adef.EncodingPCM,
				BitDepth:     24,
				ChannelCount: 3,
				SampleRate:   96000,
				PCM:          adef.PCM{LittleEndian: true, Interleaved: true, Signed: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, err := ReadHeader(bytes.NewReader(tt.wav.Bytes()))
			if err != nil {
				t.Fatalf("ReadHeader() error = %v", err)
			}
			if got := h.Format(); !got.Equal(tt.want) {
				t.Errorf("Format() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHeader_Finalize(t *testing.T) {
	t.Parallel()

	ws := &writerseeker.WriterSeeker{}
	h := NewHeader(adef.PCM16(8000, 1))

	if _, err := h.WriteTo(ws); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if _, err := ws.Write(audiotest.Ramp(10)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := h.finalize(ws, 10); err != nil {
		t.Fatalf("finalize() error = %v", err)
	}

	out, _ := io.ReadAll(ws.Reader())
	if len(out) != HeaderSize+10 {
		t.Fatalf("file size = %d, want %d", len(out), HeaderSize+10)
	}
	if got := binary.LittleEndian.Uint32(out[4:8]); got != 46 {
		t.Errorf("chunk size = %d, want 46", got)
	}
	if got := binary.LittleEndian.Uint32(out[40:44]); got != 10 {
		t.Errorf("data size = %d, want 10", got)
	}
	if !bytes.Equal(out[HeaderSize:], audiotest.Ramp(10)) {
		t.Error("finalize() modified the payload")
	}
}
