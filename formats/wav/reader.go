// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/bits"
	"os"

	"github.com/ik5/audraw/adef"
)

// DefaultFrameLength is the number of samples per frame used when
// ReaderConfig.FrameLength is zero.
const DefaultFrameLength = 1024

// Frame is a block of raw PCM bytes with its metadata.
type Frame struct {
	Data []byte
	Info adef.FrameInfo
}

// ReaderConfig configures a Reader. Format, WaveFormat and DataLength are
// taken from the file header; any value supplied by the caller is replaced.
type ReaderConfig struct {
	// DataLength is the PCM byte count declared by the data chunk.
	DataLength int64
	Format     adef.Format
	WaveFormat adef.WaveFormat
	// FrameLength is the number of samples per channel in each frame.
	FrameLength uint
	Logger      *slog.Logger
}

// Reader reads fixed-size frames of PCM data from a WAVE stream.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	rs     io.ReadSeeker
	closer io.Closer
	cfg    ReaderConfig
	header *Header

	frameSize int
	step      uint64

	// remaining is decremented by the full frame size on every read, so it
	// goes negative once the data chunk has been consumed.
	remaining int64
	index     int32
	timestamp uint64
}

// Open opens the WAVE file at path and reads its header. The returned
// Reader owns the file and closes it in Close. On error no file is left open.
func Open(path string, cfg ReaderConfig) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open", err)
	}

	r, err := NewReader(f, cfg)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f

	return r, nil
}

// NewReader reads the WAVE header from rs, which must be positioned at the
// start of the stream. The caller keeps ownership of rs.
func NewReader(rs io.ReadSeeker, cfg ReaderConfig) (*Reader, error) {
	if rs == nil {
		return nil, fmt.Errorf("%w: nil stream", ErrInvalidArgument)
	}

	if cfg.FrameLength == 0 {
		cfg.FrameLength = DefaultFrameLength
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	h, err := ReadHeader(rs)
	if err != nil {
		cfg.Logger.Debug("wav header rejected", "error", err)
		return nil, err
	}

	cfg.Format = h.Format()
	cfg.WaveFormat = h.AudioFormat
	cfg.DataLength = int64(h.Subchunk2Size)

	size, step, ok := frameGeometry(cfg.FrameLength, cfg.Format)
	if !ok {
		err := fmt.Errorf("%w: %d samples of %s", ErrFrameTooLarge, cfg.FrameLength, cfg.Format)
		cfg.Logger.Debug("wav reader rejected", "error", err)
		return nil, err
	}

	r := &Reader{
		rs:        rs,
		cfg:       cfg,
		header:    h,
		frameSize: size,
		step:      step,
		remaining: cfg.DataLength,
	}

	cfg.Logger.Debug("wav reader opened",
		"format", cfg.Format.String(),
		"data_length", cfg.DataLength,
		"frame_length", cfg.FrameLength,
		"frame_size", r.frameSize,
		"writable", IsSupported(cfg.Format),
	)

	return r, nil
}

// frameGeometry returns the frame size in bytes and the timestamp step in
// microseconds. ok is false when either does not fit its type.
func frameGeometry(frameLength uint, f adef.Format) (size int, step uint64, ok bool) {
	hi, lo := bits.Mul64(uint64(frameLength), uint64(f.ChannelCount)*uint64(f.BytesPerSample()))
	if hi != 0 || lo > math.MaxInt {
		return 0, 0, false
	}

	hi, us := bits.Mul64(uint64(adef.TimescaleMicroseconds), uint64(frameLength))
	rate := uint64(f.SampleRate)
	if hi >= rate {
		return 0, 0, false
	}
	step, _ = bits.Div64(hi, us, rate)

	return int(lo), step, true
}

// Config returns the resolved configuration.
func (r *Reader) Config() ReaderConfig { return r.cfg }

// Header returns the parsed header.
func (r *Reader) Header() Header { return *r.header }

// MinBufSize returns the size in bytes of one frame. Buffers passed to
// ReadFrame must be at least this large.
func (r *Reader) MinBufSize() int { return r.frameSize }

// Remaining returns the declared PCM bytes not yet consumed. It is negative
// after a short final read.
func (r *Reader) Remaining() int64 { return r.remaining }

// ReadFrame reads one frame into buf and returns it with its metadata.
// Frame.Data aliases buf.
//
// A frame is either complete or an error: when fewer than MinBufSize bytes
// are left in the data chunk the call fails with ErrShortRead, which also
// matches io.EOF when nothing was left at all.
func (r *Reader) ReadFrame(buf []byte) (Frame, error) {
	if r.rs == nil {
		return Frame{}, fmt.Errorf("%w: reader is closed", ErrInvalidArgument)
	}
	if len(buf) < r.frameSize {
		return Frame{}, fmt.Errorf("%w: %d < %d", ErrBufferTooSmall, len(buf), r.frameSize)
	}

	want := int64(r.frameSize)
	avail := min(want, max(r.remaining, 0))

	n, err := io.ReadFull(r.rs, buf[:avail])
	r.remaining -= want

	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		r.cfg.Logger.Error("wav frame read failed", "index", r.index, "error", err)
		return Frame{}, ioError("read", err)
	}
	if int64(n) != want {
		if n == 0 {
			return Frame{}, fmt.Errorf("%w: %w", ErrShortRead, io.EOF)
		}
		return Frame{}, fmt.Errorf("%w: %d/%d bytes", ErrShortRead, n, want)
	}

	frame := Frame{
		Data: buf[:want],
		Info: adef.FrameInfo{
			Format:    r.cfg.Format,
			Timestamp: r.timestamp,
			Timescale: adef.TimescaleMicroseconds,
			Index:     r.index,
		},
	}

	r.index++
	r.timestamp += r.step

	return frame, nil
}

// Close releases the underlying file when the Reader was created by Open.
// Calling Close more than once is a no-op.
func (r *Reader) Close() error {
	if r.rs == nil {
		return nil
	}
	r.rs = nil

	if r.closer == nil {
		return nil
	}

	c := r.closer
	r.closer = nil
	if err := c.Close(); err != nil {
		return ioError("close", err)
	}

	return nil
}
