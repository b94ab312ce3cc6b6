// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audraw/adef"
	"github.com/ik5/audraw/utils"
)

// WriterConfig configures a Writer.
type WriterConfig struct {
	// Format is mandatory and must be one of SupportedFormats.
	Format adef.Format
	Logger *slog.Logger
}

// Writer appends frames of PCM data to a WAVE stream. The size fields of
// the header are written as zero and patched by Close; a file whose Writer
// was never closed reports an empty data chunk.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	ws     io.WriteSeeker
	closer io.Closer
	cfg    WriterConfig
	header *Header

	dataLength uint32
}

// Create creates or truncates the file at path and writes a provisional
// header. On error no file handle is left open.
func Create(path string, cfg WriterConfig) (*Writer, error) {
	if !IsSupported(cfg.Format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, cfg.Format)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, ioError("create", err)
	}

	w, err := NewWriter(f, cfg)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	w.closer = f

	return w, nil
}

// NewWriter writes a provisional header to ws at its current position,
// which must be the start of the stream. The caller keeps ownership of ws.
func NewWriter(ws io.WriteSeeker, cfg WriterConfig) (*Writer, error) {
	if ws == nil {
		return nil, fmt.Errorf("%w: nil stream", ErrInvalidArgument)
	}
	if !IsSupported(cfg.Format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, cfg.Format)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	h := NewHeader(cfg.Format)
	if _, err := h.WriteTo(ws); err != nil {
		return nil, err
	}

	cfg.Logger.Debug("wav writer opened", "format", cfg.Format.String())

	return &Writer{
		ws:     ws,
		cfg:    cfg,
		header: h,
	}, nil
}

// Format returns the format every written frame must carry.
func (w *Writer) Format() adef.Format { return w.cfg.Format }

// DataLength returns the number of PCM bytes written so far.
func (w *Writer) DataLength() uint32 { return w.dataLength }

// WriteFrame appends the PCM bytes of f in a single write. The frame format
// must equal the writer format exactly.
func (w *Writer) WriteFrame(f Frame) error {
	if w.ws == nil {
		return fmt.Errorf("%w: writer is closed", ErrInvalidArgument)
	}
	if !f.Info.Format.Equal(w.cfg.Format) {
		return fmt.Errorf("%w: got %s, want %s", ErrFormatMismatch, f.Info.Format, w.cfg.Format)
	}
	if uint64(w.dataLength)+uint64(len(f.Data)) > maxDataLength {
		return fmt.Errorf("%w: %d + %d bytes", ErrDataTooLarge, w.dataLength, len(f.Data))
	}

	n, err := w.ws.Write(f.Data)
	if err != nil {
		w.cfg.Logger.Error("wav frame write failed", "index", f.Info.Index, "error", err)
		return ioError("write", err)
	}
	if n != len(f.Data) {
		return fmt.Errorf("%w: %d/%d bytes", ErrShortWrite, n, len(f.Data))
	}

	w.dataLength += uint32(n)

	return nil
}

// WriteIntBuffer packs the samples of buf as 16-bit little-endian PCM and
// writes them as one frame. info.Format is ignored; the writer format is
// used.
//
// buf.Format is required and must agree with the writer on rate and channel
// count. buf.SourceBitDepth must be 16 or zero (unset), and every sample must
// fit in an int16. A rejected buffer writes nothing.
func (w *Writer) WriteIntBuffer(buf *goaudio.IntBuffer, info adef.FrameInfo) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	if buf.Format == nil {
		return fmt.Errorf("%w: buffer has no format", ErrInvalidArgument)
	}

	want := w.cfg.Format.GoAudio()
	if buf.Format.NumChannels != want.NumChannels || buf.Format.SampleRate != want.SampleRate {
		return fmt.Errorf("%w: buffer is %d Hz %d ch", ErrFormatMismatch, buf.Format.SampleRate, buf.Format.NumChannels)
	}
	if buf.SourceBitDepth != 0 && buf.SourceBitDepth != 16 {
		return fmt.Errorf("%w: buffer is %d-bit", ErrFormatMismatch, buf.SourceBitDepth)
	}

	for i, v := range buf.Data {
		if v < math.MinInt16 || v > math.MaxInt16 {
			return fmt.Errorf("%w: sample %d is %d", ErrSampleOutOfRange, i, v)
		}
	}

	data := make([]byte, 2*len(buf.Data))
	for i, v := range buf.Data {
		utils.PutInt16LE(data[2*i:], int16(v))
	}

	info.Format = w.cfg.Format

	return w.WriteFrame(Frame{Data: data, Info: info})
}

// Close patches the header size fields and releases the file when the
// Writer was created by Create. The file is released even if patching fails.
// Calling Close more than once is a no-op.
func (w *Writer) Close() error {
	if w.ws == nil {
		return nil
	}

	err := w.header.finalize(w.ws, w.dataLength)
	if err != nil {
		w.cfg.Logger.Error("wav header finalize failed", "data_length", w.dataLength, "error", err)
	}
	w.ws = nil

	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil {
			err = errors.Join(err, ioError("close", cerr))
		}
		w.closer = nil
	}

	if err == nil {
		w.cfg.Logger.Debug("wav writer closed", "data_length", w.dataLength)
	}

	return err
}
