// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audraw/audio"
	"github.com/ik5/audraw/utils"
)

type wavSource struct {
	r          io.Reader
	closer     io.Closer
	sampleRate int
	channels   int
	buf        []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) BufSize() int    { return cap(s.buf) / 2 }

func (s *wavSource) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples converts interleaved 16-bit samples to float32 in [-1, 1].
func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(s.buf) < len(dst)*2 {
		s.buf = make([]byte, len(dst)*2)
	}
	s.buf = s.buf[:len(dst)*2]

	n, err := io.ReadFull(s.r, s.buf)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		err = io.EOF
		if n%2 != 0 {
			err = fmt.Errorf("%w: odd trailing byte in data chunk", ErrShortRead)
		}
	case err != nil:
		err = ioError("read", err)
	}

	// Samples read before a failure are still delivered with the error.
	samples := n / 2
	for i := range samples {
		dst[i] = float32(utils.Int16LE(s.buf[2*i:])) / 32768.0
	}

	return samples, err
}

// Decoder turns a WAVE stream into an audio.Source. Chunks placed before
// the data chunk are skipped. Input that cannot seek is buffered in memory.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, ioError("read", err)
		}
		rs = bytes.NewReader(data)
	}

	h, err := ReadHeader(rs)
	if err != nil {
		return nil, err
	}
	if h.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: got %d bits", ErrOnlyPCM16bitSupported, h.BitsPerSample)
	}

	src := &wavSource{
		r:          io.LimitReader(rs, int64(h.Subchunk2Size)),
		sampleRate: int(h.SampleRate),
		channels:   int(h.NumChannels),
		buf:        make([]byte, 8192),
	}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}

	return src, nil
}
