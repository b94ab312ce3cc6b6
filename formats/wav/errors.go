// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidFormat   = errors.New("invalid WAV format")
	ErrIO              = errors.New("i/o error")
	ErrShortRead       = errors.New("short read")
	ErrShortWrite      = errors.New("short write")
)

var (
	ErrNotWavFile            = fmt.Errorf("%w: not a WAV file", ErrInvalidFormat)
	ErrUnsupportedWavLayout  = fmt.Errorf("%w: unsupported WAV layout", ErrInvalidFormat)
	ErrUnsupportedWavChunks  = fmt.Errorf("%w: unsupported WAV chunks", ErrInvalidFormat)
	ErrNotPCM                = fmt.Errorf("%w: audio format is not PCM", ErrInvalidFormat)
	ErrOnlyPCM16bitSupported = fmt.Errorf("%w: only PCM 16-bit supported", ErrInvalidFormat)

	ErrBufferTooSmall    = fmt.Errorf("%w: buffer smaller than frame size", ErrInvalidArgument)
	ErrUnsupportedFormat = fmt.Errorf("%w: format not supported by writer", ErrInvalidArgument)
	ErrFormatMismatch    = fmt.Errorf("%w: frame format does not match writer format", ErrInvalidArgument)
	ErrDataTooLarge      = fmt.Errorf("%w: data exceeds 4 GiB WAV limit", ErrInvalidArgument)
	ErrFrameTooLarge     = fmt.Errorf("%w: frame length too large", ErrInvalidArgument)
	ErrSampleOutOfRange  = fmt.Errorf("%w: sample out of 16-bit range", ErrInvalidArgument)
)

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
