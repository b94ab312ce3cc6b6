// SPDX-License-Identifier: EPL-2.0

package adef

import (
	"fmt"
	"slices"

	goaudio "github.com/go-audio/audio"
)

// Encoding identifies how samples are coded.
type Encoding int

const (
	EncodingUnknown Encoding = iota
	EncodingPCM
)

func (e Encoding) String() string {
	switch e {
	case EncodingPCM:
		return "PCM"
	default:
		return "unknown"
	}
}

// WaveFormat is the audio_format tag carried by a WAVE fmt chunk.
type WaveFormat uint16

const (
	WaveFormatUnknown WaveFormat = 0
	WaveFormatPCM     WaveFormat = 1
)

// PCM holds the sample layout flags of a PCM stream.
type PCM struct {
	LittleEndian bool
	Interleaved  bool
	Signed       bool
}

// Format describes a stream of audio samples.
//
// Format is a comparable value; two formats are the same only when every
// field matches.
type Format struct {
	Encoding     Encoding
	BitDepth     uint
	ChannelCount uint
	SampleRate   uint32
	PCM          PCM
}

// PCM16 returns the 16-bit signed, little-endian, interleaved PCM format
// at the given rate and channel count.
func PCM16(sampleRate uint32, channels uint) Format {
	return Format{
		Encoding:     EncodingPCM,
		BitDepth:     16,
		ChannelCount: channels,
		SampleRate:   sampleRate,
		PCM: PCM{
			LittleEndian: true,
			Interleaved:  true,
			Signed:       true,
		},
	}
}

// Equal reports whether f and other describe exactly the same format.
func (f Format) Equal(other Format) bool {
	return f == other
}

// BytesPerSample returns the size of a single sample of one channel.
func (f Format) BytesPerSample() uint {
	return f.BitDepth / 8
}

// GoAudio converts f to the go-audio format description.
func (f Format) GoAudio() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: int(f.ChannelCount),
		SampleRate:  int(f.SampleRate),
	}
}

func (f Format) String() string {
	layout := "mono"
	switch f.ChannelCount {
	case 1:
	case 2:
		layout = "stereo"
	default:
		layout = fmt.Sprintf("%dch", f.ChannelCount)
	}

	sign := "u"
	if f.PCM.Signed {
		sign = "s"
	}

	endian := "be"
	if f.PCM.LittleEndian {
		endian = "le"
	}

	return fmt.Sprintf("%s %s%d%s %dHz %s", f.Encoding, sign, f.BitDepth, endian, f.SampleRate, layout)
}

// Intersect reports whether f equals any format in set.
func Intersect(f Format, set []Format) bool {
	return slices.ContainsFunc(set, f.Equal)
}
