// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"slices"
	"sync"

	"github.com/ik5/audraw/adef"
)

var catalogRates = [...]uint32{
	8000, 11025, 12000, 16000, 22050, 24000,
	32000, 44100, 48000, 64000, 88200, 96000,
}

// catalog is filled on first use and never modified afterwards.
var catalog = sync.OnceValue(func() []adef.Format {
	formats := make([]adef.Format, 0, len(catalogRates)*2)
	for _, rate := range catalogRates {
		formats = append(formats, adef.PCM16(rate, 1), adef.PCM16(rate, 2))
	}
	return formats
})

// SupportedFormats returns the formats accepted by the Writer, ordered by
// sample rate with mono before stereo.
func SupportedFormats() []adef.Format {
	return slices.Clone(catalog())
}

// IsSupported reports whether f exactly matches a supported format.
func IsSupported(f adef.Format) bool {
	return adef.Intersect(f, catalog())
}
