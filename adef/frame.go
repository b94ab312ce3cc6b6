// SPDX-License-Identifier: EPL-2.0

package adef

import "time"

// TimescaleMicroseconds is the timescale used for all synthesized frame
// timestamps.
const TimescaleMicroseconds uint32 = 1_000_000

// FrameInfo is the metadata attached to one frame of audio.
type FrameInfo struct {
	Format Format
	// Timestamp is expressed in Timescale units.
	Timestamp uint64
	Timescale uint32
	Index     int32
}

// Duration converts the timestamp to a time.Duration.
// It returns 0 when the timescale is unset.
func (i FrameInfo) Duration() time.Duration {
	if i.Timescale == 0 {
		return 0
	}

	sec := i.Timestamp / uint64(i.Timescale)
	rem := i.Timestamp % uint64(i.Timescale)

	return time.Duration(sec)*time.Second +
		time.Duration(rem*uint64(time.Second)/uint64(i.Timescale))
}
