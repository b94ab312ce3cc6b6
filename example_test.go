// SPDX-License-Identifier: EPL-2.0

package audraw_test

import (
	"fmt"
	"log"

	"github.com/ik5/audraw"
	"github.com/ik5/audraw/adef"
	"github.com/ik5/audraw/formats/wav"
	"github.com/ik5/audraw/internal/audiotest"
	"github.com/orcaman/writerseeker"
)

func ExampleEncode() {
	// 100 ms of a stereo tone, written as 20 ms mono frames.
	src := audiotest.NewSineSource(16000, 2, 1600, 440)

	ws := &writerseeker.WriterSeeker{}
	w, err := wav.NewWriter(ws, wav.WriterConfig{Format: adef.PCM16(16000, 1)})
	if err != nil {
		log.Fatal(err)
	}

	frames, err := audraw.Encode(src, w, 320)
	if err != nil {
		log.Fatal(err)
	}
	if err := w.Close(); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d frames, %d bytes of PCM\n", frames, w.DataLength())

	// Output:
	// 5 frames, 3200 bytes of PCM
}
