// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"errors"
	"io"
	"testing"

	"github.com/GaussianWonder/audio-sample-reader/internal/audiotest"
)

// drainFrames pulls r to end of stream and returns both channels as flat
// slices. Fails the test on any error other than io.EOF.
func drainFrames(t *testing.T, r Reader) (left, right []float32) {
	t.Helper()
	for {
		blk, err := r.Pull()
		if errors.Is(err, io.EOF) {
			return left, right
		}
		if err != nil {
			t.Fatalf("pull: %v", err)
		}
		if blk.FrameCount() == 0 {
			t.Fatalf("pull returned empty block without EOF")
		}
		left = append(left, blk.Left...)
		right = append(right, blk.Right...)
	}
}

// expectRamp checks that frames carries the ramp signal starting at the
// given raw frame index, left positive and right negated.
func expectRamp(t *testing.T, left, right []float32, rawStart int) {
	t.Helper()
	for i := range left {
		want := audiotest.RampValue(rawStart + i)
		if left[i] != want {
			t.Fatalf("left frame %d: got %v, want %v", i, left[i], want)
		}
		if right[i] != -want {
			t.Fatalf("right frame %d: got %v, want %v", i, right[i], -want)
		}
	}
}
