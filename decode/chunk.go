// SPDX-License-Identifier: EPL-2.0

package decode

// Chunk is one batch of decoded stereo frames in planar layout. Both
// channels hold the same number of normalized samples.
type Chunk struct {
	Left  []float32
	Right []float32
}

// FrameCount returns the number of frames in the chunk.
func (c Chunk) FrameCount() int {
	return len(c.Left)
}

// Empty reports whether the chunk holds no frames.
func (c Chunk) Empty() bool {
	return len(c.Left) == 0
}

// ChunkFromInterleaved splits interleaved normalized samples into a planar
// stereo chunk. Mono input is duplicated into both channels.
func ChunkFromInterleaved(samples []float32, channels int) Chunk {
	switch channels {
	case 1:
		return Chunk{Left: samples, Right: samples}
	case 2:
		frames := len(samples) / 2
		c := Chunk{
			Left:  make([]float32, frames),
			Right: make([]float32, frames),
		}
		for i := 0; i < frames; i++ {
			c.Left[i] = samples[2*i]
			c.Right[i] = samples[2*i+1]
		}
		return c
	default:
		return Chunk{}
	}
}

// ChunkFromInterleavedInts normalizes interleaved integer PCM of the given
// bit depth into a planar stereo chunk. Mono input is duplicated.
func ChunkFromInterleavedInts(samples []int, channels, bitDepth int) Chunk {
	scale := 1.0 / float32(int64(1)<<(bitDepth-1))
	frames := len(samples) / channels
	c := Chunk{
		Left:  make([]float32, frames),
		Right: make([]float32, frames),
	}
	for i := 0; i < frames; i++ {
		l := clampUnit(float32(samples[i*channels]) * scale)
		r := l
		if channels == 2 {
			r = clampUnit(float32(samples[i*channels+1]) * scale)
		}
		c.Left[i] = l
		c.Right[i] = r
	}
	return c
}

// Integer PCM at full negative scale maps exactly to -1; the positive max
// lands just under 1. Rounding in the float conversion can still nudge the
// extremes past the boundary, which is not a decoder bug, so the integer
// paths pin to the unit range here.
func clampUnit(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
