// SPDX-License-Identifier: EPL-2.0

package buffer

// Block is a read-only view over a contiguous run of stereo frames.
// Both channels always hold the same number of samples.
type Block struct {
	Left  []float32
	Right []float32
}

// FrameCount returns the number of frames in the block.
func (b Block) FrameCount() int {
	return len(b.Left)
}

// Clone copies the block into fresh backing arrays, detaching it from the
// buffer that produced it.
func (b Block) Clone() Block {
	out := Block{
		Left:  make([]float32, len(b.Left)),
		Right: make([]float32, len(b.Right)),
	}
	copy(out.Left, b.Left)
	copy(out.Right, b.Right)
	return out
}

// StereoBuffer stores normalized stereo frames in planar layout, one slice
// per channel. Frames are appended in decode order; consumers read through
// Slice, which hands out views and never exposes mutable internals.
type StereoBuffer struct {
	left  []float32
	right []float32
}

// New creates a buffer with capacity pre-allocated for the given frame count.
func New(capacity int) *StereoBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &StereoBuffer{
		left:  make([]float32, 0, capacity),
		right: make([]float32, 0, capacity),
	}
}

// FrameCount returns the number of stored frames.
func (b *StereoBuffer) FrameCount() int {
	return len(b.left)
}

// Append adds frames to both channels, validating that every amplitude lies
// in [-1, 1]. A violation fails with ErrInvalidAmplitude before anything is
// stored; silent clamping would mask decoder bugs.
func (b *StereoBuffer) Append(left, right []float32) error {
	if len(left) != len(right) {
		return ErrChannelMismatch
	}
	if err := validate(left); err != nil {
		return err
	}
	if err := validate(right); err != nil {
		return err
	}
	b.left = append(b.left, left...)
	b.right = append(b.right, right...)
	return nil
}

// AppendMono duplicates a mono signal into both channels.
func (b *StereoBuffer) AppendMono(samples []float32) error {
	return b.Append(samples, samples)
}

// Slice returns a read-only view of count frames starting at start.
// Fails with ErrOutOfRange when the requested range exceeds FrameCount.
func (b *StereoBuffer) Slice(start, count int) (Block, error) {
	if start < 0 || count < 0 || start+count > len(b.left) {
		return Block{}, ErrOutOfRange
	}
	return Block{
		Left:  b.left[start : start+count : start+count],
		Right: b.right[start : start+count : start+count],
	}, nil
}

// TrimStart drops the first n frames. Used to remove decoder delay once,
// when the start of true content is known.
func (b *StereoBuffer) TrimStart(n int) {
	if n <= 0 {
		return
	}
	if n > len(b.left) {
		n = len(b.left)
	}
	b.left = b.left[n:]
	b.right = b.right[n:]
}

// TrimEnd drops the last n frames. Used to remove decoder padding once,
// when end of stream is detected.
func (b *StereoBuffer) TrimEnd(n int) {
	if n <= 0 {
		return
	}
	if n > len(b.left) {
		n = len(b.left)
	}
	b.left = b.left[:len(b.left)-n]
	b.right = b.right[:len(b.right)-n]
}

// PadSilence appends zero frames until FrameCount is a multiple of alignment.
func (b *StereoBuffer) PadSilence(alignment int) int {
	if alignment <= 0 || len(b.left)%alignment == 0 {
		return 0
	}
	added := alignment - len(b.left)%alignment
	b.left = append(b.left, make([]float32, added)...)
	b.right = append(b.right, make([]float32, added)...)
	return added
}

// Compact drops the first n frames and reuses the backing arrays, keeping
// memory proportional to what remains. Unlike TrimStart this overwrites
// storage, so any Block handed out earlier must have been cloned first.
func (b *StereoBuffer) Compact(n int) {
	if n <= 0 {
		return
	}
	if n > len(b.left) {
		n = len(b.left)
	}
	b.left = append(b.left[:0], b.left[n:]...)
	b.right = append(b.right[:0], b.right[n:]...)
}

// Reserve grows capacity by at least additional frames without changing
// contents. Existing Blocks keep pointing at the old backing arrays.
func (b *StereoBuffer) Reserve(additional int) {
	if additional <= 0 || cap(b.left)-len(b.left) >= additional {
		return
	}
	grown := make([]float32, len(b.left), len(b.left)+additional)
	copy(grown, b.left)
	b.left = grown
	grown = make([]float32, len(b.right), len(b.right)+additional)
	copy(grown, b.right)
	b.right = grown
}

func validate(samples []float32) error {
	for _, v := range samples {
		// Written this way so NaN fails too.
		if !(v >= -1 && v <= 1) {
			return ErrInvalidAmplitude
		}
	}
	return nil
}
