// SPDX-License-Identifier: EPL-2.0

package buffer

import "errors"

var (
	// ErrInvalidAmplitude reports a sample outside [-1, 1]. It indicates a
	// broken decode session, not bad caller input, and is never clamped away.
	ErrInvalidAmplitude = errors.New("sample amplitude outside [-1, 1]")

	// ErrOutOfRange reports a slice request past the buffered frame count.
	ErrOutOfRange = errors.New("slice out of buffered range")

	// ErrSeekOutOfRange reports a seek target outside the logical timeline.
	ErrSeekOutOfRange = errors.New("seek position out of range")

	// ErrChannelMismatch reports left/right slices of unequal length.
	ErrChannelMismatch = errors.New("left and right channels differ in length")
)
