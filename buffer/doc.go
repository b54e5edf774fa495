// SPDX-License-Identifier: EPL-2.0

// Package buffer provides normalized stereo sample storage and the cursor
// that tracks playback position over it.
//
// # Sample Format
//
// Samples are float32 amplitudes in [-1.0, 1.0], stored planar (one slice
// per channel). Normalization is the decode session's responsibility; this
// package asserts the invariant and fails with ErrInvalidAmplitude rather
// than clamping, so decoder bugs surface instead of degrading audio.
//
// # Timeline
//
// The Cursor indexes the logical timeline: the frame space left after the
// decoder's delay frames are dropped from the start and padding frames from
// the end. A cursor over a stream of unknown length carries TotalUnknown
// until end of stream fixes the total via SetTotal.
//
// # Ownership
//
// A StereoBuffer is owned by exactly one reader. Slice returns read-only
// views; appending may reallocate the backing arrays, which leaves earlier
// views valid over the data they were created with.
package buffer
