// SPDX-License-Identifier: EPL-2.0

package decode

import "errors"

var (
	// ErrUnsupportedSeek reports a seek on a session whose source or
	// codec cannot reposition.
	ErrUnsupportedSeek = errors.New("seek not supported by this session")

	// ErrSeekOutOfRange reports a seek target outside the stream, such
	// as a negative frame index.
	ErrSeekOutOfRange = errors.New("seek target out of range")

	// ErrUnsupportedChannelLayout reports source material with more than
	// two channels.
	ErrUnsupportedChannelLayout = errors.New("only mono and stereo sources are supported")
)
