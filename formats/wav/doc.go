// SPDX-License-Identifier: EPL-2.0

// Package wav provides a decode session for RIFF/WAVE PCM sources, built on
// github.com/go-audio/wav. Integer PCM of any supported bit depth is
// normalized to float32 in [-1.0, 1.0]; mono content is duplicated into
// both output channels. WAV carries no codec delay or padding, so both
// metadata fields are zero and the total frame count is derived from the
// data chunk length.
package wav
