// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides a decode session for MPEG audio, built on
// github.com/hajimehoshi/go-mp3. The underlying decoder always emits 16-bit
// stereo PCM, so chunks are produced stereo regardless of the encoded
// layout. go-mp3 does not surface LAME gapless headers, so delay and
// padding are reported as zero; sources that need gapless trimming should
// carry that information through a session wrapper. Seeking is supported
// when the input source is an io.Seeker.
package mp3
