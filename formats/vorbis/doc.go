// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides a decode session for Ogg Vorbis sources, built on
// github.com/jfreymuth/oggvorbis. The underlying reader already produces
// normalized float32 samples. Total length and sample-accurate seeking are
// available when the source stream supports it.
package vorbis
