// SPDX-License-Identifier: EPL-2.0

// Package flac provides a decode session for FLAC sources, built on
// github.com/mewkiz/flac. FLAC frames rarely align with requested chunk
// sizes, so the session buffers the spill between calls. Subframe samples
// are normalized by the frame's bit depth.
package flac
