// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the source is not a valid AIFF file.
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedAiffLayout indicates an AIFF layout go-audio cannot describe.
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
