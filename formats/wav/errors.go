// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile             = errors.New("not a WAV file")
	ErrSeekableSourceRequired = errors.New("WAV source must be an io.ReadSeeker")
)
