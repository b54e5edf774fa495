// SPDX-License-Identifier: EPL-2.0

package reader

import "errors"

var (
	// ErrPoisoned marks a reader whose session violated the amplitude
	// contract. The violation is a collaborator bug; the reader refuses
	// all further work.
	ErrPoisoned = errors.New("reader poisoned by decoder contract violation")

	// ErrClosed reports use of a reader after Close.
	ErrClosed = errors.New("reader is closed")

	// ErrInvalidHostBufferSize reports a non-positive host buffer size.
	ErrInvalidHostBufferSize = errors.New("host buffer size must be positive")
)
