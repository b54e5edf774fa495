// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"github.com/GaussianWonder/audio-sample-reader/buffer"
	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// SyncIncrementalReader decodes on demand: each pull decodes just
// enough chunks to cover one host buffer, then serves the frames.
// Decoded frames accumulate, so seeking backwards is a cursor move
// and seeking forwards decodes the gap.
//
// A decode failure fails only the pull that needed the failing
// frames; the reader stays usable unless the session violated the
// amplitude contract, which poisons it permanently.
type SyncIncrementalReader struct {
	st     *stream
	hostN  int
	closed bool
}

// NewSyncIncremental wraps sess without decoding anything upfront.
func NewSyncIncremental(sess decode.Session, hostBufferSize int, cfg Config) (*SyncIncrementalReader, error) {
	if hostBufferSize <= 0 {
		return nil, ErrInvalidHostBufferSize
	}
	cfg = cfg.withDefaults()
	return &SyncIncrementalReader{
		st:    newStream(sess, cfg.DecodeChunkFrames),
		hostN: hostBufferSize,
	}, nil
}

func (r *SyncIncrementalReader) Pull() (buffer.Block, error) {
	if r.closed {
		return buffer.Block{}, ErrClosed
	}
	if err := r.st.fillTo(r.st.cur.Position() + int64(r.hostN)); err != nil {
		return buffer.Block{}, err
	}
	return r.st.pull(r.hostN)
}

func (r *SyncIncrementalReader) SeekTo(pos int64) error {
	if r.closed {
		return ErrClosed
	}
	return r.st.seek(pos)
}

func (r *SyncIncrementalReader) Metadata() decode.Metadata { return r.st.meta }

func (r *SyncIncrementalReader) ConsumedFraction() float64 { return r.st.consumedFraction() }

func (r *SyncIncrementalReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.st.close()
}
