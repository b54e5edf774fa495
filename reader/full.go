// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"github.com/GaussianWonder/audio-sample-reader/buffer"
	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// SyncFullReader decodes the entire stream at construction and serves
// pulls from memory. Construction cost is the whole decode; every pull
// afterwards is a slice. Suited to short files whose decoded size fits
// the full-decode thresholds.
type SyncFullReader struct {
	st     *stream
	hostN  int
	closed bool
}

// NewSyncFull decodes everything sess can produce and returns a reader
// over the result. On decode failure the session is closed and the
// error returned; a partially decoded stream is never served.
func NewSyncFull(sess decode.Session, hostBufferSize int, cfg Config) (*SyncFullReader, error) {
	if hostBufferSize <= 0 {
		return nil, ErrInvalidHostBufferSize
	}
	cfg = cfg.withDefaults()
	st := newStream(sess, cfg.DecodeChunkFrames)
	if err := st.fillAll(); err != nil {
		sess.Close()
		return nil, err
	}
	if cfg.PadFinalBlock {
		if added := st.buf.PadSilence(hostBufferSize); added > 0 {
			st.cur.SetTotal(int64(st.buf.FrameCount()))
		}
	}
	return &SyncFullReader{st: st, hostN: hostBufferSize}, nil
}

func (r *SyncFullReader) Pull() (buffer.Block, error) {
	if r.closed {
		return buffer.Block{}, ErrClosed
	}
	return r.st.pull(r.hostN)
}

func (r *SyncFullReader) SeekTo(pos int64) error {
	if r.closed {
		return ErrClosed
	}
	return r.st.seek(pos)
}

func (r *SyncFullReader) Metadata() decode.Metadata { return r.st.meta }

func (r *SyncFullReader) ConsumedFraction() float64 { return r.st.consumedFraction() }

func (r *SyncFullReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.st.close()
}
