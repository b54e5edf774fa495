// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"context"
	"sync"

	"github.com/GaussianWonder/audio-sample-reader/buffer"
	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// PullOutcome carries the result of an asynchronous pull.
type PullOutcome struct {
	Block buffer.Block
	Err   error
}

type reqKind int

const (
	reqPull reqKind = iota
	reqSeek
)

type request struct {
	kind   reqKind
	seekTo int64
	ctx    context.Context

	// ready is the claim handshake: the worker offers completion on it
	// and commits only once the caller receives. A caller that gives up
	// first leaves the stream exactly as it was before the request.
	ready chan struct{}
	out   chan PullOutcome
}

// IncrementalReader decodes on a worker goroutine so pulls suspend the
// caller instead of burning its thread on decode work. Requests are
// served strictly in the order they were enqueued, and at most one
// decode runs at a time.
//
// A pull whose context is cancelled before the result is claimed
// commits nothing: the cursor does not move and the next pull returns
// the frames the cancelled one would have. Frames decoded on its
// behalf are kept as read-ahead.
type IncrementalReader struct {
	st    *stream
	hostN int

	requests chan *request
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once
	closeErr error
}

// NewIncremental wraps sess and starts the decode worker. The worker
// has exclusive access to the session until Close.
func NewIncremental(sess decode.Session, hostBufferSize int, cfg Config) (*IncrementalReader, error) {
	if hostBufferSize <= 0 {
		return nil, ErrInvalidHostBufferSize
	}
	cfg = cfg.withDefaults()
	r := &IncrementalReader{
		st:       newStream(sess, cfg.DecodeChunkFrames),
		hostN:    hostBufferSize,
		requests: make(chan *request, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go r.run()
	return r, nil
}

func (r *IncrementalReader) run() {
	defer close(r.stopped)
	for {
		select {
		case req := <-r.requests:
			r.handle(req)
		case <-r.done:
			return
		}
	}
}

func (r *IncrementalReader) handle(req *request) {
	var fillErr error
	switch req.kind {
	case reqPull:
		fillErr = r.st.fillTo(r.st.cur.Position() + int64(r.hostN))
	case reqSeek:
		fillErr = nil
	}
	select {
	case <-req.ctx.Done():
		// Abandoned before commit. The decoded frames stay buffered
		// ahead of the cursor; the fill error, if any, will surface
		// again when the next request hits the same spot.
		return
	case req.ready <- struct{}{}:
	case <-r.done:
		return
	}
	switch req.kind {
	case reqPull:
		if fillErr != nil {
			req.out <- PullOutcome{Err: fillErr}
			return
		}
		blk, err := r.st.pull(r.hostN)
		req.out <- PullOutcome{Block: blk, Err: err}
	case reqSeek:
		req.out <- PullOutcome{Err: r.st.seek(req.seekTo)}
	}
}

// enqueue submits a request in FIFO order, blocking while the queue is
// full. This is the backpressure point: at most one request waits
// behind the one being served.
func (r *IncrementalReader) enqueue(req *request) error {
	select {
	case r.requests <- req:
		return nil
	case <-req.ctx.Done():
		return req.ctx.Err()
	case <-r.done:
		return ErrClosed
	}
}

func (r *IncrementalReader) await(req *request) (buffer.Block, error) {
	select {
	case <-req.ready:
		o := <-req.out
		return o.Block, o.Err
	case <-req.ctx.Done():
		return buffer.Block{}, req.ctx.Err()
	case <-r.done:
		return buffer.Block{}, ErrClosed
	}
}

// PullContext suspends until the worker has one host buffer ready,
// then claims it. Cancelling ctx before the claim leaves the reader
// state untouched.
func (r *IncrementalReader) PullContext(ctx context.Context) (buffer.Block, error) {
	req := &request{
		kind:  reqPull,
		ctx:   ctx,
		ready: make(chan struct{}),
		out:   make(chan PullOutcome, 1),
	}
	if err := r.enqueue(req); err != nil {
		return buffer.Block{}, err
	}
	return r.await(req)
}

// Pull is PullContext with a background context.
func (r *IncrementalReader) Pull() (buffer.Block, error) {
	return r.PullContext(context.Background())
}

// PullAsync enqueues a pull before returning, so the delivery order of
// outcomes across successive calls matches the call order even when
// results are consumed from different goroutines. The returned channel
// receives exactly one outcome.
func (r *IncrementalReader) PullAsync(ctx context.Context) (<-chan PullOutcome, error) {
	req := &request{
		kind:  reqPull,
		ctx:   ctx,
		ready: make(chan struct{}),
		out:   make(chan PullOutcome, 1),
	}
	if err := r.enqueue(req); err != nil {
		return nil, err
	}
	outcome := make(chan PullOutcome, 1)
	go func() {
		blk, err := r.await(req)
		outcome <- PullOutcome{Block: blk, Err: err}
	}()
	return outcome, nil
}

// SeekTo queues behind any in-flight pulls and repositions the stream.
func (r *IncrementalReader) SeekTo(pos int64) error {
	req := &request{
		kind:   reqSeek,
		seekTo: pos,
		ctx:    context.Background(),
		ready:  make(chan struct{}),
		out:    make(chan PullOutcome, 1),
	}
	if err := r.enqueue(req); err != nil {
		return err
	}
	_, err := r.await(req)
	return err
}

func (r *IncrementalReader) Metadata() decode.Metadata { return r.st.meta }

// ConsumedFraction reports progress through the logical timeline. Call
// it between pulls, not concurrently with one.
func (r *IncrementalReader) ConsumedFraction() float64 { return r.st.consumedFraction() }

// Close stops the worker and closes the session. In-flight requests
// that were not yet claimed are abandoned.
func (r *IncrementalReader) Close() error {
	r.once.Do(func() {
		close(r.done)
		<-r.stopped
		r.closeErr = r.st.close()
	})
	return r.closeErr
}
