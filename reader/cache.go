// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/GaussianWonder/audio-sample-reader/buffer"
	"github.com/GaussianWonder/audio-sample-reader/decode"
)

type prefetchResult struct {
	block buffer.Block
	err   error
}

// rangedError is a prefetch failure pinned to the timeline position of
// the first frame it prevented from materializing.
type rangedError struct {
	at  int64
	err error
}

// SampleCache keeps a bounded window of decoded frames around the
// consumer's position and refills it ahead of demand. It exclusively
// owns the wrapped reader; the caller must not use that reader
// directly once the cache is constructed.
//
// Prefetch failures are deferred: frames decoded before the failure
// are still served, and the error is reported by the pull that
// actually reaches the failing range. Pulled blocks are copies and
// survive eviction.
type SampleCache struct {
	inner Reader
	meta  decode.Metadata

	hostN  int
	depth  int64
	retain int64

	win      *buffer.StereoBuffer
	winStart int64
	pos      int64
	endAt    int64 // logical total, -1 until learned

	g        *errgroup.Group
	results  chan prefetchResult
	inFlight bool
	pendErr  *rangedError
	closed   bool
}

// NewSampleCache wraps inner with a read-ahead window of cfg.CacheDepthFrames
// frames, retaining cfg.CacheRetainFrames behind the position for cheap
// backward seeks.
func NewSampleCache(inner Reader, hostBufferSize int, cfg Config) (*SampleCache, error) {
	if hostBufferSize <= 0 {
		return nil, ErrInvalidHostBufferSize
	}
	cfg = cfg.withDefaults()
	depth := cfg.CacheDepthFrames
	if depth <= 0 {
		depth = int64(8 * hostBufferSize)
	}
	retain := cfg.CacheRetainFrames
	if retain <= 0 {
		retain = int64(hostBufferSize)
	}
	meta := inner.Metadata()
	endAt := buffer.TotalUnknown
	if meta.TotalFrames != decode.TotalUnknown {
		endAt = meta.TotalFrames - int64(meta.DelayFrames) - int64(meta.PaddingFrames)
		if endAt < 0 {
			endAt = 0
		}
	}
	c := &SampleCache{
		inner:   inner,
		meta:    meta,
		hostN:   hostBufferSize,
		depth:   depth,
		retain:  retain,
		win:     buffer.New(int(depth)),
		endAt:   endAt,
		g:       new(errgroup.Group),
		results: make(chan prefetchResult, 1),
	}
	c.topUp()
	return c, nil
}

func (c *SampleCache) winEnd() int64    { return c.winStart + int64(c.win.FrameCount()) }
func (c *SampleCache) available() int64 { return c.winEnd() - c.pos }

func (c *SampleCache) integrate(res prefetchResult) {
	c.inFlight = false
	if res.err != nil {
		if errors.Is(res.err, io.EOF) {
			c.endAt = c.winEnd()
			return
		}
		c.pendErr = &rangedError{at: c.winEnd(), err: res.err}
		return
	}
	if err := c.win.Append(res.block.Left, res.block.Right); err != nil {
		c.pendErr = &rangedError{at: c.winEnd(), err: err}
	}
}

// absorb drains finished prefetches without blocking.
func (c *SampleCache) absorb() {
	for c.inFlight {
		select {
		case res := <-c.results:
			c.integrate(res)
		default:
			return
		}
	}
}

// topUp launches one prefetch when the window is short of its depth
// and nothing else stands in the way. Only one prefetch runs at a
// time, so the inner reader never sees concurrent calls.
func (c *SampleCache) topUp() {
	if c.inFlight || c.pendErr != nil {
		return
	}
	if c.endAt != buffer.TotalUnknown && c.winEnd() >= c.endAt {
		return
	}
	if c.winEnd()-c.pos >= c.depth {
		return
	}
	c.inFlight = true
	// Errors travel through results and are integrated as deferred
	// ranged errors; the group only tracks goroutine lifetime.
	c.g.Go(func() error {
		blk, err := c.inner.Pull()
		c.results <- prefetchResult{block: blk, err: err}
		return nil
	})
}

// Pull serves the next block from the window, waiting on or issuing
// decodes as needed, then schedules read-ahead for the block after.
func (c *SampleCache) Pull() (buffer.Block, error) {
	if c.closed {
		return buffer.Block{}, ErrClosed
	}
	c.absorb()
	for c.available() < int64(c.hostN) {
		if c.endAt != buffer.TotalUnknown && c.winEnd() >= c.endAt {
			break
		}
		if c.pendErr != nil {
			err := c.pendErr.err
			c.pendErr = nil
			return buffer.Block{}, err
		}
		if c.inFlight {
			c.integrate(<-c.results)
			continue
		}
		blk, err := c.inner.Pull()
		c.integrate(prefetchResult{block: blk, err: err})
	}
	take := c.available()
	if take <= 0 {
		return buffer.Block{}, io.EOF
	}
	if take > int64(c.hostN) {
		take = int64(c.hostN)
	}
	blk, err := c.win.Slice(int(c.pos-c.winStart), int(take))
	if err != nil {
		return buffer.Block{}, err
	}
	out := blk.Clone()
	c.pos += take
	c.evict()
	c.topUp()
	return out, nil
}

// evict drops window frames farther behind the position than the
// retain margin, keeping memory bounded by retain plus depth.
func (c *SampleCache) evict() {
	keepFrom := c.pos - c.retain
	if keepFrom <= c.winStart {
		return
	}
	c.win.Compact(int(keepFrom - c.winStart))
	c.winStart = keepFrom
}

// SeekTo moves the position. Targets inside the current window are a
// pointer move; anything else discards the window, repositions the
// inner reader, and restarts prefetch from the target.
func (c *SampleCache) SeekTo(pos int64) error {
	if c.closed {
		return ErrClosed
	}
	if pos < 0 {
		return buffer.ErrSeekOutOfRange
	}
	if c.inFlight {
		c.integrate(<-c.results)
	}
	if c.endAt != buffer.TotalUnknown && pos > c.endAt {
		return buffer.ErrSeekOutOfRange
	}
	if pos >= c.winStart && pos <= c.winEnd() {
		c.pos = pos
		c.topUp()
		return nil
	}
	if err := c.inner.SeekTo(pos); err != nil {
		return err
	}
	c.win = buffer.New(int(c.depth))
	c.winStart = pos
	c.pos = pos
	c.pendErr = nil
	c.topUp()
	return nil
}

func (c *SampleCache) Metadata() decode.Metadata { return c.meta }

func (c *SampleCache) ConsumedFraction() float64 {
	if c.endAt <= 0 {
		return 0
	}
	return float64(c.pos) / float64(c.endAt)
}

// Close waits out any in-flight prefetch, then closes the inner
// reader. A deferred prefetch error that was never surfaced is
// reported here rather than dropped.
func (c *SampleCache) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.inFlight {
		c.integrate(<-c.results)
	}
	var err error
	if werr := c.g.Wait(); werr != nil {
		err = werr
	} else if c.pendErr != nil {
		err = c.pendErr.err
	}
	return errors.Join(err, c.inner.Close())
}
