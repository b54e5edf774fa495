// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"fmt"
	"io"

	"github.com/GaussianWonder/audio-sample-reader/buffer"
	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// Reader hands out fixed-size blocks of normalized stereo frames on the
// logical timeline, the frame index space left after decoder delay and
// padding are trimmed. The final block before end of stream may be
// shorter than the host buffer size; after it, Pull returns io.EOF.
//
// Blocks are views into reader-owned storage and stay valid until the
// reader is closed, unless the implementation documents otherwise.
// Readers are not safe for concurrent use.
type Reader interface {
	// Pull returns the next block of at most the host buffer size frames.
	Pull() (buffer.Block, error)

	// SeekTo repositions the next pull to the given logical frame index.
	// Fails with buffer.ErrSeekOutOfRange when the target lies outside
	// the known timeline.
	SeekTo(pos int64) error

	// Metadata returns the decoded stream's properties.
	Metadata() decode.Metadata

	// ConsumedFraction returns position/total in [0, 1], or 0 while the
	// total is unknown.
	ConsumedFraction() float64

	// Close releases the underlying session. Safe to call more than once.
	Close() error
}

// stream is the decode-side state shared by every reader variant: the
// session being drained, the accumulated planar buffer, and the cursor
// over the logical timeline. It applies the delay and padding trims
// exactly once each, at the moment the affected frames materialize.
type stream struct {
	sess decode.Session
	meta decode.Metadata
	buf  *buffer.StereoBuffer
	cur  *buffer.Cursor

	chunkFrames int
	delayLeft   int64
	ended       bool
	poisoned    bool
}

func newStream(sess decode.Session, chunkFrames int) *stream {
	meta := sess.Metadata()
	total := buffer.TotalUnknown
	capacity := chunkFrames
	if meta.TotalFrames != decode.TotalUnknown {
		total = meta.TotalFrames - int64(meta.DelayFrames) - int64(meta.PaddingFrames)
		if total < 0 {
			total = 0
		}
		capacity = int(total)
	}
	return &stream{
		sess:        sess,
		meta:        meta,
		buf:         buffer.New(capacity),
		cur:         buffer.NewCursor(total),
		chunkFrames: chunkFrames,
		delayLeft:   int64(meta.DelayFrames),
	}
}

// decodeStep pulls one chunk from the session and appends it. Reports
// whether the stream can still produce more frames.
func (s *stream) decodeStep() (bool, error) {
	chunk, err := s.sess.DecodeNext(s.chunkFrames)
	if aerr := s.append(chunk); aerr != nil {
		return false, aerr
	}
	if err == io.EOF {
		s.finish()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("decode: %w", err)
	}
	return true, nil
}

// append stores a chunk past the cursor, dropping the leading delay
// frames and, when the total is known upfront, any trailing padding
// frames as they arrive.
func (s *stream) append(chunk decode.Chunk) error {
	left, right := chunk.Left, chunk.Right
	if s.delayLeft > 0 {
		skip := s.delayLeft
		if n := int64(len(left)); skip > n {
			skip = n
		}
		left = left[skip:]
		right = right[skip:]
		s.delayLeft -= skip
	}
	if t := s.cur.Total(); t != buffer.TotalUnknown {
		room := t - int64(s.buf.FrameCount())
		if room < 0 {
			room = 0
		}
		if n := int64(len(left)); n > room {
			left = left[:room]
			right = right[:room]
		}
	}
	if len(left) == 0 {
		return nil
	}
	if err := s.buf.Append(left, right); err != nil {
		s.poisoned = true
		return fmt.Errorf("append decoded frames: %w", err)
	}
	return nil
}

// finish marks end of stream and reconciles the timeline: an unknown
// total is learned now, after trimming the trailing padding, and a
// known total is clamped if the session delivered fewer frames than
// its metadata promised.
func (s *stream) finish() {
	if s.ended {
		return
	}
	s.ended = true
	if s.cur.Total() == buffer.TotalUnknown {
		s.buf.TrimEnd(s.meta.PaddingFrames)
		s.cur.SetTotal(int64(s.buf.FrameCount()))
		return
	}
	if got := int64(s.buf.FrameCount()); got < s.cur.Total() {
		s.cur.SetTotal(got)
	}
}

// fillTo decodes until at least target frames are buffered or the
// stream ends.
func (s *stream) fillTo(target int64) error {
	if s.poisoned {
		return ErrPoisoned
	}
	if t := s.cur.Total(); t != buffer.TotalUnknown && target > t {
		target = t
	} else if t == buffer.TotalUnknown {
		// The trailing PaddingFrames of the buffer are withheld until
		// end of stream is confirmed, so decode that much further.
		target += int64(s.meta.PaddingFrames)
	}
	if need := target - int64(s.buf.FrameCount()); need > 0 && !s.ended {
		s.buf.Reserve(int(need))
	}
	for !s.ended && int64(s.buf.FrameCount()) < target {
		if _, err := s.decodeStep(); err != nil {
			return err
		}
	}
	return nil
}

// fillAll decodes the remainder of the session.
func (s *stream) fillAll() error {
	if s.poisoned {
		return ErrPoisoned
	}
	for !s.ended {
		if _, err := s.decodeStep(); err != nil {
			return err
		}
	}
	return nil
}

// pull serves up to n buffered frames at the cursor and advances it.
// Returns io.EOF once the cursor sits at the end of the timeline.
func (s *stream) pull(n int) (buffer.Block, error) {
	if s.poisoned {
		return buffer.Block{}, ErrPoisoned
	}
	if s.cur.EndOfStream() {
		return buffer.Block{}, io.EOF
	}
	avail := int64(s.buf.FrameCount()) - s.cur.Position()
	if !s.ended && s.cur.Total() == buffer.TotalUnknown {
		// Until end of stream is confirmed, the last PaddingFrames
		// buffered frames may turn out to be decoder padding; they are
		// only servable once finish has trimmed the stream.
		avail -= int64(s.meta.PaddingFrames)
	}
	if avail <= 0 {
		if s.ended {
			return buffer.Block{}, io.EOF
		}
		return buffer.Block{}, nil
	}
	take := int64(n)
	if take > avail {
		take = avail
	}
	blk, err := s.buf.Slice(int(s.cur.Position()), int(take))
	if err != nil {
		return buffer.Block{}, err
	}
	s.cur.Advance(take)
	return blk, nil
}

// seek repositions the cursor, decoding forward when the target lies
// beyond what is buffered. Decoded frames are kept, so seeking back
// never re-decodes.
func (s *stream) seek(pos int64) error {
	if s.poisoned {
		return ErrPoisoned
	}
	if pos < 0 {
		return buffer.ErrSeekOutOfRange
	}
	if t := s.cur.Total(); t != buffer.TotalUnknown && pos > t {
		return buffer.ErrSeekOutOfRange
	}
	if err := s.fillTo(pos); err != nil {
		return err
	}
	return s.cur.SeekTo(pos)
}

func (s *stream) consumedFraction() float64 {
	t := s.cur.Total()
	if t <= 0 {
		return 0
	}
	return float64(s.cur.Position()) / float64(t)
}

func (s *stream) close() error {
	if err := s.sess.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}
