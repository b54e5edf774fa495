// SPDX-License-Identifier: EPL-2.0

package buffer

// TotalUnknown marks a logical timeline whose length is not yet known,
// typical for streaming sources before end of stream is reached.
const TotalUnknown int64 = -1

// Cursor tracks the playback position over the logical sample timeline,
// the frame index space that remains after delay and padding trimming.
// Position is monotonically non-decreasing except on an explicit SeekTo.
type Cursor struct {
	pos   int64
	total int64
	end   bool
}

// NewCursor creates a cursor over a timeline of total frames.
// Pass TotalUnknown for streaming sources of unknown length.
func NewCursor(total int64) *Cursor {
	if total < 0 {
		total = TotalUnknown
	}
	return &Cursor{total: total}
}

// Position returns the current frame index.
func (c *Cursor) Position() int64 { return c.pos }

// Total returns the logical frame count, or TotalUnknown.
func (c *Cursor) Total() int64 { return c.total }

// EndOfStream reports whether the cursor has reached the end of the timeline.
func (c *Cursor) EndOfStream() bool { return c.end }

// Remaining returns the frames left before the end, or TotalUnknown.
func (c *Cursor) Remaining() int64 {
	if c.total == TotalUnknown {
		return TotalUnknown
	}
	return c.total - c.pos
}

// SetTotal fixes the timeline length, used once end of stream reveals it.
func (c *Cursor) SetTotal(total int64) {
	if total < 0 {
		return
	}
	c.total = total
	if c.pos >= total {
		c.pos = total
		c.end = true
	}
}

// Advance moves the position forward by n frames, capped at the total when
// known. Returns the number of frames actually advanced and sets the
// end-of-stream flag when the total is reached.
func (c *Cursor) Advance(n int64) int64 {
	if n <= 0 {
		return 0
	}
	if c.total != TotalUnknown && c.pos+n >= c.total {
		n = c.total - c.pos
		c.pos = c.total
		c.end = true
		return n
	}
	c.pos += n
	return n
}

// SeekTo sets the position directly. Fails with ErrSeekOutOfRange when the
// target is negative or past the known total. Seeking clears the
// end-of-stream flag unless the target is the total itself.
func (c *Cursor) SeekTo(pos int64) error {
	if pos < 0 {
		return ErrSeekOutOfRange
	}
	if c.total != TotalUnknown && pos > c.total {
		return ErrSeekOutOfRange
	}
	c.pos = pos
	c.end = c.total != TotalUnknown && pos == c.total
	return nil
}
