// SPDX-License-Identifier: EPL-2.0

// Package decode defines the session contract that hides format-specific
// decoders behind one interface.
//
// # Session Interface
//
// A Session is a stateful handle to one opened source:
//
//	type Session interface {
//	    Metadata() Metadata
//	    DecodeNext(maxFrames int) (Chunk, error)
//	    SeekTo(frame int64) error
//	    Close() error
//	}
//
// Sessions deliver already-normalized float32 frames in [-1.0, 1.0] as
// planar stereo chunks. Mono sources are duplicated into both channels by
// the session, so readers never branch on channel layout. End of stream is
// io.EOF, which may accompany a final non-empty chunk.
//
// # Format Registry
//
// The Registry maps format keys to openers:
//
//	registry := decode.NewRegistry()
//	registry.Register("wav", wav.Opener{})
//	opener, _ := registry.Get("wav")
//
// The registry is an explicit value constructed once and passed by
// reference; format selection happens at open time and nowhere else.
//
// # Contract Notes
//
// DecodeNext may return fewer frames than requested; decoders produce their
// native chunk sizes. Delay and padding frames reported in Metadata are part
// of the raw stream a session delivers — trimming them is the reader's job,
// exactly once. SeekTo is an optional capability signalled by
// ErrUnsupportedSeek.
package decode
