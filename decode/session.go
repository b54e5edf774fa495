// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"io"
	"sync"
)

// Metadata describes one opened stream. Frame counts refer to the raw
// decoded stream, before delay and padding trimming.
type Metadata struct {
	// SampleRate of the PCM stream in Hz.
	SampleRate int
	// Channels in the source material (1 or 2). Sessions deliver stereo
	// chunks regardless; mono sources are duplicated into both channels.
	Channels int
	// DelayFrames the decoder emits before true content begins.
	DelayFrames int
	// PaddingFrames the decoder appends past the true content end.
	PaddingFrames int
	// TotalFrames in the raw decoded stream, or TotalUnknown for
	// streaming sources that only learn their length at end of stream.
	TotalFrames int64
}

// TotalUnknown marks a stream whose raw frame count is not known upfront.
const TotalUnknown int64 = -1

// Session is a stateful handle to an in-progress decode of one opened
// source. Implementations wrap one format-specific decoder and are accessed
// sequentially by exactly one owning reader.
type Session interface {
	// Metadata of the opened stream.
	Metadata() Metadata

	// DecodeNext produces at most maxFrames of already-normalized stereo
	// frames; it may return fewer. End of stream is io.EOF, possibly
	// alongside a final non-empty chunk. Chunk data is only valid until
	// the next DecodeNext call; callers copy what they keep.
	DecodeNext(maxFrames int) (Chunk, error)

	// SeekTo repositions the session to the given raw frame. Sessions
	// without seek support fail with ErrUnsupportedSeek; targets
	// outside the stream fail with ErrSeekOutOfRange.
	SeekTo(frame int64) error

	// Close releases any resources.
	Close() error
}

// Opener constructs a Session from an input reader.
type Opener interface {
	Open(r io.Reader) (Session, error)
}

// Registry maps format keys (e.g. "wav", "mp3", "ogg") to openers. It is an
// explicit value passed where needed, not a package-level singleton.
type Registry struct {
	codecs map[string]Opener

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Opener),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, o Opener) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = o
}

func (r *Registry) Get(format string) (Opener, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	o, ok := r.codecs[format]
	return o, ok
}

// Formats returns the registered format keys, in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	return keys
}
