// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// MockSession is a test helper that serves synthetic audio through the
// decode.Session contract. The raw stream it produces includes the delay
// and padding frames its metadata declares, exactly like a real decoder.
type MockSession struct {
	meta   decode.Metadata
	left   []float32
	right  []float32
	pos    int64
	chunk  int
	calls  int
	closed bool

	seekable bool
	deferEOF bool
	failAt   int64
	failErr  error

	beforeDecode func(call int)
}

// NewMockSession creates a session over rawFrames frames of which the first
// delay and last padding are decoder artifacts. waveform generates the raw
// sample for a frame index and channel (0 = left, 1 = right).
func NewMockSession(sampleRate, rawFrames, delay, padding int, waveform func(frame, channel int) float32) *MockSession {
	m := &MockSession{
		meta: decode.Metadata{
			SampleRate:    sampleRate,
			Channels:      2,
			DelayFrames:   delay,
			PaddingFrames: padding,
			TotalFrames:   int64(rawFrames),
		},
		left:   make([]float32, rawFrames),
		right:  make([]float32, rawFrames),
		chunk:  307, // deliberately unaligned with typical host buffer sizes
		failAt: -1,
	}
	for i := 0; i < rawFrames; i++ {
		m.left[i] = waveform(i, 0)
		m.right[i] = waveform(i, 1)
	}
	return m
}

// NewRampSession creates a session whose raw frame i carries RampValue(i)
// on the left channel and its negation on the right, making every frame
// identifiable in assertions.
func NewRampSession(sampleRate, rawFrames, delay, padding int) *MockSession {
	return NewMockSession(sampleRate, rawFrames, delay, padding, func(frame, channel int) float32 {
		if channel == 0 {
			return RampValue(frame)
		}
		return -RampValue(frame)
	})
}

// NewSineSession creates a session producing a sine wave on both channels.
func NewSineSession(sampleRate, rawFrames int, frequency float64) *MockSession {
	return NewMockSession(sampleRate, rawFrames, 0, 0, func(frame, channel int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// RampValue is the deterministic raw sample value for a frame index.
func RampValue(frame int) float32 {
	return float32(frame%1000)/1000.0 - 0.5
}

// SetChunkSize caps the native chunk size DecodeNext produces.
func (m *MockSession) SetChunkSize(n int) { m.chunk = n }

// SetUnknownTotal makes the session report a stream of unknown length.
func (m *MockSession) SetUnknownTotal() { m.meta.TotalFrames = decode.TotalUnknown }

// SetSeekable enables raw-frame seeking.
func (m *MockSession) SetSeekable(seekable bool) { m.seekable = seekable }

// SetDeferredEOF makes the final chunk arrive without io.EOF, so end of
// stream is only reported by the call after it. Decoders that discover
// the end by a short read behave this way.
func (m *MockSession) SetDeferredEOF() { m.deferEOF = true }

// FailAt injects err on the DecodeNext call that would cross the given raw
// frame. The failure fires once; subsequent calls continue decoding.
func (m *MockSession) FailAt(frame int64, err error) {
	m.failAt = frame
	m.failErr = err
}

// SetBeforeDecode installs a hook invoked at the start of every DecodeNext
// call, for latency simulation and gating in concurrency tests.
func (m *MockSession) SetBeforeDecode(fn func(call int)) { m.beforeDecode = fn }

// Calls returns how many times DecodeNext ran.
func (m *MockSession) Calls() int { return m.calls }

// Closed reports whether Close was called.
func (m *MockSession) Closed() bool { return m.closed }

func (m *MockSession) Metadata() decode.Metadata { return m.meta }

func (m *MockSession) Close() error {
	m.closed = true
	return nil
}

func (m *MockSession) SeekTo(frame int64) error {
	if !m.seekable {
		return decode.ErrUnsupportedSeek
	}
	if frame < 0 || frame > int64(len(m.left)) {
		return decode.ErrSeekOutOfRange
	}
	m.pos = frame
	return nil
}

func (m *MockSession) DecodeNext(maxFrames int) (decode.Chunk, error) {
	call := m.calls
	m.calls++
	if m.beforeDecode != nil {
		m.beforeDecode(call)
	}

	if m.pos >= int64(len(m.left)) {
		return decode.Chunk{}, io.EOF
	}

	n := maxFrames
	if m.chunk > 0 && n > m.chunk {
		n = m.chunk
	}
	if rem := int64(len(m.left)) - m.pos; int64(n) > rem {
		n = int(rem)
	}

	if m.failAt >= 0 && m.pos+int64(n) > m.failAt {
		m.failAt = -1
		return decode.Chunk{}, m.failErr
	}

	chunk := decode.Chunk{
		Left:  m.left[m.pos : m.pos+int64(n)],
		Right: m.right[m.pos : m.pos+int64(n)],
	}
	m.pos += int64(n)

	if m.pos >= int64(len(m.left)) && !m.deferEOF {
		return chunk, io.EOF
	}
	return chunk, nil
}
