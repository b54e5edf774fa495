// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// go-mp3 emits 16-bit little-endian stereo PCM, 4 bytes per frame.
const bytesPerFrame = 4

// mp3Stream is an interface for gomp3.Decoder to allow testing.
type mp3Stream interface {
	Read([]byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	SampleRate() int
	Length() int64
}

type session struct {
	dec  mp3Stream
	meta decode.Metadata
	buf  []byte
}

func (s *session) Metadata() decode.Metadata { return s.meta }
func (s *session) Close() error              { return nil }

func (s *session) SeekTo(frame int64) error {
	if frame < 0 {
		return fmt.Errorf("frame %d: %w", frame, decode.ErrSeekOutOfRange)
	}
	if _, err := s.dec.Seek(frame*bytesPerFrame, io.SeekStart); err != nil {
		return fmt.Errorf("seek mp3 stream: %w", err)
	}
	return nil
}

func (s *session) DecodeNext(maxFrames int) (decode.Chunk, error) {
	if maxFrames <= 0 {
		return decode.Chunk{}, nil
	}

	want := maxFrames * bytesPerFrame
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	s.buf = s.buf[:want]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		if err != nil {
			if err == io.EOF {
				return decode.Chunk{}, io.EOF
			}
			return decode.Chunk{}, fmt.Errorf("%w", err)
		}
		return decode.Chunk{}, nil
	}

	frames := n / bytesPerFrame
	chunk := decode.Chunk{
		Left:  make([]float32, frames),
		Right: make([]float32, frames),
	}
	for i := 0; i < frames; i++ {
		l := int16(uint16(s.buf[i*4]) | uint16(s.buf[i*4+1])<<8)
		r := int16(uint16(s.buf[i*4+2]) | uint16(s.buf[i*4+3])<<8)
		chunk.Left[i] = float32(l) / 32768.0
		chunk.Right[i] = float32(r) / 32768.0
	}

	if err == io.EOF {
		return chunk, io.EOF
	}
	if err != nil {
		return chunk, fmt.Errorf("%w", err)
	}
	return chunk, nil
}

// Opener opens MPEG audio sources via github.com/hajimehoshi/go-mp3.
type Opener struct{}

func (Opener) Open(r io.Reader) (decode.Session, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	total := decode.TotalUnknown
	if l := dec.Length(); l > 0 {
		total = l / bytesPerFrame
	}

	// go-mp3 outputs stereo for all MPEG layouts.
	return &session{
		dec: dec,
		meta: decode.Metadata{
			SampleRate:  dec.SampleRate(),
			Channels:    2,
			TotalFrames: total,
		},
	}, nil
}
