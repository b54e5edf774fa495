// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// oggStream is an interface for oggvorbis.Reader to allow testing.
type oggStream interface {
	Read([]float32) (int, error)
	SetPosition(int64) error
	SampleRate() int
	Channels() int
	Length() int64
}

type session struct {
	dec      oggStream
	meta     decode.Metadata
	channels int
	buf      []float32
}

func (s *session) Metadata() decode.Metadata { return s.meta }
func (s *session) Close() error              { return nil }

func (s *session) SeekTo(frame int64) error {
	if err := s.dec.SetPosition(frame); err != nil {
		return fmt.Errorf("seek vorbis stream: %w", err)
	}
	return nil
}

func (s *session) DecodeNext(maxFrames int) (decode.Chunk, error) {
	if maxFrames <= 0 {
		return decode.Chunk{}, nil
	}

	want := maxFrames * s.channels
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	s.buf = s.buf[:want]

	// Read returns interleaved sample values, always whole frames.
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

	chunk := decode.ChunkFromInterleaved(s.buf[:n], s.channels)
	if err == io.EOF {
		return chunk, io.EOF
	}
	if err != nil {
		return chunk, fmt.Errorf("%w", err)
	}
	return chunk, nil
}

// Opener opens Ogg Vorbis sources via github.com/jfreymuth/oggvorbis.
type Opener struct{}

func (Opener) Open(r io.Reader) (decode.Session, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	channels := dec.Channels()
	if channels != 1 && channels != 2 {
		return nil, decode.ErrUnsupportedChannelLayout
	}

	total := decode.TotalUnknown
	if l := dec.Length(); l > 0 {
		total = l
	}

	return &session{
		dec:      dec,
		channels: channels,
		meta: decode.Metadata{
			SampleRate:  dec.SampleRate(),
			Channels:    channels,
			TotalFrames: total,
		},
	}, nil
}
