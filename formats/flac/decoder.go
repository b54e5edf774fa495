// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// flacStream is an interface for flac.Stream to allow testing.
type flacStream interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type session struct {
	stream   flacStream
	seek     func(frame int64) error
	meta     decode.Metadata
	channels int

	// Frames decoded past the last DecodeNext request; FLAC frames do not
	// align with requested chunk sizes.
	pendLeft  []float32
	pendRight []float32
}

func (s *session) Metadata() decode.Metadata { return s.meta }

func (s *session) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *session) SeekTo(target int64) error {
	if s.seek == nil {
		return decode.ErrUnsupportedSeek
	}
	if err := s.seek(target); err != nil {
		return fmt.Errorf("seek flac stream: %w", err)
	}
	s.pendLeft = s.pendLeft[:0]
	s.pendRight = s.pendRight[:0]
	return nil
}

func (s *session) DecodeNext(maxFrames int) (decode.Chunk, error) {
	if maxFrames <= 0 {
		return decode.Chunk{}, nil
	}

	for len(s.pendLeft) < maxFrames {
		f, err := s.stream.ParseNext()
		if err == io.EOF {
			return s.take(maxFrames), io.EOF
		}
		if err != nil {
			return s.take(maxFrames), fmt.Errorf("%w", err)
		}
		s.appendFrame(f)
	}
	return s.take(maxFrames), nil
}

func (s *session) appendFrame(f *frame.Frame) {
	scale := 1.0 / float32(int64(1)<<(f.BitsPerSample-1))
	n := len(f.Subframes[0].Samples)
	for i := 0; i < n; i++ {
		l := clamp(float32(f.Subframes[0].Samples[i]) * scale)
		r := l
		if len(f.Subframes) > 1 {
			r = clamp(float32(f.Subframes[1].Samples[i]) * scale)
		}
		s.pendLeft = append(s.pendLeft, l)
		s.pendRight = append(s.pendRight, r)
	}
}

func (s *session) take(maxFrames int) decode.Chunk {
	n := len(s.pendLeft)
	if n > maxFrames {
		n = maxFrames
	}
	if n == 0 {
		return decode.Chunk{}
	}
	chunk := decode.Chunk{
		Left:  append([]float32(nil), s.pendLeft[:n]...),
		Right: append([]float32(nil), s.pendRight[:n]...),
	}
	s.pendLeft = append(s.pendLeft[:0], s.pendLeft[n:]...)
	s.pendRight = append(s.pendRight[:0], s.pendRight[n:]...)
	return chunk
}

func clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Opener opens FLAC sources via github.com/mewkiz/flac. Seekable inputs get
// sample-accurate seeking; plain readers decode forward only.
type Opener struct{}

func (Opener) Open(r io.Reader) (decode.Session, error) {
	var (
		stream *flac.Stream
		err    error
		seek   func(int64) error
	)
	if rs, ok := r.(io.ReadSeeker); ok {
		stream, err = flac.NewSeek(rs)
		if err == nil {
			seek = func(target int64) error {
				_, serr := stream.Seek(uint64(target))
				return serr
			}
		}
	} else {
		stream, err = flac.New(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	if channels != 1 && channels != 2 {
		stream.Close()
		return nil, decode.ErrUnsupportedChannelLayout
	}

	total := decode.TotalUnknown
	if info.NSamples > 0 {
		total = int64(info.NSamples)
	}

	return &session{
		stream:   stream,
		seek:     seek,
		channels: channels,
		meta: decode.Metadata{
			SampleRate:  int(info.SampleRate),
			Channels:    channels,
			TotalFrames: total,
		},
	}, nil
}
