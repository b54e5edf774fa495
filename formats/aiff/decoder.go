// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// aiffReader is an interface for aiff.Decoder to allow testing.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type session struct {
	dec      aiffReader
	meta     decode.Metadata
	channels int
	bitDepth int
	pos      int64
	intBuf   *goaudio.IntBuffer
}

func (s *session) Metadata() decode.Metadata { return s.meta }
func (s *session) Close() error              { return nil }
func (s *session) SeekTo(frame int64) error { return decode.ErrUnsupportedSeek }

func (s *session) DecodeNext(maxFrames int) (decode.Chunk, error) {
	if maxFrames <= 0 {
		return decode.Chunk{}, nil
	}
	if s.meta.TotalFrames != decode.TotalUnknown && s.pos >= s.meta.TotalFrames {
		return decode.Chunk{}, io.EOF
	}

	want := maxFrames * s.channels
	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: s.dec.Format(),
		}
	}
	s.intBuf.Data = s.intBuf.Data[:want]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return decode.Chunk{}, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return decode.Chunk{}, io.EOF
	}

	chunk := decode.ChunkFromInterleavedInts(s.intBuf.Data[:n], s.channels, s.bitDepth)
	s.pos += int64(chunk.FrameCount())
	if err == io.EOF || (s.meta.TotalFrames != decode.TotalUnknown && s.pos >= s.meta.TotalFrames) {
		return chunk, io.EOF
	}
	return chunk, nil
}

// Opener opens AIFF sources via github.com/go-audio/aiff. Non-seekable
// sources are buffered in memory first; go-audio needs an io.ReadSeeker.
type Opener struct{}

func (Opener) Open(r io.Reader) (decode.Session, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := goaiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}
	channels := format.NumChannels
	if channels != 1 && channels != 2 {
		return nil, decode.ErrUnsupportedChannelLayout
	}

	total := decode.TotalUnknown
	if dec.NumSampleFrames > 0 {
		total = int64(dec.NumSampleFrames)
	}

	return &session{
		dec:      dec,
		channels: channels,
		bitDepth: int(dec.BitDepth),
		meta: decode.Metadata{
			SampleRate:  format.SampleRate,
			Channels:    channels,
			TotalFrames: total,
		},
	}, nil
}
