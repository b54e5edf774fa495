// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/GaussianWonder/audio-sample-reader/decode"
)

type session struct {
	dec      *gowav.Decoder
	meta     decode.Metadata
	channels int
	bitDepth int
	pos      int64
	intBuf   *goaudio.IntBuffer
}

func (s *session) Metadata() decode.Metadata { return s.meta }
func (s *session) Close() error              { return nil }

// SeekTo is unsupported: go-audio exposes no sample-accurate reposition on an
// open PCM stream. Readers fall back to decode-and-discard.
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
	if s.meta.TotalFrames != decode.TotalUnknown && s.pos >= s.meta.TotalFrames {
		return chunk, io.EOF
	}
	return chunk, nil
}

// Opener opens WAV sources. The source must implement io.ReadSeeker; WAV
// chunk traversal needs to skip around the container.
type Opener struct{}

func (Opener) Open(r io.Reader) (decode.Session, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return nil, ErrSeekableSourceRequired
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	channels := int(dec.NumChans)
	if channels != 1 && channels != 2 {
		return nil, decode.ErrUnsupportedChannelLayout
	}

	bytesPerSample := int64(dec.BitDepth / 8)
	total := decode.TotalUnknown
	if pcmLen := dec.PCMLen(); pcmLen > 0 && bytesPerSample > 0 {
		total = pcmLen / (bytesPerSample * int64(channels))
	}

	return &session{
		dec:      dec,
		channels: channels,
		bitDepth: int(dec.BitDepth),
		meta: decode.Metadata{
			SampleRate:  int(dec.SampleRate),
			Channels:    channels,
			TotalFrames: total,
		},
	}, nil
}
