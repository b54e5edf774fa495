// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/mewkiz/flac/frame"

	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// mockFlacStream simulates flac.Stream frame parsing for testing.
type mockFlacStream struct {
	frames []*frame.Frame
	next   int
}

func (m *mockFlacStream) Close() error { return nil }

func (m *mockFlacStream) ParseNext() (*frame.Frame, error) {
	if m.next >= len(m.frames) {
		return nil, io.EOF
	}
	f := m.frames[m.next]
	m.next++
	return f, nil
}

// stereoFrame builds a 16-bit stereo FLAC frame from raw sample values.
func stereoFrame(left, right []int32) *frame.Frame {
	return &frame.Frame{
		Header: frame.Header{BitsPerSample: 16},
		Subframes: []*frame.Subframe{
			{Samples: left},
			{Samples: right},
		},
	}
}

func TestOpenInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Opener{}.Open(bytes.NewReader([]byte("definitely not a flac stream")))
	if err == nil {
		t.Error("Open() error = nil, want error for invalid data")
	}
}

func TestDecodeNextSplitsOversizedFrames(t *testing.T) {
	t.Parallel()

	left := make([]int32, 20)
	right := make([]int32, 20)
	for i := range left {
		left[i] = int32(i * 512)
		right[i] = int32(-i * 512)
	}
	sess := &session{
		stream:   &mockFlacStream{frames: []*frame.Frame{stereoFrame(left, right)}},
		channels: 2,
		meta:     decode.Metadata{SampleRate: 44100, Channels: 2, TotalFrames: 20},
	}

	// One 20-frame FLAC frame served as 8+8+4.
	sizes := []int{}
	var got []float32
	for {
		chunk, err := sess.DecodeNext(8)
		if chunk.FrameCount() > 0 {
			sizes = append(sizes, chunk.FrameCount())
			got = append(got, chunk.Left...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("DecodeNext() error = %v", err)
		}
	}

	if len(sizes) != 3 || sizes[0] != 8 || sizes[1] != 8 || sizes[2] != 4 {
		t.Fatalf("chunk sizes = %v, want [8 8 4]", sizes)
	}
	for i := range got {
		want := float32(int32(i*512)) / 32768.0
		if got[i] != want {
			t.Fatalf("frame %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestDecodeNextMonoDuplicates(t *testing.T) {
	t.Parallel()

	mono := &frame.Frame{
		Header:    frame.Header{BitsPerSample: 16},
		Subframes: []*frame.Subframe{{Samples: []int32{1024, -1024, 2048}}},
	}
	sess := &session{
		stream:   &mockFlacStream{frames: []*frame.Frame{mono}},
		channels: 1,
		meta:     decode.Metadata{SampleRate: 44100, Channels: 1, TotalFrames: 3},
	}

	chunk, _ := sess.DecodeNext(8)
	if chunk.FrameCount() != 3 {
		t.Fatalf("FrameCount() = %d, want 3", chunk.FrameCount())
	}
	for i := range chunk.Left {
		if chunk.Left[i] != chunk.Right[i] {
			t.Errorf("frame %d not duplicated", i)
		}
	}
}

func TestSeekUnsupportedWithoutSeeker(t *testing.T) {
	t.Parallel()

	sess := &session{
		stream:   &mockFlacStream{},
		channels: 2,
		meta:     decode.Metadata{SampleRate: 44100, Channels: 2},
	}
	if err := sess.SeekTo(10); !errors.Is(err, decode.ErrUnsupportedSeek) {
		t.Errorf("Seek() error = %v, want ErrUnsupportedSeek", err)
	}
}
