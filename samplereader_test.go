// SPDX-License-Identifier: EPL-2.0

package samplereader_test

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	samplereader "github.com/GaussianWonder/audio-sample-reader"
	"github.com/GaussianWonder/audio-sample-reader/reader"
)

// writeWavFixture writes a stereo 16-bit WAV file with an identifiable
// ramp: frame i carries i*256 on the left and its negation on the right.
func writeWavFixture(t *testing.T, dir string, name string, frames int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()

	samples := make([]int, frames*2)
	for i := 0; i < frames; i++ {
		samples[i*2] = i * 256
		samples[i*2+1] = -i * 256
	}
	enc := gowav.NewEncoder(f, 44100, 16, 2, 1)
	buf := &goaudio.IntBuffer{
		Data:           samples,
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Encoder.Write() error = %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Encoder.Close() error = %v", err)
	}
	return path
}

func TestOpenWav(t *testing.T) {
	path := writeWavFixture(t, t.TempDir(), "fixture.wav", 40)

	r, err := samplereader.Open(path, 16)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	// a 40-frame file sits far below the full-decode thresholds
	if _, ok := r.(*reader.SyncFullReader); !ok {
		t.Fatalf("Open() reader = %T, want *reader.SyncFullReader", r)
	}
	if got := r.Metadata().SampleRate; got != 44100 {
		t.Fatalf("SampleRate = %d, want 44100", got)
	}

	var left, right []float32
	for {
		blk, err := r.Pull()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Pull() error = %v", err)
		}
		left = append(left, blk.Left...)
		right = append(right, blk.Right...)
	}
	if len(left) != 40 {
		t.Fatalf("decoded %d frames, want 40", len(left))
	}
	for i := range left {
		want := float64(i*256) / 32768.0
		if math.Abs(float64(left[i])-want) > 1e-6 {
			t.Fatalf("left frame %d = %v, want %v", i, left[i], want)
		}
		if math.Abs(float64(right[i])+want) > 1e-6 {
			t.Fatalf("right frame %d = %v, want %v", i, right[i], -want)
		}
	}
}

func TestOpenNonBlocking(t *testing.T) {
	path := writeWavFixture(t, t.TempDir(), "fixture.wav", 40)

	r, err := samplereader.Open(path, 16, samplereader.WithNonBlocking())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if _, ok := r.(*reader.SampleCache); !ok {
		t.Fatalf("Open() reader = %T, want *reader.SampleCache", r)
	}
	var frames int
	for {
		blk, err := r.Pull()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Pull() error = %v", err)
		}
		frames += blk.FrameCount()
	}
	if frames != 40 {
		t.Fatalf("decoded %d frames, want 40", frames)
	}
}

func TestOpenFormatOverride(t *testing.T) {
	path := writeWavFixture(t, t.TempDir(), "fixture.dat", 8)

	if _, err := samplereader.Open(path, 4); !errors.Is(err, samplereader.ErrUnknownFormat) {
		t.Fatalf("Open(.dat) error = %v, want ErrUnknownFormat", err)
	}

	r, err := samplereader.Open(path, 4, samplereader.WithFormat("wav"))
	if err != nil {
		t.Fatalf("Open(WithFormat) error = %v", err)
	}
	defer r.Close()
}

func TestOpenFullDecodeLimit(t *testing.T) {
	path := writeWavFixture(t, t.TempDir(), "fixture.wav", 40)

	// thresholds below the file's size and frame count force the
	// incremental strategy even for a tiny file
	r, err := samplereader.Open(path, 16, samplereader.WithFullDecodeLimit(1, 1))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if _, ok := r.(*reader.SyncIncrementalReader); !ok {
		t.Fatalf("Open() reader = %T, want *reader.SyncIncrementalReader", r)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := samplereader.Open(filepath.Join(t.TempDir(), "nope.wav"), 16)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a/b/track.WAV", "wav"},
		{"track.mp3", "mp3"},
		{"track.oga", "ogg"},
		{"track.flac", "flac"},
		{"track.aif", "aiff"},
		{"track.xyz", ""},
		{"noext", ""},
	}
	for _, tt := range tests {
		if got := samplereader.FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
