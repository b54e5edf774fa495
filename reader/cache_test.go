// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"errors"
	"io"
	"testing"

	"github.com/GaussianWonder/audio-sample-reader/buffer"
	"github.com/GaussianWonder/audio-sample-reader/internal/audiotest"
)

func newCachedRamp(t *testing.T, rawFrames, delay, padding, hostN int, cfg Config) (*SampleCache, *audiotest.MockSession) {
	t.Helper()
	sess := audiotest.NewRampSession(44100, rawFrames, delay, padding)
	inner, err := NewSyncIncremental(sess, hostN, cfg)
	if err != nil {
		t.Fatalf("NewSyncIncremental: %v", err)
	}
	c, err := NewSampleCache(inner, hostN, cfg)
	if err != nil {
		t.Fatalf("NewSampleCache: %v", err)
	}
	return c, sess
}

func TestSampleCacheMatchesInner(t *testing.T) {
	ref, err := NewSyncIncremental(audiotest.NewRampSession(44100, 1000, 10, 5), 100, Config{})
	if err != nil {
		t.Fatalf("NewSyncIncremental: %v", err)
	}
	defer ref.Close()
	c, _ := newCachedRamp(t, 1000, 10, 5, 100, Config{})
	defer c.Close()

	wantL, wantR := drainFrames(t, ref)
	gotL, gotR := drainFrames(t, c)
	if len(gotL) != len(wantL) {
		t.Fatalf("got %d frames, want %d", len(gotL), len(wantL))
	}
	for i := range wantL {
		if gotL[i] != wantL[i] || gotR[i] != wantR[i] {
			t.Fatalf("frame %d differs", i)
		}
	}
}

func TestSampleCacheUnknownTotal(t *testing.T) {
	sess := audiotest.NewRampSession(44100, 1000, 10, 5)
	sess.SetUnknownTotal()
	inner, err := NewSyncIncremental(sess, 100, Config{})
	if err != nil {
		t.Fatalf("NewSyncIncremental: %v", err)
	}
	c, err := NewSampleCache(inner, 100, Config{})
	if err != nil {
		t.Fatalf("NewSampleCache: %v", err)
	}
	defer c.Close()

	left, right := drainFrames(t, c)
	if len(left) != 985 {
		t.Fatalf("got %d frames, want 985", len(left))
	}
	expectRamp(t, left, right, 10)
}

func TestSampleCacheDeferredError(t *testing.T) {
	errBoom := errors.New("boom")
	sess := audiotest.NewRampSession(44100, 1000, 0, 0)
	sess.FailAt(500, errBoom)
	inner, err := NewSyncIncremental(sess, 100, Config{})
	if err != nil {
		t.Fatalf("NewSyncIncremental: %v", err)
	}
	c, err := NewSampleCache(inner, 100, Config{})
	if err != nil {
		t.Fatalf("NewSampleCache: %v", err)
	}
	defer c.Close()

	var left, right []float32
	var failedAt int = -1
	for {
		blk, err := c.Pull()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if !errors.Is(err, errBoom) {
				t.Fatalf("pull: %v", err)
			}
			if failedAt != -1 {
				t.Fatalf("error surfaced twice, at %d and %d", failedAt, len(left))
			}
			failedAt = len(left)
			continue
		}
		left = append(left, blk.Left...)
		right = append(right, blk.Right...)
	}
	if failedAt == -1 {
		t.Fatal("prefetch error never surfaced")
	}
	// frames decoded before the failure are served first; the error
	// arrives exactly when the pull reaches the failing range
	if failedAt >= 500 {
		t.Fatalf("error surfaced at %d, past the failing frame", failedAt)
	}
	if len(left) != 1000 {
		t.Fatalf("got %d frames after recovery, want 1000", len(left))
	}
	expectRamp(t, left, right, 0)
}

func TestSampleCacheSeekWithinWindow(t *testing.T) {
	cfg := Config{CacheDepthFrames: 200, CacheRetainFrames: 100}
	c, _ := newCachedRamp(t, 1000, 0, 0, 100, cfg)
	defer c.Close()

	for i := 0; i < 5; i++ {
		if _, err := c.Pull(); err != nil {
			t.Fatalf("pull %d: %v", i, err)
		}
	}
	// position 500, retained window reaches back to 400
	if err := c.SeekTo(450); err != nil {
		t.Fatalf("seek within window: %v", err)
	}
	blk, err := c.Pull()
	if err != nil {
		t.Fatalf("pull at 450: %v", err)
	}
	expectRamp(t, blk.Left, blk.Right, 450)
}

func TestSampleCacheSeekOutsideWindow(t *testing.T) {
	cfg := Config{CacheDepthFrames: 200, CacheRetainFrames: 100}
	c, _ := newCachedRamp(t, 1000, 0, 0, 100, cfg)
	defer c.Close()

	for i := 0; i < 5; i++ {
		if _, err := c.Pull(); err != nil {
			t.Fatalf("pull %d: %v", i, err)
		}
	}
	if err := c.SeekTo(100); err != nil {
		t.Fatalf("seek outside window: %v", err)
	}
	blk, err := c.Pull()
	if err != nil {
		t.Fatalf("pull at 100: %v", err)
	}
	expectRamp(t, blk.Left, blk.Right, 100)

	if err := c.SeekTo(-1); !errors.Is(err, buffer.ErrSeekOutOfRange) {
		t.Fatalf("negative seek: got %v, want ErrSeekOutOfRange", err)
	}
	if err := c.SeekTo(1001); !errors.Is(err, buffer.ErrSeekOutOfRange) {
		t.Fatalf("seek past total: got %v, want ErrSeekOutOfRange", err)
	}
}

func TestSampleCacheBlocksSurviveEviction(t *testing.T) {
	cfg := Config{CacheDepthFrames: 200, CacheRetainFrames: 100}
	c, _ := newCachedRamp(t, 1000, 0, 0, 100, cfg)
	defer c.Close()

	first, err := c.Pull()
	if err != nil {
		t.Fatalf("first pull: %v", err)
	}
	for {
		if _, err := c.Pull(); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatalf("pull: %v", err)
		}
	}
	// eviction compacted the window many times over; the block we held
	// must still carry the original frames
	expectRamp(t, first.Left, first.Right, 0)
}

func TestSampleCacheClose(t *testing.T) {
	c, sess := newCachedRamp(t, 1000, 0, 0, 100, Config{})
	if _, err := c.Pull(); err != nil {
		t.Fatalf("pull: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if !sess.Closed() {
		t.Fatal("session not closed")
	}
	if _, err := c.Pull(); !errors.Is(err, ErrClosed) {
		t.Fatalf("pull after close: got %v, want ErrClosed", err)
	}
}
