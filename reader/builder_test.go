// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"testing"

	"github.com/GaussianWonder/audio-sample-reader/decode"
	"github.com/GaussianWonder/audio-sample-reader/internal/audiotest"
)

func TestSelect(t *testing.T) {
	blocking := HostConstraints{BufferSize: 512, AllowBlocking: true}
	realtime := HostConstraints{BufferSize: 512, AllowBlocking: false}

	tests := []struct {
		name string
		info FileInfo
		host HostConstraints
		cfg  Config
		want Kind
	}{
		{
			name: "realtime host always gets the async cache",
			info: FileInfo{SizeBytes: 1024, TotalFrames: 100},
			host: realtime,
			want: KindAsyncCached,
		},
		{
			name: "small known frame count decodes fully",
			info: FileInfo{TotalFrames: 44100},
			host: blocking,
			want: KindSyncFull,
		},
		{
			name: "unknown frames but small encoded size decodes fully",
			info: FileInfo{SizeBytes: 1 << 20, TotalFrames: decode.TotalUnknown},
			host: blocking,
			want: KindSyncFull,
		},
		{
			name: "large known frame count decodes incrementally",
			info: FileInfo{SizeBytes: 64 << 20, TotalFrames: 500 << 20},
			host: blocking,
			want: KindSyncIncremental,
		},
		{
			name: "nothing known decodes incrementally",
			info: FileInfo{TotalFrames: decode.TotalUnknown},
			host: blocking,
			want: KindSyncIncremental,
		},
		{
			name: "custom frame threshold",
			info: FileInfo{TotalFrames: 44100},
			host: blocking,
			cfg:  Config{FullDecodeMaxFrames: 1000, FullDecodeMaxBytes: 1},
			want: KindSyncIncremental,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.info, tt.host, tt.cfg); got != tt.want {
				t.Fatalf("Select: got %v, want %v", got, tt.want)
			}
			// selection is pure: same inputs, same outcome
			if got := Select(tt.info, tt.host, tt.cfg); got != tt.want {
				t.Fatalf("repeated Select: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildKinds(t *testing.T) {
	build := func(t *testing.T, host HostConstraints) Reader {
		t.Helper()
		sess := audiotest.NewRampSession(44100, 1000, 0, 0)
		r, err := Build(sess, InfoFromSession(sess, 4000, "mock"), host, Config{})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return r
	}

	t.Run("sync full", func(t *testing.T) {
		r := build(t, HostConstraints{BufferSize: 100, AllowBlocking: true})
		defer r.Close()
		if _, ok := r.(*SyncFullReader); !ok {
			t.Fatalf("got %T, want *SyncFullReader", r)
		}
		left, right := drainFrames(t, r)
		if len(left) != 1000 {
			t.Fatalf("got %d frames, want 1000", len(left))
		}
		expectRamp(t, left, right, 0)
	})

	t.Run("async cached", func(t *testing.T) {
		r := build(t, HostConstraints{BufferSize: 100, AllowBlocking: false})
		defer r.Close()
		if _, ok := r.(*SampleCache); !ok {
			t.Fatalf("got %T, want *SampleCache", r)
		}
		left, right := drainFrames(t, r)
		if len(left) != 1000 {
			t.Fatalf("got %d frames, want 1000", len(left))
		}
		expectRamp(t, left, right, 0)
	})

	t.Run("sync incremental", func(t *testing.T) {
		sess := audiotest.NewRampSession(44100, 1000, 0, 0)
		sess.SetUnknownTotal()
		info := FileInfo{SizeBytes: 64 << 20, Format: "mock", TotalFrames: decode.TotalUnknown}
		r, err := Build(sess, info, HostConstraints{BufferSize: 100, AllowBlocking: true}, Config{})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		defer r.Close()
		if _, ok := r.(*SyncIncrementalReader); !ok {
			t.Fatalf("got %T, want *SyncIncrementalReader", r)
		}
	})
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindSyncFull, "sync-full"},
		{KindSyncIncremental, "sync-incremental"},
		{KindAsyncCached, "async-cached"},
		{Kind(42), "Kind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String(): got %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
