// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"fmt"

	"github.com/GaussianWonder/audio-sample-reader/decode"
)

// Kind identifies a reader strategy.
type Kind int

const (
	// KindSyncFull decodes everything upfront and serves from memory.
	KindSyncFull Kind = iota
	// KindSyncIncremental decodes on demand on the caller's goroutine.
	KindSyncIncremental
	// KindAsyncCached decodes on a worker goroutine behind a read-ahead
	// cache, so pulls suspend instead of blocking on decode work.
	KindAsyncCached
)

func (k Kind) String() string {
	switch k {
	case KindSyncFull:
		return "sync-full"
	case KindSyncIncremental:
		return "sync-incremental"
	case KindAsyncCached:
		return "async-cached"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FileInfo describes the source as far as it is known before decoding.
type FileInfo struct {
	// SizeBytes is the encoded size, or 0 when unknown.
	SizeBytes int64
	// Format is the container name, informational only.
	Format string
	// TotalFrames is the raw frame count from the stream's metadata,
	// or decode.TotalUnknown.
	TotalFrames int64
}

// HostConstraints describe the consumer driving the pulls.
type HostConstraints struct {
	// BufferSize is the block size every pull must fill, in frames.
	BufferSize int
	// AllowBlocking permits decode work on the pulling goroutine.
	// Real-time audio callbacks set this false.
	AllowBlocking bool
}

// Default thresholds for Config fields left zero.
const (
	DefaultFullDecodeMaxBytes  = 8 << 20
	DefaultFullDecodeMaxFrames = 2 << 20
	DefaultDecodeChunkFrames   = 4096
)

// Config tunes reader construction. The zero value gets the defaults.
type Config struct {
	// FullDecodeMaxBytes is the largest encoded size eligible for a
	// full upfront decode.
	FullDecodeMaxBytes int64
	// FullDecodeMaxFrames is the largest known frame count eligible
	// for a full upfront decode.
	FullDecodeMaxFrames int64
	// DecodeChunkFrames is the frame count requested from the session
	// per decode step.
	DecodeChunkFrames int
	// CacheDepthFrames is the read-ahead depth of the async cache.
	// Zero means eight host buffers.
	CacheDepthFrames int64
	// CacheRetainFrames is how many frames the cache keeps behind the
	// position for backward seeks. Zero means one host buffer.
	CacheRetainFrames int64
	// PadFinalBlock pads the fully decoded stream with silence so the
	// final pull is never short. Applies to the sync-full reader only.
	PadFinalBlock bool
}

func (c Config) withDefaults() Config {
	if c.FullDecodeMaxBytes <= 0 {
		c.FullDecodeMaxBytes = DefaultFullDecodeMaxBytes
	}
	if c.FullDecodeMaxFrames <= 0 {
		c.FullDecodeMaxFrames = DefaultFullDecodeMaxFrames
	}
	if c.DecodeChunkFrames <= 0 {
		c.DecodeChunkFrames = DefaultDecodeChunkFrames
	}
	return c
}

// Select picks the reader strategy for a source. The decision is a
// pure function of its inputs: the same info, constraints, and config
// always select the same kind.
func Select(info FileInfo, host HostConstraints, cfg Config) Kind {
	cfg = cfg.withDefaults()
	if !host.AllowBlocking {
		return KindAsyncCached
	}
	if info.TotalFrames != decode.TotalUnknown && info.TotalFrames <= cfg.FullDecodeMaxFrames {
		return KindSyncFull
	}
	if info.SizeBytes > 0 && info.SizeBytes <= cfg.FullDecodeMaxBytes {
		return KindSyncFull
	}
	return KindSyncIncremental
}

// Build constructs the reader Select picks for the source. Ownership
// of sess transfers to the returned reader.
func Build(sess decode.Session, info FileInfo, host HostConstraints, cfg Config) (Reader, error) {
	switch Select(info, host, cfg) {
	case KindSyncFull:
		return NewSyncFull(sess, host.BufferSize, cfg)
	case KindSyncIncremental:
		return NewSyncIncremental(sess, host.BufferSize, cfg)
	case KindAsyncCached:
		inner, err := NewIncremental(sess, host.BufferSize, cfg)
		if err != nil {
			return nil, err
		}
		return NewSampleCache(inner, host.BufferSize, cfg)
	default:
		return nil, fmt.Errorf("unknown reader kind")
	}
}

// InfoFromSession derives FileInfo from an already opened session.
func InfoFromSession(sess decode.Session, sizeBytes int64, format string) FileInfo {
	meta := sess.Metadata()
	return FileInfo{
		SizeBytes:   sizeBytes,
		Format:      format,
		TotalFrames: meta.TotalFrames,
	}
}
