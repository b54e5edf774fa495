// SPDX-License-Identifier: EPL-2.0

package samplereader

import (
	"github.com/GaussianWonder/audio-sample-reader/decode"
	"github.com/GaussianWonder/audio-sample-reader/reader"
)

type options struct {
	registry    *decode.Registry
	format      string
	nonBlocking bool
	cfg         reader.Config
}

func defaultOptions() options {
	return options{registry: DefaultRegistry()}
}

// Option configures Open.
type Option func(*options)

// WithRegistry replaces the default format registry.
func WithRegistry(r *decode.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithFormat overrides extension-based format detection with an
// explicit registry key.
func WithFormat(format string) Option {
	return func(o *options) { o.format = format }
}

// WithNonBlocking marks the host as unable to tolerate decode work on
// its pulling goroutine, selecting the worker-backed cached reader.
// Real-time audio callbacks want this.
func WithNonBlocking() Option {
	return func(o *options) { o.nonBlocking = true }
}

// WithFullDecodeLimit sets the thresholds below which a file is
// decoded fully at open. Zero keeps a default.
func WithFullDecodeLimit(maxBytes, maxFrames int64) Option {
	return func(o *options) {
		o.cfg.FullDecodeMaxBytes = maxBytes
		o.cfg.FullDecodeMaxFrames = maxFrames
	}
}

// WithDecodeChunk sets the frame count requested from the decoder per
// step.
func WithDecodeChunk(frames int) Option {
	return func(o *options) { o.cfg.DecodeChunkFrames = frames }
}

// WithCacheDepth sets the read-ahead depth and retain margin of the
// non-blocking reader's cache, in frames.
func WithCacheDepth(depth, retain int64) Option {
	return func(o *options) {
		o.cfg.CacheDepthFrames = depth
		o.cfg.CacheRetainFrames = retain
	}
}

// WithPaddedFinalBlock pads a fully decoded stream with silence so
// every pull, including the last, fills the host buffer.
func WithPaddedFinalBlock() Option {
	return func(o *options) { o.cfg.PadFinalBlock = true }
}
