// SPDX-License-Identifier: EPL-2.0

// Package reader turns decode sessions into hosts' fixed-size block
// pulls. Three strategies cover the latency and memory trade-offs:
// SyncFullReader decodes everything upfront, SyncIncrementalReader
// decodes per pull on the caller's goroutine, and IncrementalReader
// decodes on a worker so pulls suspend instead of blocking. SampleCache
// wraps any Reader with a bounded read-ahead window. Select and Build
// choose between them from the source and host properties.
package reader
