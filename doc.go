// SPDX-License-Identifier: EPL-2.0

// Package samplereader decodes audio files into fixed-size blocks of
// normalized stereo samples, sized for a host's playback buffer.
//
// Decoded samples are float32 in [-1, 1], organized per channel. The
// library trims decoder delay and padding so consumers only ever see
// the logical sample timeline, and it picks a buffering strategy per
// file: short files decode fully at open, long ones decode as the
// host pulls, and non-blocking hosts get a worker-backed reader
// behind a bounded read-ahead cache.
//
// # Supported Formats
//
//   - WAV via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//   - AIFF via formats/aiff
//
// # Quick Start
//
//	r, err := samplereader.Open("track.flac", 512)
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	for {
//		blk, err := r.Pull()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		play(blk.Left, blk.Right)
//	}
//
// Hosts that must never block on decode work, such as real-time audio
// callbacks, open with samplereader.WithNonBlocking and get blocks
// served from a cache that refills on a background goroutine.
//
// For sources that are not files, build a session from a format
// package directly and hand it to reader.Build.
package samplereader
