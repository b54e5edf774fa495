// SPDX-License-Identifier: EPL-2.0

// Package aiff provides a decode session for AIFF PCM sources, built on
// github.com/go-audio/aiff.
package aiff
