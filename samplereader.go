// SPDX-License-Identifier: EPL-2.0

package samplereader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GaussianWonder/audio-sample-reader/decode"
	"github.com/GaussianWonder/audio-sample-reader/formats/aiff"
	"github.com/GaussianWonder/audio-sample-reader/formats/flac"
	"github.com/GaussianWonder/audio-sample-reader/formats/mp3"
	"github.com/GaussianWonder/audio-sample-reader/formats/vorbis"
	"github.com/GaussianWonder/audio-sample-reader/formats/wav"
	"github.com/GaussianWonder/audio-sample-reader/reader"
)

// ErrUnknownFormat reports a file whose format could not be determined
// from its extension and was not overridden with WithFormat.
var ErrUnknownFormat = errors.New("unknown audio format")

// DefaultRegistry returns a registry with every built-in format.
func DefaultRegistry() *decode.Registry {
	r := decode.NewRegistry()
	r.Register("wav", wav.Opener{})
	r.Register("mp3", mp3.Opener{})
	r.Register("ogg", vorbis.Opener{})
	r.Register("flac", flac.Opener{})
	r.Register("aiff", aiff.Opener{})
	return r
}

var extFormats = map[string]string{
	".wav":  "wav",
	".wave": "wav",
	".mp3":  "mp3",
	".ogg":  "ogg",
	".oga":  "ogg",
	".flac": "flac",
	".aiff": "aiff",
	".aif":  "aiff",
}

// FormatForPath guesses the registry format key from a file extension.
// Returns "" when the extension is not recognized.
func FormatForPath(path string) string {
	return extFormats[strings.ToLower(filepath.Ext(path))]
}

// Open opens an audio file and builds the reader strategy that fits
// it: small files decode fully upfront, large ones incrementally, and
// non-blocking hosts get a worker-backed reader behind a read-ahead
// cache. The returned reader owns the file handle.
func Open(path string, hostBufferSize int, opts ...Option) (reader.Reader, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	format := o.format
	if format == "" {
		format = FormatForPath(path)
	}
	opener, ok := o.registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	var size int64
	if st, err := f.Stat(); err == nil {
		size = st.Size()
	}

	sess, err := opener.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s session: %w", format, err)
	}

	r, err := reader.Build(
		&fileSession{Session: sess, file: f},
		reader.InfoFromSession(sess, size, format),
		reader.HostConstraints{BufferSize: hostBufferSize, AllowBlocking: !o.nonBlocking},
		o.cfg,
	)
	if err != nil {
		sess.Close()
		f.Close()
		return nil, err
	}
	return r, nil
}

// fileSession ties the backing file's lifetime to the session's.
type fileSession struct {
	decode.Session
	file *os.File
}

func (s *fileSession) Close() error {
	err := s.Session.Close()
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}
