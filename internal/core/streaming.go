package core

// streaming.go cleans up uploaded import files while they are read.
//
// Spreadsheet tools often save CSV with a UTF-8 byte order mark and the odd
// byte from a legacy code page. Both are handled on the fly so the CSV reader
// only ever sees valid UTF-8 without a BOM.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WrapForImport returns a reader over r that drops a leading UTF-8 BOM and
// replaces every invalid byte sequence with U+FFFD.
func WrapForImport(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return &runeSanitizer{src: br}
}

// runeSanitizer re-encodes its source rune by rune. bufio decodes an invalid
// or truncated sequence as utf8.RuneError of width one, which is written back
// as the three-byte replacement character.
type runeSanitizer struct {
	src     *bufio.Reader
	scratch [utf8.UTFMax]byte
	pending []byte // encoded rune bytes that did not fit the caller's buffer
}

func (s *runeSanitizer) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(s.pending) > 0 {
			c := copy(p[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}

		r, _, err := s.src.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}

		enc := utf8.AppendRune(s.scratch[:0], r)
		c := copy(p[n:], enc)
		n += c
		s.pending = enc[c:]
	}
	return n, nil
}
