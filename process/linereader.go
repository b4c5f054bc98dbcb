package process

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

// DefaultMaxLineBytes is the default cap on the line scan buffer.
const DefaultMaxLineBytes = 64 * 1024

// LineReader produces one text line at a time from a byte stream. Line
// terminators may be LF or bare CR, depending on the subprocess's terminal
// emulation. The scan buffer is capped: an unterminated line longer than
// the cap yields an OverrunError instead of blocking indefinitely.
type LineReader struct {
	r   *bufio.Reader
	max int
}

// NewLineReader returns a LineReader over r with the given scan buffer
// cap. A non-positive max selects DefaultMaxLineBytes.
func NewLineReader(r io.Reader, max int) *LineReader {
	if max <= 0 {
		max = DefaultMaxLineBytes
	}
	return &LineReader{r: bufio.NewReaderSize(r, max), max: max}
}

// ReadLine returns the next line with its trailing delimiter stripped.
// When the stream ends before a delimiter, the partial bytes already
// buffered are returned as the final line. Once the stream is exhausted,
// ReadLine returns io.EOF.
func (lr *LineReader) ReadLine() (string, error) {
	want := 1
	for {
		if b := lr.r.Buffered(); b > want {
			want = b
		}
		data, err := lr.r.Peek(want)
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line := trimEOL(string(data[:i+1]))
			if _, derr := lr.r.Discard(i + 1); derr != nil {
				return "", derr
			}
			return line, nil
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			// The capped scan window holds no LF. Progress-style output
			// may delimit lines with a bare CR instead; retry on that
			// before reporting the line as over-length.
			if i := bytes.IndexByte(data, '\r'); i >= 0 {
				line := trimEOL(string(data[:i+1]))
				if _, derr := lr.r.Discard(i + 1); derr != nil {
					return "", derr
				}
				return line, nil
			}
			return "", &OverrunError{Limit: lr.max}
		case err != nil:
			if len(data) > 0 {
				// Stream ended before a delimiter: the buffered partial
				// bytes are the final line.
				if _, derr := lr.r.Discard(len(data)); derr != nil {
					return "", derr
				}
				return trimEOL(string(data)), nil
			}
			return "", err
		}
		want = len(data) + 1
	}
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
