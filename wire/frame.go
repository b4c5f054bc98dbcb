package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"syscall"
)

// DefaultMaxFrameBytes caps payload allocation from a declared length. The
// source protocol has no maximum; the cap keeps a corrupted or malicious
// length header from forcing an unbounded allocation.
const DefaultMaxFrameBytes = 8 * 1024 * 1024

// maxHeaderLen bounds the length header itself. A well-formed header for
// any payload under the frame cap fits comfortably.
const maxHeaderLen = 20

// TooLargeError reports a frame whose declared length exceeds the cap.
type TooLargeError struct {
	Length int
	Limit  int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("wire: frame of %d bytes exceeds limit of %d", e.Length, e.Limit)
}

// WriteFrame writes one frame carrying payload. A nil writer, or a writer
// whose connection has been closed, is a benign no-op: WriteFrame returns
// false without writing anything, and callers must check the return value
// rather than assume delivery. The header and payload go out in a single
// write.
func WriteFrame(w io.Writer, payload []byte) (bool, error) {
	if w == nil {
		return false, nil
	}

	var buf bytes.Buffer
	buf.Grow(len(payload) + maxHeaderLen)
	buf.WriteString(strconv.Itoa(len(payload)))
	buf.WriteByte('\n')
	buf.Write(payload)

	if _, err := w.Write(buf.Bytes()); err != nil {
		if isClosed(err) {
			return false, nil
		}
		return false, err
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			if isClosed(err) {
				return false, nil
			}
			return false, err
		}
	}
	return true, nil
}

// ReadFrame reads one frame from r and returns its payload, applying
// DefaultMaxFrameBytes. A nil payload with a nil error means "no message":
// the peer closed or sent an unusable length header.
func ReadFrame(r io.Reader) ([]byte, error) {
	return ReadFrameLimit(r, DefaultMaxFrameBytes)
}

// ReadFrameLimit is ReadFrame with an explicit payload cap. A limit of
// zero or less disables the cap.
//
// The length header is consumed byte by byte up to the first newline, so
// no payload byte — nor any byte of a following frame — is ever read
// ahead of its turn. The payload is then assembled with as many underlying
// reads as the transport requires.
func ReadFrameLimit(r io.Reader, limit int) ([]byte, error) {
	header, err := readHeader(r)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, nil
		}
		return nil, err
	}

	length, err := strconv.Atoi(header)
	if err != nil || length < 0 {
		// An empty or garbled header signals connection-level "no data";
		// the caller decides whether to close or retry.
		return nil, nil
	}
	if limit > 0 && length > limit {
		return nil, &TooLargeError{Length: length, Limit: limit}
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// readHeader consumes bytes one at a time until the first newline.
func readHeader(r io.Reader) (string, error) {
	var header []byte
	buf := make([]byte, 1)
	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		if buf[0] == '\n' {
			return string(header), nil
		}
		if len(header) >= maxHeaderLen {
			return "", nil // garbage header, reported as unparseable
		}
		header = append(header, buf[0])
	}
}

func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed) ||
		errors.Is(err, syscall.EPIPE)
}
