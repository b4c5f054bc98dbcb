package process

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func readAllLines(t *testing.T, lr *LineReader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			return lines
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines = append(lines, line)
	}
}

func TestReadLineLF(t *testing.T) {
	lr := NewLineReader(strings.NewReader("one\ntwo\nthree\n"), 0)
	got := readAllLines(t, lr)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadLineCRLF(t *testing.T) {
	lr := NewLineReader(strings.NewReader("one\r\ntwo\r\n"), 0)
	got := readAllLines(t, lr)
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("unexpected lines: %v", got)
	}
}

func TestReadLineCROnOverrun(t *testing.T) {
	// No LF fits in the scan window, but a bare CR delimits the line,
	// as terminal progress output does.
	data := "aaaaaaaa\rbbbbbbbb\rcccccccc\r"
	lr := NewLineReader(strings.NewReader(data), 16)
	line, err := lr.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "aaaaaaaa" {
		t.Errorf("line = %q, want %q", line, "aaaaaaaa")
	}
}

func TestReadLinePartialFinal(t *testing.T) {
	lr := NewLineReader(strings.NewReader("complete\npartial"), 0)
	got := readAllLines(t, lr)
	if len(got) != 2 || got[0] != "complete" || got[1] != "partial" {
		t.Fatalf("unexpected lines: %v", got)
	}
}

func TestReadLineOverrun(t *testing.T) {
	data := strings.Repeat("x", 64)
	lr := NewLineReader(strings.NewReader(data), 16)
	_, err := lr.ReadLine()
	var overrun *OverrunError
	if !errors.As(err, &overrun) {
		t.Fatalf("expected OverrunError, got %v", err)
	}
	if overrun.Limit != 16 {
		t.Errorf("Limit = %d, want 16", overrun.Limit)
	}
}

func TestReadLineEmptyStream(t *testing.T) {
	lr := NewLineReader(strings.NewReader(""), 0)
	if _, err := lr.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReadLineOneByteReads(t *testing.T) {
	lr := NewLineReader(iotest(t, "slow\nreader\n"), 0)
	got := readAllLines(t, lr)
	if len(got) != 2 || got[0] != "slow" || got[1] != "reader" {
		t.Fatalf("unexpected lines: %v", got)
	}
}

// iotest returns a reader that yields one byte per Read call.
func iotest(t *testing.T, s string) io.Reader {
	t.Helper()
	return &oneByteReader{data: []byte(s)}
}

type oneByteReader struct {
	data []byte
	off  int
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	p[0] = r.data[r.off]
	r.off++
	return 1, nil
}
