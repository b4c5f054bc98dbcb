package testutil

import "io"

// ChunkReader yields at most Size bytes per Read call, simulating a
// transport with a bounded per-call read size.
type ChunkReader struct {
	data []byte
	size int
	off  int
}

// NewChunkReader returns a ChunkReader over data. A size of zero or less
// means unbounded reads.
func NewChunkReader(data []byte, size int) *ChunkReader {
	return &ChunkReader{data: data, size: size}
}

func (r *ChunkReader) Read(p []byte) (int, error) {
	if r.off >= len(r.data) {
		return 0, io.EOF
	}
	n := len(p)
	if r.size > 0 && n > r.size {
		n = r.size
	}
	if rest := len(r.data) - r.off; n > rest {
		n = rest
	}
	copy(p, r.data[r.off:r.off+n])
	r.off += n
	return n, nil
}
