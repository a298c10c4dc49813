package puzzledb

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/zstd"

	"github.com/matzehuels/puzzlesheet/pkg/errors"
)

// sniffLen is how many bytes are inspected to detect compression.
const sniffLen = 3072

// Open loads the database file at path. Lichess publishes the dump as
// .csv.zst; compression is detected from the content, not the name.
func Open(ctx context.Context, path string, t Thresholds) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "open puzzle database")
	}
	defer f.Close()

	r, closeFn, err := Decompress(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDatabase, err, "read %s", path)
	}
	defer closeFn()

	return Load(ctx, r, path, t)
}

// Decompress returns a reader over the plain content of r, unwrapping zstd
// when the stream starts with a zstd frame.
func Decompress(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReaderSize(r, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, nil, err
	}
	if !mimetype.Detect(head).Is("application/zstd") {
		return br, func() {}, nil
	}
	dec, err := zstd.NewReader(br)
	if err != nil {
		return nil, nil, err
	}
	return dec, dec.Close, nil
}
