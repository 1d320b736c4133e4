package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// FileSource reads a CSV file from disk. Files ending in .gz or .zst are
// decompressed transparently.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(s.Name(), err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}

	switch {
	case strings.HasSuffix(s.path, ".gz"):
		data, err = gunzip(data)
	case strings.HasSuffix(s.path, ".zst"):
		data, err = unzstd(data)
	}
	if err != nil {
		return nil, unavailable(s.Name(), err)
	}
	return data, nil
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompress gzip: %w", err)
	}
	return out, nil
}

func unzstd(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("open zstd: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress zstd: %w", err)
	}
	return out, nil
}
