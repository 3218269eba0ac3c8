package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a document does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store opens documents for reading.
type Store interface {
	// Open returns the raw bytes of the named document as a stream.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// ReadAll opens name in s, decompresses it by extension and returns its
// content.
func ReadAll(ctx context.Context, s Store, name string) ([]byte, error) {
	rc, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	dec, err := Decompress(name, rc)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dec.Close() }()

	return io.ReadAll(dec)
}
