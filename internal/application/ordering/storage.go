package ordering

import (
	"context"
	"io"
)

// SlipStorage stores uploaded payment slips and returns a URL where the
// stored file can be fetched.
type SlipStorage interface {
	Store(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}
