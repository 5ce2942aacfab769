package ports

import (
	"context"
	"io"
)

// AvatarStore uploads an image stream to an external object store and returns
// the public URL under which it can be fetched.
type AvatarStore interface {
	Upload(ctx context.Context, file io.Reader, filename, contentType string) (string, error)
}
