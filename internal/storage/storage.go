package storage

import "context"

// Store writes physical file bytes to durable storage. Write returns the
// storage-scheme URI recorded for the physical file.
type Store interface {
	Write(ctx context.Context, name string, data []byte, contentType string) (string, error)
}
