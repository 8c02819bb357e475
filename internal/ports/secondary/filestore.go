package secondary

import "context"

// FileStore defines the secondary port for the files a build reads and writes.
type FileStore interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFile creates parent directories as needed.
	WriteFile(ctx context.Context, path string, data []byte) error
	FileExists(ctx context.Context, path string) (bool, error)
}
