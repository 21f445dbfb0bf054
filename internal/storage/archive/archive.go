// Package archive abstracts where compressed price archives live. The
// example-data builder only ever reads them; Write exists so tooling and
// tests can stage archives through the same interface.
package archive

import "context"

// Store is a flat byte store keyed by relative path.
type Store interface {
	// Read retrieves the archive bytes at the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// Write stores archive bytes at the given path
	Write(ctx context.Context, path string, data []byte) error

	// List returns all paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists checks whether an archive exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}
