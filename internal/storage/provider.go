// Package storage defines the rooted file-system abstraction used for the
// working tree and the staging area.
package storage

// Provider is the interface for file operations under a root directory.
// All paths are relative to the root.
type Provider interface {
	// Root returns the absolute root directory.
	Root() string
	// Abs resolves path against the root, rejecting paths that escape it.
	Abs(path string) (string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
