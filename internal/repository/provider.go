// Package repository enumerates the files of a working tree that need
// processing.
package repository

import "context"

// Repository reports the changed and untracked files of a working tree.
// Paths are relative to root and slash separated. Both methods fail with an
// *apperr.RepositoryError when root is not a repository root.
type Repository interface {
	ListChanged(ctx context.Context, root string) ([]string, error)
	ListUntracked(ctx context.Context, root string) ([]string, error)
}
