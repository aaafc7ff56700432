package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/gitcommit/internal/apperr"
)

// Git implements Repository by running the git executable.
type Git struct {
	exec   CommandExecutor
	binary string
}

// NewGit creates a Git repository collaborator. A nil executor selects
// ExecExecutor.
func NewGit(exec CommandExecutor) *Git {
	if exec == nil {
		exec = NewExecExecutor()
	}
	return &Git{exec: exec, binary: "git"}
}

// ListChanged returns files modified in the working tree relative to the
// index. Deleted files are left out since there is nothing to read.
func (g *Git) ListChanged(ctx context.Context, root string) ([]string, error) {
	abs, err := g.checkRoot(ctx, root)
	if err != nil {
		return nil, err
	}
	out, err := g.run(ctx, abs, "diff", "--name-only", "--diff-filter=d", "-z")
	if err != nil {
		return nil, err
	}
	return splitNUL(out), nil
}

// ListUntracked returns files not tracked and not ignored.
func (g *Git) ListUntracked(ctx context.Context, root string) ([]string, error) {
	abs, err := g.checkRoot(ctx, root)
	if err != nil {
		return nil, err
	}
	out, err := g.run(ctx, abs, "ls-files", "--others", "--exclude-standard", "-z")
	if err != nil {
		return nil, err
	}
	return splitNUL(out), nil
}

// checkRoot verifies that root is the top level of a working tree and returns
// its absolute path.
func (g *Git) checkRoot(ctx context.Context, root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", apperr.NewRepositoryError(root, "resolve", err, "")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", apperr.NewRepositoryError(root, "stat", err, "")
	}
	if !info.IsDir() {
		return "", apperr.NewRepositoryError(root, "stat", errors.New("not a directory"), "")
	}

	out, err := g.run(ctx, abs, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	top := filepath.Clean(filepath.FromSlash(strings.TrimSpace(out)))
	if !samePath(top, abs) {
		return "", apperr.NewRepositoryError(root, "rev-parse",
			fmt.Errorf("not a repository root (top level is %s)", top), "")
	}
	return abs, nil
}

func (g *Git) run(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := g.exec.Output(ctx, dir, g.binary, args...)
	if err != nil {
		var stderr string
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			stderr = cmdErr.Stderr
		}
		op := ""
		if len(args) > 0 {
			op = args[0]
		}
		return "", apperr.NewRepositoryError(dir, op, err, stderr)
	}
	return out, nil
}

func samePath(a, b string) bool {
	if ra, err := filepath.EvalSymlinks(a); err == nil {
		a = ra
	}
	if rb, err := filepath.EvalSymlinks(b); err == nil {
		b = rb
	}
	return filepath.Clean(a) == filepath.Clean(b)
}

// splitNUL splits -z output. Names are kept as is; spaces are legal at
// either end.
func splitNUL(out string) []string {
	var paths []string
	for _, p := range strings.Split(out, "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
