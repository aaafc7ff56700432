package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/gitcommit/internal/apperr"
	"github.com/starford/gitcommit/internal/testutil"
)

// mockExecutor returns canned output keyed by the git subcommand.
type mockExecutor struct {
	outputs map[string]string
	errs    map[string]error
	calls   [][]string
}

func (m *mockExecutor) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	m.calls = append(m.calls, args)
	if err, ok := m.errs[args[0]]; ok {
		return "", err
	}
	return m.outputs[args[0]], nil
}

func TestGit_ListChangedParsesNULSeparated(t *testing.T) {
	root := t.TempDir()
	m := &mockExecutor{outputs: map[string]string{
		"rev-parse": root + "\n",
		"diff":      "a.py\x00dir/b name.go\x00",
	}}
	g := NewGit(m)

	paths, err := g.ListChanged(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(paths, "|") != "a.py|dir/b name.go" {
		t.Errorf("paths = %q", paths)
	}
	last := m.calls[len(m.calls)-1]
	if strings.Join(last, " ") != "diff --name-only --diff-filter=d -z" {
		t.Errorf("args = %v", last)
	}
}

func TestGit_NotRootFails(t *testing.T) {
	root := t.TempDir()
	m := &mockExecutor{outputs: map[string]string{"rev-parse": filepath.Dir(root) + "\n"}}
	_, err := NewGit(m).ListUntracked(context.Background(), root)
	if !errors.Is(err, apperr.ErrRepository) {
		t.Errorf("err = %v, want ErrRepository", err)
	}
}

func TestGit_CommandFailureCarriesStderr(t *testing.T) {
	root := t.TempDir()
	m := &mockExecutor{errs: map[string]error{
		"rev-parse": &CommandError{Name: "git", Args: []string{"rev-parse"}, Stderr: "fatal: not a git repository", Err: errors.New("exit status 128")},
	}}
	_, err := NewGit(m).ListChanged(context.Background(), root)

	var repoErr *apperr.RepositoryError
	if !errors.As(err, &repoErr) {
		t.Fatalf("err = %v, want *RepositoryError", err)
	}
	if !strings.Contains(repoErr.Output, "not a git repository") {
		t.Errorf("output = %q", repoErr.Output)
	}
}

func TestGit_MissingDirectoryFails(t *testing.T) {
	_, err := NewGit(&mockExecutor{}).ListChanged(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, apperr.ErrRepository) {
		t.Errorf("err = %v, want ErrRepository", err)
	}
}

func TestGit_RealRepository(t *testing.T) {
	dir := testutil.TempRepo(t)
	testutil.WriteFile(t, dir, "tracked.txt", "one\n")
	testutil.WriteFile(t, dir, "gone.txt", "bye\n")
	testutil.GitRun(t, dir, "add", ".")
	testutil.GitRun(t, dir, "commit", "-q", "-m", "init")

	testutil.WriteFile(t, dir, "tracked.txt", "one\ntwo\n")
	if err := os.Remove(filepath.Join(dir, "gone.txt")); err != nil {
		t.Fatal(err)
	}
	testutil.WriteFile(t, dir, "sub/fresh.txt", "new\n")

	g := NewGit(nil)
	changed, err := g.ListChanged(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(changed, "|") != "tracked.txt" {
		t.Errorf("changed = %q, want [tracked.txt]", changed)
	}

	untracked, err := g.ListUntracked(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(untracked, "|") != "sub/fresh.txt" {
		t.Errorf("untracked = %q, want [sub/fresh.txt]", untracked)
	}
}

func TestGit_RealSubdirectoryRejected(t *testing.T) {
	dir := testutil.TempRepo(t)
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := NewGit(nil).ListChanged(context.Background(), sub)
	if !errors.Is(err, apperr.ErrRepository) {
		t.Errorf("err = %v, want ErrRepository", err)
	}
}

func TestSplitNUL_KeepsSurroundingSpaces(t *testing.T) {
	got := splitNUL(" lead.txt\x00trail.txt \x00\x00plain.go\x00")
	want := []string{" lead.txt", "trail.txt ", "plain.go"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("splitNUL = %q, want %q", got, want)
	}
}
