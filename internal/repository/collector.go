package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/starford/gitcommit/internal/models"
)

// Collector turns the repository listings into a work list.
type Collector struct {
	Repo             Repository
	Root             string
	IncludeUntracked bool
	// SkipSuffixes excludes files such as debug outputs of a previous run.
	SkipSuffixes []string
}

// Collect returns the files to process, sorted by path. Untracked files are
// listed only when IncludeUntracked is set.
func (c *Collector) Collect(ctx context.Context) ([]models.WorkItem, error) {
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return nil, fmt.Errorf("collect: resolve root: %w", err)
	}

	var changed, untracked []string
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		changed, err = c.Repo.ListChanged(gCtx, root)
		return err
	})
	if c.IncludeUntracked {
		g.Go(func() error {
			var err error
			untracked, err = c.Repo.ListUntracked(gCtx, root)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(changed)+len(untracked))
	items := make([]models.WorkItem, 0, len(changed)+len(untracked))
	add := func(paths []string, tracked bool) {
		for _, p := range paths {
			if c.skip(p) {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			items = append(items, models.WorkItem{
				Path:    p,
				AbsPath: filepath.Join(root, filepath.FromSlash(p)),
				Tracked: tracked,
			})
		}
	}
	add(changed, true)
	add(untracked, false)

	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

func (c *Collector) skip(path string) bool {
	for _, s := range c.SkipSuffixes {
		if s != "" && strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
