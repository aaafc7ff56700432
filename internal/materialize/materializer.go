package materialize

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/starford/gitcommit/internal/apperr"
	"github.com/starford/gitcommit/internal/checksum"
	"github.com/starford/gitcommit/internal/models"
	"github.com/starford/gitcommit/internal/storage"
)

// DefaultDebugSuffix is appended to debug copies.
const DefaultDebugSuffix = ".gitcommit"

// Outcome reports what happened to one file.
type Outcome struct {
	Written     bool
	Destination string
	// Unmarked is set when the file carried no markers and nothing was written.
	Unmarked bool
}

// Materializer writes rewritten files. Tree is the working tree and staging
// the run's staging directory; each run owns its staging directory.
type Materializer struct {
	tree        storage.Provider
	staging     storage.Provider
	debugSuffix string
	manifest    *Manifest
	logger      *slog.Logger
}

// New creates a Materializer. An existing manifest in the staging directory is
// loaded so a previous run can be applied.
func New(tree, staging storage.Provider, debugSuffix string, logger *slog.Logger) (*Materializer, error) {
	if debugSuffix == "" {
		debugSuffix = DefaultDebugSuffix
	}
	m, err := LoadManifest(staging)
	if err != nil {
		return nil, err
	}
	if m.Root == "" {
		m.Root = tree.Root()
		m.Created = time.Now().UTC()
	}
	return &Materializer{
		tree:        tree,
		staging:     staging,
		debugSuffix: debugSuffix,
		manifest:    m,
		logger:      logger,
	}, nil
}

// StagingDir returns the absolute staging directory.
func (m *Materializer) StagingDir() string { return m.staging.Root() }

// Manifest returns the staging manifest.
func (m *Materializer) Manifest() *Manifest { return m.manifest }

// Materialize writes content for item according to mode. original is the
// file as read from the working tree. Unmarked files are never written.
func (m *Materializer) Materialize(item models.WorkItem, original, content []byte, marked bool, mode Mode) (Outcome, error) {
	if !marked {
		return Outcome{Unmarked: true}, nil
	}

	switch mode {
	case ModeSuppressed:
		return Outcome{}, nil

	case ModeStaging:
		rel := stagedPath(item.Path)
		if err := m.staging.Write(rel, content); err != nil {
			return Outcome{}, &apperr.MaterializeError{Path: item.Path, Mode: mode.String(), Err: err}
		}
		m.manifest.put(Entry{
			Path:     item.Path,
			Tracked:  item.Tracked,
			Original: checksum.Sum(original),
			Staged:   checksum.Sum(content),
		})
		if err := saveManifest(m.staging, m.manifest); err != nil {
			return Outcome{}, &apperr.MaterializeError{Path: item.Path, Mode: mode.String(), Err: err}
		}
		dest, _ := m.staging.Abs(rel)
		m.logger.Debug("materialize: staged", slog.String("path", item.Path), slog.String("dest", dest))
		return Outcome{Written: true, Destination: dest}, nil

	case ModeDebugSuffix:
		rel := item.Path + m.debugSuffix
		if err := m.tree.Write(rel, content); err != nil {
			return Outcome{}, &apperr.MaterializeError{Path: item.Path, Mode: mode.String(), Err: err}
		}
		dest, _ := m.tree.Abs(rel)
		m.logger.Debug("materialize: debug copy", slog.String("path", item.Path), slog.String("dest", dest))
		return Outcome{Written: true, Destination: dest}, nil

	case ModeInPlace:
		dest, err := m.Apply(item.Path)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Written: true, Destination: dest}, nil

	default:
		return Outcome{}, &apperr.MaterializeError{Path: item.Path, Mode: mode.String(), Err: fmt.Errorf("unknown mode")}
	}
}

// Apply copies the staged rewrite of path over the original. It refuses when
// the original changed after staging and verifies what it wrote.
func (m *Materializer) Apply(relPath string) (string, error) {
	mode := ModeInPlace.String()
	entry, ok := m.manifest.Lookup(relPath)
	if !ok {
		return "", &apperr.MaterializeError{Path: relPath, Mode: mode, Err: apperr.ErrNotStaged}
	}

	staged, err := m.staging.Read(stagedPath(relPath))
	if err != nil {
		return "", &apperr.MaterializeError{Path: relPath, Mode: mode, Err: err}
	}
	if checksum.Sum(staged) != entry.Staged {
		return "", &apperr.MaterializeError{Path: relPath, Mode: mode,
			Err: fmt.Errorf("staged copy is corrupt: %w", apperr.ErrModifiedSinceStaging)}
	}

	current, err := m.tree.Read(relPath)
	if err != nil {
		return "", &apperr.MaterializeError{Path: relPath, Mode: mode, Err: err}
	}
	if checksum.Sum(current) != entry.Original {
		return "", &apperr.MaterializeError{Path: relPath, Mode: mode, Err: apperr.ErrModifiedSinceStaging}
	}

	if err := m.tree.Write(relPath, staged); err != nil {
		return "", &apperr.MaterializeError{Path: relPath, Mode: mode, Err: err}
	}

	dest, err := m.tree.Abs(relPath)
	if err != nil {
		return "", &apperr.MaterializeError{Path: relPath, Mode: mode, Err: err}
	}
	written, err := checksum.File(dest)
	if err != nil {
		return "", &apperr.MaterializeError{Path: relPath, Mode: mode, Err: err}
	}
	if written != entry.Staged {
		return "", &apperr.MaterializeError{Path: relPath, Mode: mode, Err: errors.New("written content does not match staged copy")}
	}

	m.logger.Info("materialize: applied", slog.String("path", relPath))
	return dest, nil
}

// Release drops an applied file from the staging directory and its manifest.
func (m *Materializer) Release(relPath string) error {
	if err := m.staging.Delete(stagedPath(relPath)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("materialize: release %s: %w", relPath, err)
	}
	m.manifest.remove(relPath)
	return saveManifest(m.staging, m.manifest)
}

// Cleanup removes the staging directory.
func (m *Materializer) Cleanup() error {
	if err := os.RemoveAll(m.staging.Root()); err != nil {
		return fmt.Errorf("materialize: remove staging dir %s: %w", m.staging.Root(), err)
	}
	return nil
}

func stagedPath(rel string) string {
	return path.Join(filesDir, rel)
}
