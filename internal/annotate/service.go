// Package annotate runs the whole extraction: collect changed files, strip
// their markers, render the commit message and optionally apply the cleaned
// files to the working tree.
package annotate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/gitcommit/internal/apperr"
	"github.com/starford/gitcommit/internal/materialize"
	"github.com/starford/gitcommit/internal/models"
	"github.com/starford/gitcommit/internal/parser"
	"github.com/starford/gitcommit/internal/render"
	"github.com/starford/gitcommit/internal/storage"
	"github.com/starford/gitcommit/internal/ui"
)

// Collector lists the files to process.
type Collector interface {
	Collect(ctx context.Context) ([]models.WorkItem, error)
}

// Deps are the collaborators of a Service.
type Deps struct {
	Collector    Collector
	Tree         storage.Provider
	Materializer *materialize.Materializer
	Renderer     render.Renderer
	Interactor   ui.Interactor

	Marker    parser.Marker
	BodyWidth int
	// MessagePath is where the message is written. Empty selects a temp file.
	MessagePath string
}

// FileError records a file that could not be processed.
type FileError struct {
	Path string
	Err  error
}

// Result summarizes a run.
type Result struct {
	MessagePath string
	Message     string
	// Files holds the files that produced at least one comment.
	Files []*models.ParsedFile
	// Unmarked lists changed files without markers.
	Unmarked []string
	Staged   []string
	Applied  []string
	// Skipped lists files that could not be read.
	Skipped []FileError
	// Failed lists files whose rewrite could not be written or applied.
	Failed   []FileError
	Declined bool
	// Remaining lists files an earlier run left in the staging directory.
	Remaining  []string
	StagingDir string
	CleanupErr error
}

// Service coordinates the collaborators of a run.
type Service struct {
	deps   Deps
	logger *slog.Logger
}

// NewService creates a new annotate service.
func NewService(deps Deps, logger *slog.Logger) *Service {
	if deps.Interactor == nil {
		deps.Interactor = ui.NonInteractive{}
	}
	if deps.Marker == (parser.Marker{}) {
		deps.Marker = parser.DefaultMarker
	}
	return &Service{deps: deps, logger: logger}
}

// Run collects, rewrites and materializes every changed file, renders the
// commit message and, when requested and confirmed, applies the staged files.
// Repository, render and message write errors abort the run; errors local to
// one file are recorded on the result.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.DryRun {
		req.Mode = materialize.ModeSuppressed
		req.Remove = false
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	items, err := s.deps.Collector.Collect(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("annotate: collected", slog.Int("files", len(items)))

	res := &Result{StagingDir: s.deps.Materializer.StagingDir()}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.process(item, req.Mode, res)
	}

	commit := models.NewCommit(s.deps.BodyWidth)
	commit.SetSummary(req.Summary)
	commit.SetBody(req.Body)

	res.Message, err = s.deps.Renderer.Render(commit.Summary(), commit.Body(), res.Files)
	if err != nil {
		return nil, err
	}
	if !req.DryRun {
		res.MessagePath, err = render.WriteMessage(s.deps.MessagePath, res.Message)
		if err != nil {
			return nil, err
		}
		s.logger.Info("annotate: message written", slog.String("path", res.MessagePath))
	}

	if req.Remove {
		s.apply(res.Staged, res)
	}
	return res, nil
}

func (s *Service) process(item models.WorkItem, mode materialize.Mode, res *Result) {
	data, err := s.deps.Tree.Read(item.Path)
	if err != nil {
		s.logger.Warn("annotate: skipping unreadable file",
			slog.String("path", item.Path),
			slog.String("error", err.Error()))
		res.Skipped = append(res.Skipped, FileError{Path: item.Path, Err: err})
		return
	}

	rw := parser.Rewrite(item.Path, item.Tracked, data, s.deps.Marker, s.logger)
	if rw.File.HasMarkers() {
		res.Files = append(res.Files, rw.File)
	}

	if len(rw.Skipped) > 0 {
		// A cleaned copy would still carry the markers of the bad lines.
		err := &apperr.LineParseError{
			Line: rw.Skipped[0],
			Err:  fmt.Errorf("%d marked line(s) could not be parsed, file left as is", len(rw.Skipped)),
		}
		s.logger.Warn("annotate: not materializing file with unparseable lines",
			slog.String("path", item.Path),
			slog.String("error", err.Error()))
		res.Failed = append(res.Failed, FileError{Path: item.Path, Err: err})
		return
	}

	out, err := s.deps.Materializer.Materialize(item, data, rw.Content(), rw.Marked, mode)
	if err != nil {
		s.logger.Error("annotate: write failed",
			slog.String("path", item.Path),
			slog.String("error", err.Error()))
		res.Failed = append(res.Failed, FileError{Path: item.Path, Err: err})
		return
	}
	if out.Unmarked {
		res.Unmarked = append(res.Unmarked, item.Path)
		return
	}
	if out.Written && mode == materialize.ModeStaging {
		res.Staged = append(res.Staged, item.Path)
	}
}

// ApplyStaged applies every file recorded in the staging directory, as left
// behind by an earlier run.
func (s *Service) ApplyStaged(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{StagingDir: s.deps.Materializer.StagingDir()}
	res.Staged = s.deps.Materializer.Manifest().Paths()
	s.apply(res.Staged, res)
	return res, nil
}

// apply copies the staged files over the originals once the user agrees. The
// staging directory is removed only when every file was applied and no other
// run left files in it.
func (s *Service) apply(paths []string, res *Result) {
	if len(paths) == 0 {
		return
	}
	question := fmt.Sprintf("Remove markers from %d file(s) in the working tree?", len(paths))
	if !s.deps.Interactor.Confirm(question) {
		s.logger.Info("annotate: removal declined, originals untouched",
			slog.String("staging_dir", res.StagingDir))
		res.Declined = true
		return
	}

	for _, p := range paths {
		if _, err := s.deps.Materializer.Apply(p); err != nil {
			s.logger.Error("annotate: apply failed",
				slog.String("path", p),
				slog.String("error", err.Error()))
			res.Failed = append(res.Failed, FileError{Path: p, Err: err})
			continue
		}
		res.Applied = append(res.Applied, p)
		if err := s.deps.Materializer.Release(p); err != nil {
			s.logger.Warn("annotate: release staged copy failed",
				slog.String("path", p),
				slog.String("error", err.Error()))
		}
	}

	if len(res.Applied) != len(paths) {
		return
	}
	if res.Remaining = s.deps.Materializer.Manifest().Paths(); len(res.Remaining) > 0 {
		s.logger.Info("annotate: staging dir keeps files of an earlier run",
			slog.String("staging_dir", res.StagingDir),
			slog.Int("files", len(res.Remaining)))
		return
	}
	if err := s.deps.Materializer.Cleanup(); err != nil {
		s.logger.Warn("annotate: staging cleanup failed",
			slog.String("staging_dir", res.StagingDir),
			slog.String("error", err.Error()))
		res.CleanupErr = err
	}
}
