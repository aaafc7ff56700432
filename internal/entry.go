// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/atotto/clipboard"
	"golang.org/x/sync/errgroup"

	"github.com/starford/gitcommit/internal/annotate"
	"github.com/starford/gitcommit/internal/apperr"
	"github.com/starford/gitcommit/internal/materialize"
	"github.com/starford/gitcommit/internal/render"
	"github.com/starford/gitcommit/internal/repository"
	"github.com/starford/gitcommit/internal/storage"
	"github.com/starford/gitcommit/internal/ui"
	"github.com/starford/gitcommit/internal/watch"
)

// Run extracts the marker comments of the working tree, renders the commit
// message and prints where it was written.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	mode, err := materialize.ParseMode(cfg.Staging.Mode)
	if err != nil {
		return err
	}
	req := app.request
	req.Mode = mode

	stagingDir, owned, err := prepareStaging(cfg.Staging.Dir, req.DryRun)
	if err != nil {
		return err
	}

	env, err := app.setup(stagingDir)
	if err == nil && !owned {
		err = env.checkStagingRoot()
	}
	if err != nil {
		if owned {
			_ = os.RemoveAll(stagingDir)
		}
		return err
	}

	res, err := env.service.Run(ctx, req)
	if owned && (err != nil || len(res.Staged) == 0) {
		// Nothing to recover from an empty staging directory.
		if cleanupErr := env.materializer.Cleanup(); cleanupErr != nil {
			app.logger.Warn("remove empty staging dir failed", slog.String("error", cleanupErr.Error()))
		}
	}
	if err != nil {
		return err
	}

	app.report(res, req)

	if cfg.Output.Clipboard {
		if err := app.clipboard(res.Message); err != nil {
			app.logger.Warn("copy to clipboard failed", slog.String("error", err.Error()))
		} else {
			app.printer().Faint("Message copied to clipboard.")
		}
	}
	return nil
}

// Apply copies the files of an existing staging directory over the working
// tree after confirmation.
func Apply(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	dir := app.config.Staging.Dir
	if dir == "" {
		return errors.New("a staging directory is required")
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("open staging dir: %w", err)
	}

	env, err := app.setup(dir)
	if err != nil {
		return err
	}
	if err := env.checkStagingRoot(); err != nil {
		return err
	}

	res, err := env.service.ApplyStaged(ctx)
	if err != nil {
		return err
	}
	if len(res.Staged) == 0 {
		app.printer().Warning("Nothing staged in %s.", dir)
		return nil
	}
	app.report(res, annotate.Request{Remove: true})
	return nil
}

// Watch renders a preview of the commit message each time the working tree
// changes, until ctx is cancelled or the process is interrupted.
func Watch(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	stagingDir, err := os.MkdirTemp("", "gitcommit-watch-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	env, err := app.setup(stagingDir)
	if err != nil {
		return err
	}

	req := app.request
	req.DryRun = true
	if req.Summary == "" {
		req.Summary = "<summary>"
	}
	preview := func(ctx context.Context) {
		res, err := env.service.Run(ctx, req)
		if err != nil {
			app.printer().Error("%s failed: %v", stageName(err), err)
			return
		}
		app.printer().Block(strings.TrimRight(res.Message, "\n"))
		app.printer().List("No markers found", res.Unmarked, app.printer().Warning)
	}
	preview(ctx)

	skip := app.skipSuffixes()
	watchOpts := watch.Options{
		Ignore: func(rel string) bool {
			for _, s := range skip {
				if strings.HasSuffix(rel, s) {
					return true
				}
			}
			return false
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	gCtx, cancel := context.WithCancel(gCtx)
	defer cancel()

	g.Go(func() error {
		return watch.Watch(gCtx, env.tree.Root(), watchOpts, app.logger, func(ctx context.Context, paths []string) {
			app.logger.Info("working tree changed", slog.Int("paths", len(paths)))
			preview(ctx)
		})
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			app.logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
		}
		cancel()
		return nil
	})

	return g.Wait()
}

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.logger == nil {
		app.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
	}
	if app.output == nil {
		app.output = os.Stdout
	}
	if app.clipboard == nil {
		app.clipboard = clipboard.WriteAll
	}
	if app.interactor == nil {
		app.interactor = ui.NewDefaultInteractor()
	}
	if app.repository == nil {
		app.repository = repository.NewGit(nil)
	}

	app.logger.Debug("Configuration loaded",
		slog.String("repository_path", app.config.Repository.Path),
		slog.String("marker", app.config.Marker.Marker().Token()),
		slog.String("mode", app.config.Staging.Mode),
		slog.String("log_level", app.config.App.LogLevel.String()))
	return app, nil
}

type environment struct {
	tree         *storage.FS
	materializer *materialize.Materializer
	service      *annotate.Service
}

func (a *application) setup(stagingDir string) (*environment, error) {
	cfg := a.config

	tree, err := storage.NewFS(cfg.Repository.Path)
	if err != nil {
		return nil, apperr.NewRepositoryError(cfg.Repository.Path, "open", err, "")
	}
	staging, err := storage.NewFS(stagingDir)
	if err != nil {
		return nil, fmt.Errorf("init staging: %w", err)
	}
	mat, err := materialize.New(tree, staging, cfg.Staging.DebugSuffix, a.logger)
	if err != nil {
		return nil, fmt.Errorf("init staging: %w", err)
	}

	renderer := a.renderer
	if renderer == nil {
		tmpl, err := render.NewTemplate(cfg.Template.Path)
		if err != nil {
			return nil, err
		}
		renderer = tmpl
	}

	collector := &repository.Collector{
		Repo:             a.repository,
		Root:             tree.Root(),
		IncludeUntracked: cfg.Repository.Untracked,
		SkipSuffixes:     a.skipSuffixes(),
	}

	svc := annotate.NewService(annotate.Deps{
		Collector:    collector,
		Tree:         tree,
		Materializer: mat,
		Renderer:     renderer,
		Interactor:   a.interactor,
		Marker:       cfg.Marker.Marker(),
		BodyWidth:    cfg.Template.BodyWidth,
		MessagePath:  cfg.Output.MessagePath,
	}, a.logger)

	return &environment{tree: tree, materializer: mat, service: svc}, nil
}

// checkStagingRoot rejects a staging directory recorded for another tree.
func (e *environment) checkStagingRoot() error {
	if root := e.materializer.Manifest().Root; root != "" && root != e.tree.Root() {
		return fmt.Errorf("staging dir %s was created for %s, not %s",
			e.materializer.StagingDir(), root, e.tree.Root())
	}
	return nil
}

func (a *application) skipSuffixes() []string {
	skip := append([]string{}, a.config.Repository.SkipSuffixes...)
	if s := a.config.Staging.DebugSuffix; s != "" {
		skip = append(skip, s)
	}
	return skip
}

// prepareStaging returns the staging directory of a run and whether the run
// created it.
func prepareStaging(dir string, dryRun bool) (string, bool, error) {
	if dir == "" || dryRun {
		tmp, err := os.MkdirTemp("", "gitcommit-staging-*")
		if err != nil {
			return "", false, fmt.Errorf("create staging dir: %w", err)
		}
		return tmp, true, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false, fmt.Errorf("resolve staging dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", false, fmt.Errorf("create staging dir: %w", err)
	}
	return abs, false, nil
}

func (a *application) printer() *ui.Printer {
	return ui.NewPrinter(a.output)
}

func (a *application) report(res *annotate.Result, req annotate.Request) {
	p := a.printer()

	if res.MessagePath != "" {
		p.Success("Commit message written to %s", res.MessagePath)
	} else if res.Message != "" {
		p.Block(strings.TrimRight(res.Message, "\n"))
	}

	annotated := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		annotated = append(annotated, fmt.Sprintf("%s (%d)", f.Path, len(f.Comments)))
	}
	p.List("Annotated files", annotated, p.Header)
	p.List("No markers found", res.Unmarked, p.Warning)
	p.List("Applied", res.Applied, p.Success)

	for _, f := range res.Skipped {
		p.Error("Skipped %s: %v", f.Path, f.Err)
	}
	for _, f := range res.Failed {
		p.Error("Failed %s: %v", f.Path, f.Err)
	}

	kept := len(res.Staged) > 0 && len(res.Applied) != len(res.Staged)
	switch {
	case res.Declined:
		p.Warning("Markers left in place. Apply later with: gitcommit apply --staging-dir %s", res.StagingDir)
	case kept && req.Remove:
		p.Warning("Staged copies kept in %s", res.StagingDir)
	case kept:
		p.Faint("Cleaned files staged in %s", res.StagingDir)
	}
	if len(res.Remaining) > 0 {
		p.Faint("%s still holds %d file(s) from an earlier run", res.StagingDir, len(res.Remaining))
	}
	if res.CleanupErr != nil {
		p.Warning("Could not remove %s, remove it manually: %v", res.StagingDir, res.CleanupErr)
	}
}

func stageName(err error) string {
	if s := apperr.Stage(err); s != "" {
		return s
	}
	return "run"
}
