package internal

import (
	"io"
	"log/slog"

	"github.com/starford/gitcommit/internal/annotate"
	"github.com/starford/gitcommit/internal/render"
	"github.com/starford/gitcommit/internal/repository"
	"github.com/starford/gitcommit/internal/ui"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	request    annotate.Request
	logger     *slog.Logger
	repository repository.Repository
	renderer   render.Renderer
	interactor ui.Interactor
	output     io.Writer
	clipboard  func(string) error
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithRequest sets the summary, body and removal choice of a run.
func WithRequest(req annotate.Request) Option {
	return func(a *application) {
		a.request = req
	}
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(a *application) {
		a.logger = logger
	}
}

// WithRepository replaces the git-backed repository.
func WithRepository(repo repository.Repository) Option {
	return func(a *application) {
		a.repository = repo
	}
}

// WithRenderer replaces the template renderer.
func WithRenderer(r render.Renderer) Option {
	return func(a *application) {
		a.renderer = r
	}
}

// WithInteractor replaces the terminal confirmation prompt.
func WithInteractor(i ui.Interactor) Option {
	return func(a *application) {
		a.interactor = i
	}
}

// WithOutput sets where the run summary is printed.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.output = w
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(a *application) {
		a.clipboard = write
	}
}
