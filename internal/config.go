package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/gitcommit/internal/materialize"
	"github.com/starford/gitcommit/internal/models"
	"github.com/starford/gitcommit/internal/parser"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Marker     MarkerConfig      `yaml:"marker"`
	Repository RepositoryConfig  `yaml:"repository"`
	Staging    StagingConfig     `yaml:"staging"`
	Template   TemplateConfig    `yaml:"template"`
	Output     OutputConfig      `yaml:"output"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Marker.Validate(); err != nil {
		return err
	}
	if err := c.Repository.Validate(); err != nil {
		return err
	}
	if err := c.Staging.Validate(); err != nil {
		return err
	}
	return c.Template.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// MarkerConfig holds the two parts of the marker token.
type MarkerConfig struct {
	Comment string `yaml:"comment"`
	Arrow   string `yaml:"arrow"`
}

// Validate validates the marker configuration.
func (c *MarkerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Comment, validation.Required),
		validation.Field(&c.Arrow, validation.Required),
	)
}

// Marker returns the configured marker.
func (c *MarkerConfig) Marker() parser.Marker {
	return parser.Marker{Comment: c.Comment, Arrow: c.Arrow}
}

// RepositoryConfig selects the working tree and which files to scan.
type RepositoryConfig struct {
	Path         string   `yaml:"path"`
	Untracked    bool     `yaml:"untracked"`
	SkipSuffixes []string `yaml:"skip_suffixes"`
}

// Validate validates the repository configuration.
func (c *RepositoryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// StagingConfig holds the staging area configuration.
//
// An empty Dir makes every run create a fresh temporary directory.
type StagingConfig struct {
	Dir         string `yaml:"dir"`
	Mode        string `yaml:"mode"`
	DebugSuffix string `yaml:"debug_suffix"`
}

// Validate validates the staging configuration.
func (c *StagingConfig) Validate() error {
	modes := make([]any, 0, len(materialize.Modes))
	for _, m := range materialize.Modes {
		if m != materialize.ModeInPlace {
			modes = append(modes, string(m))
		}
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(modes...)),
		validation.Field(&c.DebugSuffix, validation.Required),
	)
}

// TemplateConfig selects the commit message template.
type TemplateConfig struct {
	Path      string `yaml:"path"`
	BodyWidth int    `yaml:"body_width"`
}

// Validate validates the template configuration.
func (c *TemplateConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BodyWidth, validation.Required, validation.Min(10)),
	)
}

// OutputConfig controls where the rendered message goes.
type OutputConfig struct {
	MessagePath string `yaml:"message_path"`
	Clipboard   bool   `yaml:"clipboard"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelWarn,
		},
		Marker: MarkerConfig{
			Comment: parser.DefaultMarker.Comment,
			Arrow:   parser.DefaultMarker.Arrow,
		},
		Repository: RepositoryConfig{
			Path:         ".",
			SkipSuffixes: []string{materialize.DefaultDebugSuffix},
		},
		Staging: StagingConfig{
			Mode:        string(materialize.ModeStaging),
			DebugSuffix: materialize.DefaultDebugSuffix,
		},
		Template: TemplateConfig{
			BodyWidth: models.DefaultBodyWidth,
		},
	}
}
