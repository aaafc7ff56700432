package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/gitcommit/internal"
	"github.com/starford/gitcommit/internal/annotate"
	"github.com/starford/gitcommit/internal/apperr"
	"github.com/starford/gitcommit/internal/materialize"
	pkgconfig "github.com/starford/gitcommit/pkg/config"
)

// loadConfig builds the configuration from defaults, the optional config file
// and the flags that were set.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cmd.IsSet("path") {
		cfg.Repository.Path = cmd.String("path")
	}
	if cmd.IsSet("comment") {
		cfg.Marker.Comment = cmd.String("comment")
	}
	if cmd.IsSet("mark") {
		cfg.Marker.Arrow = cmd.String("mark")
	}
	if cmd.IsSet("untracked") {
		cfg.Repository.Untracked = cmd.Bool("untracked")
	}
	if cmd.IsSet("staging-dir") {
		cfg.Staging.Dir = cmd.String("staging-dir")
	}
	if cmd.Bool("debug") {
		cfg.Staging.Mode = string(materialize.ModeDebugSuffix)
	}
	if cmd.IsSet("template") {
		cfg.Template.Path = cmd.String("template")
	}
	if cmd.IsSet("output") {
		cfg.Output.MessagePath = cmd.String("output")
	}
	if cmd.IsSet("copy") {
		cfg.Output.Clipboard = cmd.Bool("copy")
	}
	if cmd.IsSet("log-level") {
		if err := cfg.App.LogLevel.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func request(cmd *cli.Command) annotate.Request {
	return annotate.Request{
		Summary: cmd.String("summary"),
		Body:    cmd.String("body"),
		Remove:  cmd.Bool("remove"),
		DryRun:  cmd.Bool("dry-run"),
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg), internal.WithRequest(request(cmd))); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func apply(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Apply(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("apply error: %w", err)
	}
	return nil
}

func watch(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Watch(ctx, internal.WithConfig(cfg), internal.WithRequest(request(cmd))); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "gitcommit",
		Usage:  "Build a commit message from #-> comments in changed files and strip them from the code",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional)",
				DefaultText: ".gitcommit.yaml",
				Value:       ".gitcommit.yaml",
				Sources:     cli.EnvVars("GITCOMMIT_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Root of the working tree",
				Sources: cli.EnvVars("GITCOMMIT_PATH"),
			},
			&cli.StringFlag{
				Name:    "summary",
				Aliases: []string{"s"},
				Usage:   "Commit summary, cut to 50 characters",
			},
			&cli.StringFlag{
				Name:    "body",
				Aliases: []string{"b"},
				Usage:   "Commit body, wrapped at the configured width",
			},
			&cli.StringFlag{
				Name:    "comment",
				Usage:   "Comment prefix of the marker",
				Sources: cli.EnvVars("GITCOMMIT_COMMENT"),
			},
			&cli.StringFlag{
				Name:    "mark",
				Usage:   "Arrow part of the marker",
				Sources: cli.EnvVars("GITCOMMIT_MARK"),
			},
			&cli.BoolFlag{
				Name:    "untracked",
				Aliases: []string{"u"},
				Usage:   "Include untracked files",
			},
			&cli.BoolFlag{
				Name:    "remove",
				Aliases: []string{"r"},
				Usage:   "Remove the markers from the working tree after confirmation",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Print the message without writing any file",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Write cleaned files next to the originals with the debug suffix",
			},
			&cli.StringFlag{
				Name:    "staging-dir",
				Usage:   "Directory for the cleaned copies (default: new temp dir)",
				Sources: cli.EnvVars("GITCOMMIT_STAGING_DIR"),
			},
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Commit message template file",
				Sources: cli.EnvVars("GITCOMMIT_TEMPLATE"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the message to this file instead of a temp file",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the message to the clipboard",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("GITCOMMIT_LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "apply",
				Usage:  "Apply the cleaned files of an earlier run (requires --staging-dir)",
				Action: apply,
			},
			{
				Name:   "watch",
				Usage:  "Preview the commit message whenever the working tree changes",
				Action: watch,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		attrs := []any{slog.String("error", err.Error())}
		if stage := apperr.Stage(err); stage != "" {
			attrs = append(attrs, slog.String("stage", stage))
		}
		slog.Error("application error", attrs...)
		os.Exit(1)
	}
}
