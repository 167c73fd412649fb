package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gitwrap/internal/commands"
	"github.com/hay-kot/gitwrap/internal/core/logging"
	"github.com/hay-kot/gitwrap/internal/core/styles"
	"github.com/hay-kot/gitwrap/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// ldflags aren't set by `go install module@version`, fall back to the
	// module version and VCS metadata Go records in the binary.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "gitwrap",
		Usage:     "Drive git repositories through the git executable",
		UsageText: "gitwrap [global options] command [command options]",
		Description: `gitwrap runs git as a child process and turns its output into structured
results: branches, tags, commits, changed files and config options.

Every command works on the repository given by --dir, the current directory
by default. Use --debug to print each composed command line and its output.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("GITWRAP_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("GITWRAP_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("GITWRAP_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"C"},
				Usage:       "repository directory",
				Value:       ".",
				Destination: &flags.Dir,
			},
			&cli.StringFlag{
				Name:        "git-path",
				Usage:       "git executable (overrides git_path from the config file)",
				Sources:     cli.EnvVars("GITWRAP_GIT_PATH"),
				Destination: &flags.GitPath,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "print composed command lines and their output",
				Destination: &flags.Debug,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := commands.LoadConfig(flags.ConfigPath, c.Args().Slice())
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Apply(cfg)

			// Unknown themes only get this far for "config validate"
			if palette, ok := styles.GetPalette(cfg.Theme); ok {
				styles.SetTheme(palette)
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewInitCmd(flags).Register(app)
	app = commands.NewCloneCmd(flags).Register(app)
	app = commands.NewExecCmd(flags).Register(app)
	app = commands.NewBranchesCmd(flags).Register(app)
	app = commands.NewTagsCmd(flags).Register(app)
	app = commands.NewLogCmd(flags).Register(app)
	app = commands.NewDiffCmd(flags).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		exitCode = 1

		var exitErr cli.ExitCoder
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		if msg := runErr.Error(); msg != "" {
			_, _ = fmt.Fprintln(os.Stderr, msg)
		}
	}

	os.Exit(exitCode)
}
