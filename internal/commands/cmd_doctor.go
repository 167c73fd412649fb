package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gitwrap/internal/core/doctor"
	"github.com/hay-kot/gitwrap/internal/core/styles"
	"github.com/hay-kot/gitwrap/pkg/executil"
	"github.com/hay-kot/gitwrap/pkg/iojson"
)

type DoctorCmd struct {
	flags  *Flags
	format string

	// exec runs the git version check. Defaults to RealExecutor.
	exec executil.Executor
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags, exec: &executil.RealExecutor{}}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your git setup",
		UsageText:   "gitwrap doctor [options]",
		Description: "Checks the git executable, the config file, and the repository given by --dir.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.config()

	results := doctor.RunAll(ctx, []doctor.Check{
		doctor.NewToolsCheck(cfg.GitPath, cmd.exec),
		doctor.NewConfigCheck(cfg, cmd.flags.ConfigPath),
		doctor.NewRepositoryCheck(cmd.flags.dir(), cmd.flags.options()),
	})

	var err error
	if cmd.format == "json" {
		err = cmd.outputJSON(c, results)
	} else {
		cmd.outputText(c, results)
	}
	if err != nil {
		return err
	}

	if _, _, failed := doctor.Summary(results); failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
}

func (cmd *DoctorCmd) outputText(c *cli.Command, results []doctor.Result) {
	w := c.Root().Writer
	color := styles.Enabled(w)

	_, _ = fmt.Fprintln(w, styles.Render(color, styles.TitleStyle, "gitwrap doctor"))
	_, _ = fmt.Fprintln(w, styles.Render(color, styles.MutedStyle, strings.Repeat("─", 40)))

	for _, result := range results {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, result.Name)

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.Render(color, styles.MutedStyle, item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.Render(color, styles.SuccessStyle, "✔")
			case doctor.StatusWarn:
				icon = styles.Render(color, styles.WarningStyle, "●")
			case doctor.StatusFail:
				icon = styles.Render(color, styles.ErrorStyle, "✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}
	}

	passed, warned, failed := doctor.Summary(results)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		styles.Render(color, styles.SuccessStyle, fmt.Sprintf("%d passed", passed)),
		styles.Render(color, styles.WarningStyle, fmt.Sprintf("%d warnings", warned)),
		styles.Render(color, styles.ErrorStyle, fmt.Sprintf("%d failed", failed)),
	)
}
