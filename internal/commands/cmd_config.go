package commands

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gitwrap/internal/core/validate"
	"github.com/hay-kot/gitwrap/pkg/iojson"
)

type ConfigCmd struct {
	flags *Flags

	// flags
	fallback string
	format   string
	importer iojson.FileReader[map[string]string]
}

// NewConfigCmd creates the config command group for repository options and
// the gitwrap config file.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{
		flags: flags,
		importer: iojson.FileReader[map[string]string]{
			Usage: "path to a JSON object of option names to values (reads from stdin if not provided)",
		},
	}
}

func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Read and write repository configuration",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print the value of an option",
				UsageText: "gitwrap config get <name> [--default <value>]",
				Description: `Prints the value of a git config option as seen from the repository.

Exits with code 1 when the option is unset, unless --default is given.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "default",
						Usage:       "value printed when the option is unset",
						Destination: &cmd.fallback,
					},
				},
				Action: cmd.runGet,
			},
			{
				Name:      "set",
				Usage:     "Set an option in the repository-local config",
				UsageText: "gitwrap config set <name> <value>",
				Action:    cmd.runSet,
			},
			{
				Name:      "unset",
				Usage:     "Remove an option from the repository-local config",
				UsageText: "gitwrap config unset <name>",
				Action:    cmd.runUnset,
			},
			{
				Name:      "import",
				Usage:     "Set many options from a JSON object",
				UsageText: "gitwrap config import [-f <file>]",
				Description: `Reads {"option.name": "value", ...} from a file or stdin and sets each
option in the repository-local config, in name order.`,
				Flags:  []cli.Flag{cmd.importer.Flag()},
				Action: cmd.runImport,
			},
			{
				Name:        "validate",
				Usage:       "Validate the gitwrap config file",
				UsageText:   "gitwrap config validate [--format text|json]",
				Description: "Validates the config file and checks that the configured git executable can be found.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runGet(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("config get requires an option name")
	}

	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	value, ok, err := repo.Configuration().Lookup(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		if !c.IsSet("default") {
			return cli.Exit("", 1)
		}
		value = cmd.fallback
	}

	_, _ = fmt.Fprintln(c.Root().Writer, value)
	return nil
}

func (cmd *ConfigCmd) runSet(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("config set requires <name> and <value>")
	}

	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	name := c.Args().Get(0)
	if err := validate.OptionName(name); err != nil {
		return err
	}

	return repo.Configuration().Set(ctx, name, c.Args().Get(1))
}

func (cmd *ConfigCmd) runUnset(ctx context.Context, c *cli.Command) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("config unset requires an option name")
	}

	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	return repo.Configuration().Remove(ctx, name)
}

func (cmd *ConfigCmd) runImport(ctx context.Context, c *cli.Command) error {
	options, err := cmd.importer.Read()
	if err != nil {
		return err
	}

	repo, err := cmd.flags.OpenRepo()
	if err != nil {
		return err
	}

	names := slices.Sorted(maps.Keys(options))
	if err := validate.OptionNames(names); err != nil {
		return fmt.Errorf("invalid option names: %w", err)
	}

	cfg := repo.Configuration()
	for _, name := range names {
		if err := cfg.Set(ctx, name, options[name]); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Set %d option(s)\n", len(options))
	return nil
}

// validationIssue is one failed check in gitwrap config validate output.
type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	issues := validationIssues(cmd.flags.config().ValidateDeep(cmd.flags.ConfigPath))

	out := c.Root().Writer
	if cmd.format == "json" {
		err := iojson.WriteWith(out, c.Root().ErrWriter, struct {
			Valid  bool              `json:"valid"`
			Errors []validationIssue `json:"errors,omitempty"`
		}{
			Valid:  len(issues) == 0,
			Errors: issues,
		})
		if err != nil {
			return err
		}
	} else {
		for _, issue := range issues {
			_, _ = fmt.Fprintf(out, "%s: %s\n", issue.Field, issue.Message)
		}
		if len(issues) == 0 {
			_, _ = fmt.Fprintln(out, "Configuration is valid")
		}
	}

	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func validationIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Field: "config", Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}
