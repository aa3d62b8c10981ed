package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/reqlog-go/internal/cli/output"
	"github.com/yndnr/reqlog-go/internal/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the merged configuration with secrets masked",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Validate the merged configuration",
				Action: configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return exitError("config show", err)
	}

	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	// A configuration has no useful table layout.
	format := flags.Output
	if format == output.FormatTable {
		format = output.FormatYAML
	}
	return output.NewFormatter(format).Format(c.App.Writer, config.Sanitize(cfg))
}

func configValidate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return exitError("config validate", err)
	}
	if err := config.Verify(cfg); err != nil {
		return exitError("config validate", err)
	}

	source := c.String("config")
	if source == "" {
		source = "defaults and environment"
	}
	_, err = fmt.Fprintf(c.App.Writer, "configuration is valid (%s)\n", source)
	return err
}
