// Package command provides CLI command definitions for reqlog-cli.
//
// It uses urfave/cli/v2. Commands write their results through the
// output package to the app's writer.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/reqlog-go/internal/cli/output"
	"github.com/yndnr/reqlog-go/internal/config"
	"github.com/yndnr/reqlog-go/internal/infra/buildinfo"
)

const metaConfig = "config"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "reqlog-cli",
		Usage:   "Inspect reqlog redaction and configuration",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			CleanCommand(),
			ResolveCommand(),
			ConfigCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (YAML)",
			EnvVars: []string{"REQLOG_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   string(output.FormatTable),
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config string
	Output output.Format
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return &GlobalFlags{
		Config: c.String("config"),
		Output: format,
	}, nil
}

// loadConfig loads the configuration once per run and caches it in the
// app metadata.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if cfg, ok := c.App.Metadata[metaConfig].(*config.Config); ok {
		return cfg, nil
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[metaConfig] = cfg
	return cfg, nil
}

// render writes data in the selected output format.
func render(c *cli.Context, data any) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}
	return output.NewFormatter(flags.Output).Format(c.App.Writer, data)
}

// exitError wraps err with exit code 1 and a command prefix.
func exitError(cmd string, err error) error {
	return cli.Exit(fmt.Sprintf("%s: %v", cmd, err), 1)
}
