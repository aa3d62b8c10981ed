package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/reqlog-go/internal/reqlog"
	"github.com/yndnr/reqlog-go/internal/reqlog/record"
	"github.com/yndnr/reqlog-go/pkg/jsonclean"
)

// CleanCommand redacts a JSON document the way request bodies are
// redacted in records.
func CleanCommand() *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "Redact a JSON document",
		ArgsUsage: "[FILE]",
		Description: "Reads FILE, or stdin when FILE is absent or \"-\", and prints the\n" +
			"document with every redaction path replaced by \"" + jsonclean.Removed + "\".\n" +
			"Paths come from --path; without it they are resolved from the\n" +
			"configuration for --method and --route.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Dotted redaction path, repeatable (e.g. items.*.token)",
			},
			&cli.StringFlag{
				Name:  "method",
				Usage: "HTTP method used to resolve paths from configuration",
				Value: "POST",
			},
			&cli.StringFlag{
				Name:  "route",
				Usage: "Request path used in route match mode",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Indent the output",
			},
		},
		Action: cleanAction,
	}
}

func cleanAction(c *cli.Context) error {
	raw, err := readInput(c)
	if err != nil {
		return exitError("clean", err)
	}

	paths := c.StringSlice("path")
	if len(paths) == 0 {
		if paths, err = configuredPaths(c); err != nil {
			return exitError("clean", err)
		}
	}

	doc, err := jsonclean.Decode(raw)
	if err != nil {
		return exitError("clean", fmt.Errorf("%s: %w", record.ExceptionType(err), err))
	}
	cleaned := jsonclean.Clean(doc, paths)

	if c.Bool("pretty") {
		return writePretty(c.App.Writer, cleaned)
	}
	out, err := jsonclean.Encode(cleaned)
	if err != nil {
		return exitError("clean", err)
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

func configuredPaths(c *cli.Context) ([]string, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	reg, err := reqlog.NewRegistry(cfg.Request)
	if err != nil {
		return nil, err
	}
	return reg.ResolveRoute(c.String("method"), c.String("route")), nil
}

func readInput(c *cli.Context) ([]byte, error) {
	name := c.Args().First()
	if name == "" || name == "-" {
		reader := c.App.Reader
		if reader == nil {
			reader = os.Stdin
		}
		return io.ReadAll(reader)
	}
	return os.ReadFile(name)
}
