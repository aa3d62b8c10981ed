package command

import (
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/reqlog-go/internal/cli/output"
	"github.com/yndnr/reqlog-go/internal/reqlog"
	"github.com/yndnr/reqlog-go/internal/reqlog/redaction"
)

// Resolution is the redaction list applied to one request.
type Resolution struct {
	Method     string   `json:"method" yaml:"method"`
	Route      string   `json:"route,omitempty" yaml:"route,omitempty"`
	Mode       string   `json:"mode" yaml:"mode"`
	Attributes []string `json:"attributes" yaml:"attributes"`
}

// Table implements output.Tabular.
func (r *Resolution) Table() *output.Table {
	t := &output.Table{Headers: []string{"#", "PATH"}}
	for i, a := range r.Attributes {
		t.AddRow(strconv.Itoa(i+1), a)
	}
	return t
}

// RuleList is the configured rules in registration order.
type RuleList []redaction.Rule

// Table implements output.Tabular.
func (l RuleList) Table() *output.Table {
	t := &output.Table{Headers: []string{"METHOD", "ROUTE", "ATTRIBUTES"}}
	for _, r := range l {
		route := r.Path
		if route == "" {
			route = "*"
		}
		t.AddRow(r.Method, route, output.List(r.Attributes))
	}
	return t
}

// ResolveCommand prints the redaction paths for a request.
func ResolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Show the redaction paths applied to a request",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "method",
				Aliases:  []string{"m"},
				Usage:    "HTTP method",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "route",
				Usage: "Request path, used in route match mode",
			},
			&cli.BoolFlag{
				Name:  "rules",
				Usage: "List the configured rules instead",
			},
		},
		Action: resolveAction,
	}
}

func resolveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return exitError("resolve", err)
	}
	reg, err := reqlog.NewRegistry(cfg.Request)
	if err != nil {
		return exitError("resolve", err)
	}

	if c.Bool("rules") {
		return render(c, RuleList(reg.Rules()))
	}

	method := strings.ToUpper(c.String("method"))
	return render(c, &Resolution{
		Method:     method,
		Route:      c.String("route"),
		Mode:       string(reg.Mode()),
		Attributes: reg.ResolveRoute(method, c.String("route")),
	})
}
