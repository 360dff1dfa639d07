package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/config"
	"github.com/revelaction/treedoc/logger"
	"github.com/revelaction/treedoc/render"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

const configKey = "config"

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "treedoc: %v\n", err)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "treedoc",
		Usage:     "read, cache and project tree annotated documents",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   "zone language",
			},
			&cli.StringFlag{
				Name:    "selector",
				Aliases: []string{"s"},
				Usage:   "zone selector",
			},
			&cli.StringFlag{
				Name:  "policy",
				Usage: "snapshot freshness policy: hash, mtime or trust",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: plain, tagged or json",
			},
			&cli.BoolFlag{
				Name:    "prefix",
				Aliases: []string{"p"},
				Usage:   "number output lines",
			},
			&cli.BoolFlag{
				Name:  "json-log",
				Usage: "write logs as JSON",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
			},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			c.App.Metadata = map[string]interface{}{configKey: cfg}

			jsonLog := cfg.JSONLog
			if c.IsSet("json-log") {
				jsonLog = c.Bool("json-log")
			}
			return logger.InitializeWriter(ui.Err, jsonLog)
		},
		After: func(c *cli.Context) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			sentencesCommand(ui),
			tokensCommand(ui),
			treesCommand(ui),
			dasCommand(ui),
			statCommand(ui),
			snapshotCommand(ui),
			exportCommand(ui),
			corpusCommand(ui),
			addTextCommand(ui),
			browseCommand(ui),
			versionCommand(ui),
		},
	}
}

// settings are the global flags resolved against the config file and
// environment.
type settings struct {
	Language string
	Selector string
	Policy   string
	Format   string
	DocPath  string
	Prefix   bool
}

func resolve(c *cli.Context) settings {
	cfg, _ := c.App.Metadata[configKey].(*config.Config)
	if cfg == nil {
		cfg = &config.Config{}
	}

	pick := func(name, fallback string) string {
		if c.IsSet(name) {
			return c.String(name)
		}
		return fallback
	}

	return settings{
		Language: pick("lang", cfg.Language),
		Selector: pick("selector", cfg.Selector),
		Policy:   pick("policy", cfg.Policy),
		Format:   pick("format", cfg.Format),
		DocPath:  cfg.DocPath,
		Prefix:   c.Bool("prefix"),
	}
}

func (s settings) renderer(w io.Writer) (render.Renderer, error) {
	r, err := render.New(s.Format, w)
	if err != nil {
		return nil, err
	}
	if tr, ok := r.(*render.TextRenderer); ok {
		tr.HasPrefix = s.Prefix
	}
	return r, nil
}
