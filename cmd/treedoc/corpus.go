package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/storage/sqlite/zombiezen"
)

func corpusCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "corpus",
		Usage:     "list the documents of a SQLite corpus, or print the tokens of one",
		ArgsUsage: "[<id>]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Usage:    "SQLite corpus database",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			s := resolve(c)

			pool, err := zombiezen.NewPool(c.String("db"))
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := zombiezen.CreateCorpusTables(pool); err != nil {
				return err
			}
			corpus := zombiezen.NewCorpusStore(pool)

			if c.NArg() == 0 {
				docs, err := corpus.List()
				if err != nil {
					return err
				}
				for _, d := range docs {
					fmt.Fprintf(ui.Out, "%5d %-40s %s\n", d.Id, d.Title, document.ZoneLabel(d.Language, d.Selector))
				}
				return nil
			}

			id, err := strconv.ParseInt(c.Args().First(), 10, 64)
			if err != nil {
				return errors.Wrapf(err, "bad corpus id %q", c.Args().First())
			}

			sents, err := corpus.Read(id)
			if err != nil {
				return err
			}

			r, err := s.renderer(ui.Out)
			if err != nil {
				return err
			}
			return r.Tokens(sents)
		},
	}
}
