package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/logger"
	"github.com/revelaction/treedoc/storage/sqlite/zombiezen"
)

func exportCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "store the tokens of each document in a SQLite corpus",
		ArgsUsage: "[<doc>...]  (default: every source in the configured doc_path)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "target SQLite database",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			s := resolve(c)
			store, err := docStore(c, s)
			if err != nil {
				return err
			}

			pool, err := zombiezen.NewPool(c.String("to"))
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := zombiezen.CreateCorpusTables(pool); err != nil {
				return err
			}
			corpus := zombiezen.NewCorpusStore(pool)

			entries := store.List()

			var currentName string
			p, bar := newProgress(ui.Err, max(len(entries), 1), &currentName)

			count, skipped := 0, 0
			for _, e := range entries {
				currentName = e.Path
				bar.Incr()
				doc, err := store.Read(e.Id)
				if errors.Is(err, os.ErrNotExist) {
					logger.Logger.Warnw("skipping missing document", "path", e.Path)
					skipped++
					continue
				}
				if err != nil {
					p.Stop()
					return err
				}

				sents, err := extract.Tokens(doc, s.Language, s.Selector)
				if err != nil {
					p.Stop()
					return errors.Wrapf(err, "doc %s", e.Path)
				}

				if _, err := corpus.Write(filepath.Base(e.Path), s.Language, s.Selector, sents); err != nil {
					p.Stop()
					return errors.Wrapf(err, "failed to export %s", e.Path)
				}
				count++
			}
			p.Stop()

			_, err = fmt.Fprintf(ui.Out, "Successfully exported %d docs to %s, skipped %d missing\n", count, c.String("to"), skipped)
			return err
		},
	}
}
