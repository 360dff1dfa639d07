package main

import (
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/browse"
)

func browseCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "browse a document interactively",
		ArgsUsage: "<doc>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("browse needs exactly one document")
			}
			s := resolve(c)

			docs, err := loadDocs(c, s)
			if err != nil {
				return err
			}

			return browse.NewHandler(docs[0], s.Language, s.Selector, ui.Out).Run()
		},
	}
}
