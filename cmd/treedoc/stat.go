package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/stat"
)

func statCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "print token statistics",
		ArgsUsage: "<doc>...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "text",
				Usage: "arguments are tokenized text files, one sentence per line",
			},
		},
		Action: func(c *cli.Context) error {
			s := resolve(c)
			hdl := stat.NewHandler()

			if c.Bool("text") {
				if c.NArg() == 0 {
					return errors.New("at least one text file is required")
				}
				for _, path := range c.Args().Slice() {
					sents, err := extract.ReadTokens(path)
					if err != nil {
						return err
					}
					hdl.Aggregate(sents)
				}
			} else {
				docs, err := loadDocs(c, s)
				if err != nil {
					return err
				}
				for _, doc := range docs {
					sents, err := extract.Tokens(doc, s.Language, s.Selector)
					if err != nil {
						return err
					}
					hdl.Aggregate(sents)
				}
			}

			stats := hdl.Get()
			_, err := fmt.Fprintf(ui.Out, "Num sentences %d, num tokens %d, num tokens per sentence %d, unresolved placeholders %d\n",
				stats.NumSentences, stats.NumTokens, stats.TokensPerSentenceMean, stats.NumPlaceholders)
			return err
		},
	}
}
