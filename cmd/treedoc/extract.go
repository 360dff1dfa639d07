package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/chunk"
	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/treedata"
)

func sentencesCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "sentences",
		Usage:     "print the zone sentence of every bundle",
		ArgsUsage: "<doc>...",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "batch",
				Usage: "print sentences in batches of n, separated by an empty line",
			},
		},
		Action: func(c *cli.Context) error {
			s := resolve(c)
			docs, err := loadDocs(c, s)
			if err != nil {
				return err
			}

			var sents []string
			for _, doc := range docs {
				ds, err := extract.Sentences(doc, s.Language, s.Selector)
				if err != nil {
					return err
				}
				sents = append(sents, ds...)
			}

			r, err := s.renderer(ui.Out)
			if err != nil {
				return err
			}

			if !c.IsSet("batch") {
				return r.Sentences(sents)
			}

			ch, err := chunk.New(sents, c.Int("batch"))
			if err != nil {
				return err
			}
			first := true
			for batch := range ch.All() {
				if !first && s.Format != "json" {
					fmt.Fprintln(ui.Out)
				}
				first = false
				if err := r.Sentences(batch); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func tokensCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "print the surface tokens of every bundle, placeholders resolved",
		ArgsUsage: "<doc>...",
		Action: func(c *cli.Context) error {
			s := resolve(c)
			docs, err := loadDocs(c, s)
			if err != nil {
				return err
			}

			var sents [][]extract.Token
			for _, doc := range docs {
				ds, err := extract.Tokens(doc, s.Language, s.Selector)
				if err != nil {
					return err
				}
				sents = append(sents, ds...)
			}

			r, err := s.renderer(ui.Out)
			if err != nil {
				return err
			}
			return r.Tokens(sents)
		},
	}
}

func treesCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "trees",
		Usage:     "print the t-tree of every bundle",
		ArgsUsage: "<doc>...",
		Action: func(c *cli.Context) error {
			s := resolve(c)
			docs, err := loadDocs(c, s)
			if err != nil {
				return err
			}

			var trees []*treedata.TreeData
			for _, doc := range docs {
				ds, err := extract.Trees(doc, s.Language, s.Selector)
				if err != nil {
					return err
				}
				trees = append(trees, ds...)
			}

			r, err := s.renderer(ui.Out)
			if err != nil {
				return err
			}
			return r.Trees(trees)
		},
	}
}
