package main

import (
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/da"
)

func dasCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "das",
		Usage:     "parse dialogue act files, one act per line",
		ArgsUsage: "<file>...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one dialogue act file is required")
			}
			s := resolve(c)

			var acts []da.DialogueAct
			for _, path := range c.Args().Slice() {
				fa, err := da.Read(path, da.GrammarParser{})
				if err != nil {
					return err
				}
				acts = append(acts, fa...)
			}

			r, err := s.renderer(ui.Out)
			if err != nil {
				return err
			}
			return r.DialogueActs(acts)
		},
	}
}
