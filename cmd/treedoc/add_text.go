package main

import (
	"bufio"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/file"
	"github.com/revelaction/treedoc/storage/snapshot"
	"github.com/revelaction/treedoc/storage/yaml"
)

func addTextCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "add-text",
		Usage:     "append line i of a text file to the zone sentence of bundle i",
		ArgsUsage: "<doc> <textfile>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "text file encoding, e.g. latin1",
				Value: "utf-8",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("add-text needs a document and a text file")
			}
			s := resolve(c)
			docPath, textPath := c.Args().Get(0), c.Args().Get(1)

			if snapshot.DefaultNaming().IsSnapshot(docPath) {
				return errors.Newf("%s is a snapshot, add text to its source", docPath)
			}

			codec := yaml.Codec{}
			doc, err := codec.Read(docPath)
			if err != nil {
				return err
			}

			fh, err := file.OpenText(textPath, c.String("encoding"))
			if err != nil {
				return err
			}
			defer fh.Close()

			n := 0
			scanner := bufio.NewScanner(fh)
			for scanner.Scan() {
				for n >= doc.Len() {
					doc.NewBundle()
				}
				document.AddText(doc.Bundles[n], s.Language, s.Selector, scanner.Text())
				n++
			}
			if err := scanner.Err(); err != nil {
				return errors.Wrapf(err, "read %s", textPath)
			}

			if err := codec.Write(doc, docPath); err != nil {
				return err
			}

			_, err = fmt.Fprintf(ui.Out, "Added %d lines to zone %s of %s\n", n, document.ZoneLabel(s.Language, s.Selector), docPath)
			return err
		},
	}
}
