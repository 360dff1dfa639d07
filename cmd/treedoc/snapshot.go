package main

import (
	"fmt"
	"io"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/storage/filesystem"
)

func snapshotCommand(ui UI) *cli.Command {
	return &cli.Command{
		Name:      "snapshot",
		Usage:     "write or refresh the snapshot of each source document",
		ArgsUsage: "[<doc>...]  (default: every source in the configured doc_path)",
		Action: func(c *cli.Context) error {
			s := resolve(c)
			store, err := docStore(c, s)
			if err != nil {
				return err
			}

			missing, err := loadWithProgress(store, ui)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(ui.Out, "Snapshotted %d docs, skipped %d missing\n", len(store.List())-len(missing), len(missing))
			return err
		},
	}
}

// docStore returns the documents named on the command line, or every
// source under the configured doc path.
func docStore(c *cli.Context, s settings) (*filesystem.DocStore, error) {
	l, err := newLoader(s)
	if err != nil {
		return nil, err
	}

	if c.NArg() > 0 {
		return filesystem.NewDocStoreFromPaths(c.Args().Slice(), l), nil
	}
	return filesystem.NewDocStore(s.DocPath, l)
}

func loadWithProgress(store *filesystem.DocStore, ui UI) ([]string, error) {
	total := len(store.List())
	if total == 0 {
		return nil, nil
	}

	var currentName string
	p, bar := newProgress(ui.Err, total, &currentName)
	missing, err := store.LoadAll(func(total int, name string) {
		currentName = name
		bar.Incr()
	})
	p.Stop()

	return missing, err
}

// newProgress starts a progress bar of total steps on out, labelled with
// the current value of name.
func newProgress(out io.Writer, total int, name *string) (*uiprogress.Progress, *uiprogress.Bar) {
	p := uiprogress.New()
	p.SetOut(out)
	p.Start()
	bar := p.AddBar(total)
	bar.AppendCompleted()
	bar.PrependElapsed()
	bar.AppendFunc(func(b *uiprogress.Bar) string {
		return *name
	})
	return p, bar
}
