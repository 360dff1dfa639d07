package main

import (
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/treedoc/document"
	"github.com/revelaction/treedoc/logger"
	"github.com/revelaction/treedoc/storage/filesystem"
	"github.com/revelaction/treedoc/storage/snapshot"
)

func newLoader(s settings) (*filesystem.Loader, error) {
	policy, err := snapshot.ParsePolicy(s.Policy)
	if err != nil {
		return nil, err
	}
	return filesystem.NewLoader(policy, logger.Logger), nil
}

// loadDocs loads the document arguments of c in order.
func loadDocs(c *cli.Context, s settings) ([]*document.Document, error) {
	if c.NArg() == 0 {
		return nil, errors.New("at least one document is required")
	}

	l, err := newLoader(s)
	if err != nil {
		return nil, err
	}

	docs := make([]*document.Document, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		doc, err := l.Load(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
