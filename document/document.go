// Package document holds the in-memory shape of a tree document: an ordered
// list of bundles, each with zones keyed by language and selector, each zone
// carrying a surface tree (a-tree) and a deep tree (t-tree).
package document

import (
	"github.com/cockroachdb/errors"
)

// ErrZoneNotFound is returned when a bundle has no zone for the requested
// language and selector.
var ErrZoneNotFound = errors.New("zone not found")

// Document is an ordered sequence of bundles. Bundle order is fixed once the
// document is built.
type Document struct {
	Bundles []*Bundle
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// NewBundle appends an empty bundle and returns it.
func (d *Document) NewBundle() *Bundle {
	b := &Bundle{}
	d.Bundles = append(d.Bundles, b)
	return b
}

// Len returns the number of bundles.
func (d *Document) Len() int {
	return len(d.Bundles)
}

// Bundle groups all annotation layers of one sentence or dialogue turn.
type Bundle struct {
	Zones []*Zone
}

// Zone returns the zone for lang and sel.
func (b *Bundle) Zone(lang, sel string) (*Zone, error) {
	for _, z := range b.Zones {
		if z.Language == lang && z.Selector == sel {
			return z, nil
		}
	}

	return nil, errors.Wrapf(ErrZoneNotFound, "%s", ZoneLabel(lang, sel))
}

// GetOrCreateZone returns the zone for lang and sel, appending an empty one
// if the bundle has none.
func (b *Bundle) GetOrCreateZone(lang, sel string) *Zone {
	if z, err := b.Zone(lang, sel); err == nil {
		return z
	}

	z := &Zone{Language: lang, Selector: sel}
	b.Zones = append(b.Zones, z)
	return z
}

// AddText appends text to the sentence of the zone at lang and sel,
// creating the zone if needed. An unset sentence becomes text; a set one is
// joined with a single space. Neither side is trimmed.
func AddText(b *Bundle, lang, sel, text string) {
	z := b.GetOrCreateZone(lang, sel)
	if !z.HasSentence {
		z.Sentence = text
		z.HasSentence = true
		return
	}

	z.Sentence = z.Sentence + " " + text
}

// ZoneLabel formats a zone key the way zones are named in tree documents,
// e.g. "en_gen", or just "en" for an empty selector.
func ZoneLabel(lang, sel string) string {
	if sel == "" {
		return lang
	}
	return lang + "_" + sel
}
