// Package da reads dialogue acts, one per line, in the
// `inform(food="chinese")&request(phone)` notation.
package da

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cockroachdb/errors"
)

// Item is one dialogue act item: a type with an optional slot and value.
type Item struct {
	Type  string `json:"type"`
	Slot  string `json:"slot,omitempty"`
	Value string `json:"value,omitempty"`
}

func (i Item) String() string {
	switch {
	case i.Slot == "":
		return i.Type + "()"
	case i.Value == "":
		return i.Type + "(" + i.Slot + ")"
	}
	return i.Type + "(" + i.Slot + "=" + strconv.Quote(i.Value) + ")"
}

// DialogueAct is an ordered list of items.
type DialogueAct []Item

func (d DialogueAct) String() string {
	parts := make([]string, len(d))
	for i, item := range d {
		parts[i] = item.String()
	}
	return strings.Join(parts, "&")
}

// Parser turns one line of text into a DialogueAct.
type Parser interface {
	Parse(line string) (DialogueAct, error)
}

//nolint:govet // participle grammar tags are not standard struct tags
type actGrammar struct {
	Items []*itemGrammar `@@ ( "&" @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type itemGrammar struct {
	Type  string        `@Ident "("`
	Slot  string        `( @Ident`
	Value *valueGrammar `  ( "=" @@ )? )? ")"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type valueGrammar struct {
	Quoted *string `  @String`
	Bare   *string `| @Ident`
}

var actLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Ident", Pattern: `[^\s&()="]+`},
	{Name: "Punct", Pattern: `[&()=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var actParser = participle.MustBuild[actGrammar](
	participle.Lexer(actLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// GrammarParser is the default Parser.
type GrammarParser struct{}

var _ Parser = GrammarParser{}

// Parse parses a dialogue act such as `inform(food="chinese")&bye()`.
func (GrammarParser) Parse(line string) (DialogueAct, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, errors.New("empty dialogue act")
	}

	parsed, err := actParser.ParseString("", line)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid dialogue act %q", line)
	}

	act := make(DialogueAct, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		item := Item{Type: it.Type, Slot: it.Slot}
		if it.Value != nil {
			switch {
			case it.Value.Quoted != nil:
				item.Value = *it.Value.Quoted
			case it.Value.Bare != nil:
				item.Value = *it.Value.Bare
			}
		}
		act = append(act, item)
	}
	return act, nil
}
