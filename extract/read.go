package extract

import (
	"bufio"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/revelaction/treedoc/file"
)

// ReadTokens reads a tokenized text file, one sentence per line with forms
// separated by spaces. Tags are left empty. An empty line is an empty
// sentence.
func ReadTokens(path string) ([][]Token, error) {
	fh, err := file.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var sents [][]Token
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		sent := make([]Token, 0, len(fields))
		for _, form := range fields {
			sent = append(sent, Token{Form: form})
		}
		sents = append(sents, sent)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return sents, nil
}
