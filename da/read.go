package da

import (
	"bufio"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/revelaction/treedoc/file"
)

// Read parses every non-empty line of path (plain, .gz or .xz) with p and
// returns the acts in file order. The first parse failure aborts the read.
func Read(path string, p Parser) ([]DialogueAct, error) {
	fh, err := file.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var acts []DialogueAct
	scanner := bufio.NewScanner(fh)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		act, err := p.Parse(line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, lineNo)
		}
		acts = append(acts, act)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return acts, nil
}
