package zombiezen

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/revelaction/treedoc/extract"
	"github.com/revelaction/treedoc/storage"
)

// CorpusStore keeps extracted token sentences, one row per sentence, so
// training data can be read back without the tree documents.
type CorpusStore struct {
	pool *sqlitex.Pool
}

var (
	_ storage.CorpusWriter = (*CorpusStore)(nil)
	_ storage.CorpusReader = (*CorpusStore)(nil)
)

func NewCorpusStore(pool *sqlitex.Pool) *CorpusStore {
	return &CorpusStore{pool: pool}
}

// Write stores the sentences of one document in a single transaction and
// returns the new document id.
func (h *CorpusStore) Write(title, lang, sel string, sents [][]extract.Token) (docID int64, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "INSERT INTO docs (title, language, selector) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{title, lang, sel},
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert doc")
	}
	docID = conn.LastInsertRowID()

	for i, sent := range sents {
		data, marshalErr := json.Marshal(sent)
		if marshalErr != nil {
			return 0, marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, position, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, i, string(data)},
		})
		if err != nil {
			return 0, errors.Wrap(err, "failed to insert sentence")
		}
	}

	return docID, nil
}

func (h *CorpusStore) List() ([]storage.CorpusDoc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []storage.CorpusDoc
	err = sqlitex.Execute(conn, "SELECT id, title, language, selector FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			docs = append(docs, storage.CorpusDoc{
				Id:       stmt.ColumnInt64(0),
				Title:    stmt.ColumnText(1),
				Language: stmt.ColumnText(2),
				Selector: stmt.ColumnText(3),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *CorpusStore) Read(id int64) ([][]extract.Token, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	found := false
	err = sqlitex.Execute(conn, "SELECT 1 FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrapf(storage.ErrNotFound, "corpus doc %d", id)
	}

	sents := [][]extract.Token{}
	err = sqlitex.Execute(conn, "SELECT data FROM sentences WHERE doc_id = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var tokens []extract.Token
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &tokens); err != nil {
				return errors.Mark(err, storage.ErrMalformed)
			}
			sents = append(sents, tokens)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return sents, nil
}
