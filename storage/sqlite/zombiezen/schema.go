package zombiezen

import (
	"context"
	"embed"
	"path"

	"github.com/cockroachdb/errors"
	"zombiezen.com/go/sqlite/sqlitex"
)

// sqlFiles embeds all SQL scripts from the sql/ subdirectory.
//
//go:embed sql/*.sql
var sqlFiles embed.FS

// CorpusSchema is the script creating the token corpus tables.
const CorpusSchema = "corpus.sql"

// CreateSchemas reads a SQL script from the embedded filesystem and
// executes it using the provided connection pool.
func CreateSchemas(pool *sqlitex.Pool, schemaName string) error {
	scriptPath := path.Join("sql", schemaName)

	script, err := sqlFiles.ReadFile(scriptPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read embedded sql file %s", scriptPath)
	}

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	// ExecuteScript handles multi-statement strings.
	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return errors.Wrapf(err, "failed to execute script %s", schemaName)
	}

	return nil
}

// CreateCorpusTables creates the token corpus tables if missing.
func CreateCorpusTables(pool *sqlitex.Pool) error {
	return CreateSchemas(pool, CorpusSchema)
}
