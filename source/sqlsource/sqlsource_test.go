package sqlsource

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pbanos/grove/source"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectQuery(t *testing.T) {
	q, err := selectQuery("", "$1")
	require.NoError(t, err)
	assert.Equal(t, `SELECT "definition" FROM "definitions" WHERE "id" = $1`, q)

	_, err = selectQuery(`bad"table`, "?")
	assert.Error(t, err)
}

func TestSQLite3(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "definitions.db")
	s, err := NewSQLite3(path, "")
	require.NoError(t, err)
	defer s.Close(ctx)

	db := s.(*sqlSource).db
	_, err = db.Exec(`CREATE TABLE definitions (id TEXT PRIMARY KEY, definition TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO definitions (id, definition) VALUES (?, ?)`, "model/1", `{"status":{"code":5}}`)
	require.NoError(t, err)

	d, err := s.Get(ctx, "model/1")
	require.NoError(t, err)
	assert.Equal(t, `{"status":{"code":5}}`, string(d))

	_, err = s.Get(ctx, "model/2")
	assert.Equal(t, source.ErrNotFound, errors.Cause(err))
}
