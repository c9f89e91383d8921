package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSqliteInMemory(t *testing.T) {
	db, err := OpenSqlite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO t (v) VALUES (1)`)
	require.NoError(t, err)

	var v int
	require.NoError(t, db.Get(&v, `SELECT v FROM t`))
	assert.Equal(t, 1, v)
	assert.Equal(t, DialectSqlite, Dialect(db))
}
