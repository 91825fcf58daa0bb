package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesSchema(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	var recordsTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='records'").Scan(&recordsTableName)
	require.NoError(t, err, "Querying for records table should not produce an error")
	assert.Equal(t, "records", recordsTableName, "The 'records' table should be created")

	var indexName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name='idx_records_updated_at'").Scan(&indexName)
	require.NoError(t, err, "Querying for the updated_at index should not produce an error")
	assert.Equal(t, "idx_records_updated_at", indexName)
}
