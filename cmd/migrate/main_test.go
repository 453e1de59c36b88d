package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMigration = `-- +migrate Up
CREATE TABLE pins (id TEXT PRIMARY KEY);

-- +migrate Down
DROP TABLE pins;
`

func TestExtractSection(t *testing.T) {
	up := extractSection(sampleMigration, "Up")
	assert.Contains(t, up, "CREATE TABLE pins")
	assert.NotContains(t, up, "DROP TABLE")

	down := extractSection(sampleMigration, "Down")
	assert.Contains(t, down, "DROP TABLE pins")
	assert.NotContains(t, down, "CREATE TABLE")
}

func TestRun_AppliesPendingMigrations(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "001_init.sql")
	require.NoError(t, os.WriteFile(file, []byte(sampleMigration), 0o644))

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM schema_migrations WHERE version = \$1\)`).
		WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`CREATE TABLE pins`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations \(version\) VALUES \(\$1\)`).
		WithArgs("001_init.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, run(db, "up", dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_SkipsAppliedMigrations(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "001_init.sql")
	require.NoError(t, os.WriteFile(file, []byte(sampleMigration), 0o644))

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM schema_migrations WHERE version = \$1\)`).
		WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	require.NoError(t, run(db, "up", dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_UnknownMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS schema_migrations`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.Error(t, run(db, "sideways", t.TempDir()))
}
