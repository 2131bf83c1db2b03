package db

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/todoquest-go/apperror"
)

func TestMigrationFS_HasPairedFiles(t *testing.T) {
	entries, err := fs.ReadDir(MigrationFS, "migrations")
	require.NoError(t, err)

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	assert.True(t, names["000001_init.up.sql"])
	assert.True(t, names["000001_init.down.sql"])
}

func TestMigrationFS_SchemaHasUniqueUserName(t *testing.T) {
	b, err := fs.ReadFile(MigrationFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "user_name   VARCHAR(64)  NOT NULL UNIQUE")
	assert.Contains(t, string(b), "REFERENCES users(user_id)")
}

func TestRunMigrations_RejectsBadInput(t *testing.T) {
	err := RunMigrations("", DirectionUp)
	require.Error(t, err)
	ae, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ConfigError, ae.Type)

	err = RunMigrations("postgres://u:p@localhost:5432/x?sslmode=disable", "sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sideways"`)
}
