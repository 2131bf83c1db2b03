package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/user/todoquest-go/apperror"
)

// MigrationFS holds the versioned SQL migrations (NNNNNN_name.up.sql / .down.sql).
//
//go:embed migrations/*.sql
var MigrationFS embed.FS

// Migration directions accepted by RunMigrations.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// RunMigrations applies the embedded migrations against dsn in the given direction.
// Already being at the target version is not an error.
func RunMigrations(dsn, direction string) error {
	if dsn == "" {
		return apperror.NewConfigError("database DSN is empty", nil)
	}
	if direction != DirectionUp && direction != DirectionDown {
		return apperror.NewBadRequestError(fmt.Sprintf("direction must be up or down, got %q", direction), nil)
	}

	sourceDriver, err := iofs.New(MigrationFS, "migrations")
	if err != nil {
		return apperror.NewMigrationError("failed to open migration source", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, dsn)
	if err != nil {
		return apperror.NewMigrationError("failed to create migrator", err)
	}
	defer func() { _, _ = m.Close() }()

	if direction == DirectionUp {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError(fmt.Sprintf("failed to run migrations %s", direction), err)
	}
	return nil
}
