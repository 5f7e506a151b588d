package sqlite

import (
	"errors"

	"github.com/jotmail/jotmail/internal/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

// ApplyMigrations applies any pending database migrations using the
// migration files embedded in the binary.
func (s *Store) ApplyMigrations() error {
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return err
	}

	migrationsFilesystem, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", migrationsFilesystem, "", driver)
	if err != nil {
		return err
	}

	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
