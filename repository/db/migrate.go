package db

import (
	"errors"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migration applies all pending migrations from migratePath to the
// database at dbDSN.
func Migration(dbDSN, migratePath string) error {
	if dbDSN == "" {
		return errors.New("empty database connection string")
	}
	if migratePath == "" {
		return errors.New("empty migration path")
	}

	m, err := migrate.New("file://"+migratePath, dbDSN)
	if err != nil {
		log.Println("[ERROR] failed to initialize migrations:", err)
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Println("[ERROR] failed to apply migrations:", err)
		return err
	}
	return nil
}
