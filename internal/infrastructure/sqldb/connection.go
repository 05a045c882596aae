// Package sqldb opens the persistent store and keeps its schema current.
// The store handle is constructed once at composition time and passed to
// whatever needs it; there is no process-wide singleton.
package sqldb

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"mesero/internal/config"
)

const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	var dsn string
	switch cfg.Driver {
	case DriverSQLite:
		// _foreign_keys turns the pragma on for every pooled connection,
		// which the order_items cascade depends on.
		dsn = fmt.Sprintf("file:%s?_foreign_keys=on", cfg.Path)
	case DriverMySQL:
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
		)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if err := Bootstrap(db, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Bootstrap applies the embedded schema if the store is fresh or behind.
func Bootstrap(db *sql.DB, driver string) error {
	ver, err := currentSchemaVersion(db, driver)
	if err != nil {
		return fmt.Errorf("checking schema version: %w", err)
	}
	if ver >= schemaVersion {
		return nil
	}

	switch driver {
	case DriverSQLite:
		if _, err := db.Exec(sqliteSchema); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	case DriverMySQL:
		for _, stmt := range mysqlSchema {
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("applying schema: %w", err)
			}
		}
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	if _, err := db.Exec("DELETE FROM schema_meta"); err != nil {
		return fmt.Errorf("resetting schema version: %w", err)
	}
	if _, err := db.Exec("INSERT INTO schema_meta (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}

	return nil
}

func currentSchemaVersion(db *sql.DB, driver string) (int, error) {
	var count int
	var err error
	switch driver {
	case DriverSQLite:
		err = db.QueryRow(`
			SELECT COUNT(*) FROM sqlite_master
			WHERE type='table' AND name='schema_meta'
		`).Scan(&count)
	case DriverMySQL:
		err = db.QueryRow(`
			SELECT COUNT(*) FROM information_schema.tables
			WHERE table_schema = DATABASE() AND table_name = 'schema_meta'
		`).Scan(&count)
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	var ver int
	err = db.QueryRow("SELECT version FROM schema_meta LIMIT 1").Scan(&ver)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return ver, err
}
