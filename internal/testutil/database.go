package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"mesero/internal/infrastructure/sqldb"
)

// SetupTestDB abre una base SQLite en memoria con el esquema aplicado.
// Una sola conexion para que :memory: no se fragmente entre conexiones.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := sqldb.Bootstrap(db, sqldb.DriverSQLite); err != nil {
		t.Fatalf("failed to bootstrap schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SetupMySQLTestDB conecta a una BD MySQL local 'mesero_test'; se salta el
// test si no esta disponible.
func SetupMySQLTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "root:@tcp(localhost:3306)/mesero_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	if err := sqldb.Bootstrap(db, sqldb.DriverMySQL); err != nil {
		t.Fatalf("failed to bootstrap schema: %v", err)
	}

	t.Cleanup(func() {
		CleanupTestDB(t, db)
		db.Close()
	})

	return db
}

// CleanupTestDB limpia las tablas de prueba.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	tables := []string{"order_items", "orders", "menu_items"}
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
