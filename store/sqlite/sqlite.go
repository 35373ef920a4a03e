// Package sqlite provides a Store backed by an SQLite database, useful when
// several consumers or accounts share one machine.
package sqlite

import (
	"database/sql"
	"strconv"

	// register sqlite3 for database/sql
	_ "github.com/mattn/go-sqlite3"
)

type Database struct {
	db *sql.DB
}

func Open(path string) (*Database, error) {
	sqlite, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	db := &Database{db: sqlite}

	return db, db.migrate()
}

func (d *Database) migrate() error {
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS token (
			Name      TEXT PRIMARY KEY,
			Token     TEXT,
			Secret    TEXT,
			CreatedAt DATETIME
		);
`)
	if err != nil {
		return err
	}

	version, err := d.schemaVersion()
	if err != nil {
		return err
	}

	stmts := []string{
		`ALTER TABLE token ADD COLUMN Scopes TEXT NOT NULL DEFAULT '';`,
	}

	for _, stmt := range stmts[version:] {
		_, err := d.db.Exec(stmt)
		if err != nil {
			return err
		}
	}

	return d.setSchemaVersion(len(stmts))
}

func (d *Database) schemaVersion() (int, error) {
	row := d.db.QueryRow("PRAGMA user_version")

	var version int
	err := row.Scan(&version)
	return version, err
}

func (d *Database) setSchemaVersion(version int) error {
	_, err := d.db.Exec("PRAGMA user_version = " + strconv.Itoa(version))
	return err
}

func (d *Database) Close() error {
	return d.db.Close()
}
