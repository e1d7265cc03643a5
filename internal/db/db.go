// Package db provides sqlite persistence for planning jobs. Each
// completed planning run is stored as a trajectory record keyed by a
// UUID, with the geometric payloads serialized as JSON columns. Schema
// changes are managed with golang-migrate against the embedded
// migrations directory.
package db

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// OpenDB opens the database without touching the schema. Use this from
// the migrate CLI, where migrations manage the schema explicitly.
func OpenDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &DB{sqlDB}, nil
}

// NewDB opens the database and brings the schema up to date by running
// any pending embedded migrations.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(MigrationsFS()); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
