package export

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/openharvest/partnermap/internal/bundle"
)

//go:embed schema.sql
var schemaSQL string

// Catalog is the SQLite partner catalog export. It is a flat-file
// artifact for downstream reuse, not a live store: CreateCatalog
// removes any existing file and rebuilds the schema.
type Catalog struct {
	db *sql.DB
}

// CreateCatalog creates a fresh catalog database at the given path.
func CreateCatalog(path string) (*Catalog, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing previous catalog: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// InsertPartners writes all partners in one transaction, preserving
// input order via the autoincrement id.
func (c *Catalog) InsertPartners(ctx context.Context, partners []bundle.Styled) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO partners
		(name, address, address2, city, state, zip5, type, dates, days, hours, link, notes, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range partners {
		_, err := stmt.ExecContext(ctx,
			p.Name, p.Address, p.Address2, p.City, p.State, p.Zip5,
			p.Category.String(), p.Dates, p.Days, p.Hours, p.Link, p.Notes,
			p.Lat, p.Lon,
		)
		if err != nil {
			return fmt.Errorf("insert partner %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of catalog rows.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM partners`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count partners: %w", err)
	}
	return n, nil
}

// WriteSQLite writes the full catalog export in one call.
func WriteSQLite(ctx context.Context, path string, partners []bundle.Styled) error {
	catalog, err := CreateCatalog(path)
	if err != nil {
		return err
	}
	if err := catalog.InsertPartners(ctx, partners); err != nil {
		catalog.Close()
		return err
	}
	return catalog.Close()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
