// Package store keeps a local SQLite copy of the city records for offline queries.
package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/cities-cli/internal/geonames"
)

// SQLiteStore holds city records in a modernc.org/sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS cities (
	geoname_id        TEXT,
	name              TEXT,
	ascii_name        TEXT,
	alternate_names   TEXT,
	latitude          REAL,
	longitude         REAL,
	feature_class     TEXT,
	feature_code      TEXT,
	country_code      TEXT,
	cc2               TEXT,
	admin1_code       TEXT,
	admin2_code       TEXT,
	admin3_code       TEXT,
	admin4_code       TEXT,
	population        TEXT,
	elevation         TEXT,
	dem               TEXT,
	timezone          TEXT,
	modification_date TEXT
);

CREATE TABLE IF NOT EXISTS export_log (
	run_id      TEXT NOT NULL,
	rows_loaded INTEGER NOT NULL,
	exported_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// Migrate creates the tables if they do not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReplaceCities swaps the cities table contents for records and logs the
// export under runID. Either every row lands or none do.
func (s *SQLiteStore) ReplaceCities(ctx context.Context, runID string, records []geonames.Record) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin replace")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM cities"); err != nil {
		return 0, eris.Wrap(err, "sqlite: clear cities")
	}

	cols := geonames.SQLColumnNames()
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO cities ("+strings.Join(cols, ", ")+") VALUES ("+placeholders+")")
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert")
	}
	defer stmt.Close() //nolint:errcheck

	var n int64
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Values()...); err != nil {
			return n, eris.Wrapf(err, "sqlite: insert row %d", n)
		}
		n++
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO export_log (run_id, rows_loaded) VALUES (?, ?)", runID, n,
	); err != nil {
		return 0, eris.Wrap(err, "sqlite: record export")
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit replace")
	}

	zap.L().Info("sqlite: cities replaced",
		zap.String("component", "store.sqlite"),
		zap.String("run_id", runID),
		zap.Int64("rows", n),
	)
	return n, nil
}

// CountCities returns the number of stored city rows.
func (s *SQLiteStore) CountCities(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cities").Scan(&n); err != nil {
		return 0, eris.Wrap(err, "sqlite: count cities")
	}
	return n, nil
}

// LastExport returns the run ID and row count of the most recent export.
// ok is false when nothing has been exported yet.
func (s *SQLiteStore) LastExport(ctx context.Context) (runID string, rows int64, ok bool, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT run_id, rows_loaded FROM export_log ORDER BY rowid DESC LIMIT 1",
	).Scan(&runID, &rows)
	if eris.Is(err, sql.ErrNoRows) {
		return "", 0, false, nil
	}
	if err != nil {
		return "", 0, false, eris.Wrap(err, "sqlite: last export")
	}
	return runID, rows, true, nil
}
