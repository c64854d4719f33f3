package cities

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"go.uber.org/zap"

	"github.com/sells-group/cities-cli/internal/db"
	"github.com/sells-group/cities-cli/internal/geonames"
)

const (
	pgSchema = "geonames"
	pgTable  = "cities"
)

// pgColumns are the COPY target columns: the schema columns plus location.
func pgColumns() []string {
	return append(geonames.SQLColumnNames(), "location")
}

// EncodeLocation returns the record's position as an EWKB point with SRID 4326.
// Records without valid coordinates have no location and yield nil.
func EncodeLocation(r geonames.Record) ([]byte, error) {
	if !r.Latitude.IsValid() || !r.Longitude.IsValid() {
		return nil, nil
	}
	g := geom.NewPointFlat(geom.XY, []float64{r.Longitude.Float64(), r.Latitude.Float64()}).SetSRID(4326)
	data, err := ewkb.Marshal(g, ewkb.NDR)
	if err != nil {
		return nil, eris.Wrap(err, "cities: encode location")
	}
	return data, nil
}

// pgRows converts records into COPY rows with a trailing location column.
func pgRows(records []geonames.Record) ([][]any, error) {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		vals := r.Values()
		loc, err := EncodeLocation(r)
		if err != nil {
			return nil, err
		}
		var location any
		if loc != nil {
			location = loc
		}
		rows = append(rows, append(vals, location))
	}
	return rows, nil
}

// LoadPostgres replaces the contents of geonames.cities with records in a
// single transaction and records the load in geonames.load_log.
func LoadPostgres(ctx context.Context, pool db.Pool, records []geonames.Record, runID string, batchSize int) (int64, error) {
	log := zap.L().With(
		zap.String("component", "cities.postgres"),
		zap.String("run_id", runID),
	)

	rows, err := pgRows(records)
	if err != nil {
		return 0, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, eris.Wrap(err, "cities: begin load")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	truncate := fmt.Sprintf("TRUNCATE %s", pgx.Identifier{pgSchema, pgTable}.Sanitize())
	if _, err := tx.Exec(ctx, truncate); err != nil {
		return 0, eris.Wrap(err, "cities: truncate")
	}

	n, err := db.CopyFromSchema(ctx, tx, pgSchema, pgTable, pgColumns(), rows, batchSize)
	if err != nil {
		return 0, eris.Wrap(err, "cities: copy records")
	}

	if _, err := tx.Exec(ctx,
		"INSERT INTO geonames.load_log (run_id, rows_loaded, loaded_at) VALUES ($1, $2, now())",
		runID, n,
	); err != nil {
		return 0, eris.Wrap(err, "cities: record load")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, eris.Wrap(err, "cities: commit load")
	}

	log.Info("records loaded", zap.Int64("rows", n))
	return n, nil
}
