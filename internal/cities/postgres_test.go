package cities

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"

	"github.com/sells-group/cities-cli/internal/geonames"
)

func mogadishuRecords() []geonames.Record {
	return geonames.MapRows([][]string{strings.Split(mogadishuRow, "\t")})
}

func TestEncodeLocation_Point(t *testing.T) {
	rec := mogadishuRecords()[0]

	data, err := EncodeLocation(rec)
	require.NoError(t, err)
	require.NotNil(t, data)

	g, err := ewkb.Unmarshal(data)
	require.NoError(t, err)
	pt, ok := g.(*geom.Point)
	require.True(t, ok)
	assert.Equal(t, 4326, pt.SRID())
	assert.InDelta(t, 45.34375, pt.X(), 1e-9)
	assert.InDelta(t, 2.03711, pt.Y(), 1e-9)
}

func TestEncodeLocation_InvalidCoordinate(t *testing.T) {
	rec := geonames.MapRow([]string{"1", "Nowhere", "Nowhere", "", "abc", "10"})

	data, err := EncodeLocation(rec)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestPGRows_NullsInvalidCoordinates(t *testing.T) {
	recs := []geonames.Record{geonames.MapRow([]string{"1", "X", "X", "", "1.5", "north"})}

	rows, err := pgRows(recs)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], geonames.NumColumns+1)

	assert.Equal(t, 1.5, rows[0][geonames.ColLatitude])
	assert.Nil(t, rows[0][geonames.ColLongitude])
	assert.Nil(t, rows[0][geonames.NumColumns])
	assert.Nil(t, rows[0][geonames.ColCC2])
	assert.Equal(t, "X", rows[0][geonames.ColName])
}

func TestLoadPostgres_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE").WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"geonames", "cities"}, pgColumns()).WillReturnResult(1)
	mock.ExpectExec("INSERT INTO geonames.load_log").
		WithArgs("run-1", int64(1)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	n, err := LoadPostgres(context.Background(), mock, mogadishuRecords(), "run-1", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadPostgres_CopyErrorRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("TRUNCATE").WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"geonames", "cities"}, pgColumns()).
		WillReturnError(fmt.Errorf("relation does not exist"))
	mock.ExpectRollback()

	_, err = LoadPostgres(context.Background(), mock, mogadishuRecords(), "run-1", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cities: copy records")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadPostgres_BeginError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin().WillReturnError(fmt.Errorf("too many connections"))

	_, err = LoadPostgres(context.Background(), mock, mogadishuRecords(), "run-1", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cities: begin load")
	assert.NoError(t, mock.ExpectationsWereMet())
}
