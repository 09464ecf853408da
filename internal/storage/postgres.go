package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
)

// PostgresReader implements ItemReader against a mission_items table:
//
//	mission_items(storage_id text, idx int, command int, lat double precision,
//	  lon double precision, alt double precision, alt_relative boolean,
//	  accept_radius double precision, loiter_radius double precision,
//	  param0..param6 double precision)
type PostgresReader struct {
	db        *sql.DB
	storageID string
	count     int
}

// NewPostgresReader opens a reader bound to one storage_id and caches the
// row count for Count(), matching the read-only contract the validators
// rely on: item content for a given (storage_id, index) never changes
// across the lifetime of one reader.
func NewPostgresReader(ctx context.Context, db *sql.DB, storageID string) (*PostgresReader, error) {
	r := &PostgresReader{db: db, storageID: storageID}

	row := db.QueryRowContext(ctx, `SELECT count(*) FROM mission_items WHERE storage_id = $1`, storageID)
	if err := row.Scan(&r.count); err != nil {
		return nil, fmt.Errorf("mission storage: count query failed: %w", err)
	}
	return r, nil
}

func (r *PostgresReader) Count() int {
	return r.count
}

func (r *PostgresReader) ReadItem(ctx context.Context, index int) (mission.Item, error) {
	const q = `SELECT command, lat, lon, alt, alt_relative, accept_radius, loiter_radius,
		param0, param1, param2, param3, param4, param5, param6
		FROM mission_items WHERE storage_id = $1 AND idx = $2`

	var it mission.Item
	var cmd int
	row := r.db.QueryRowContext(ctx, q, r.storageID, index)
	err := row.Scan(&cmd, &it.Lat, &it.Lon, &it.Alt, &it.AltRelative, &it.AcceptRadius,
		&it.LoiterRadius, &it.Param[0], &it.Param[1], &it.Param[2], &it.Param[3],
		&it.Param[4], &it.Param[5], &it.Param[6])
	if err != nil {
		return mission.Item{}, fmt.Errorf("%w: storage_id=%s index=%d: %v", ErrReadFailed, r.storageID, index, err)
	}
	it.Command = mission.Command(cmd)
	return it, nil
}
