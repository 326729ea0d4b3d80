package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/peter-kozarec/replay/pkg/common"
	"github.com/peter-kozarec/replay/pkg/utility/fixed"
)

const readerComponentName = "data.duckdb.reader"

// Reader streams quote history out of a duckdb file. Each symbol lives in
// its own <symbol>_ticks table with columns ts, bid, ask, bid_volume and
// ask_volume.
type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open duckdb %q: %w", r.dataSourceName, err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	if r.db != nil {
		_ = r.db.Close()
	}
}

func (r *Reader) LoadTicks(ctx context.Context, symbol string, from, to time.Time, handler func(tick common.Tick) error) error {
	query := fmt.Sprintf(`SELECT ts, bid, ask, bid_volume, ask_volume FROM %s_ticks WHERE ts BETWEEN ? AND ? ORDER BY ts`, symbol)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("unable to query ticks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			ts                time.Time
			bid, ask          float64
			bidVolume, askVol float64
		)
		if err := rows.Scan(&ts, &bid, &ask, &bidVolume, &askVol); err != nil {
			return fmt.Errorf("unable to scan row: %w", err)
		}

		tick := common.Tick{
			Source:    readerComponentName,
			Symbol:    symbol,
			TimeStamp: ts.UTC(),
			Bid:       fixed.FromFloat64(bid),
			Ask:       fixed.FromFloat64(ask),
			BidVolume: fixed.FromFloat64(bidVolume),
			AskVolume: fixed.FromFloat64(askVol),
		}
		if err := handler(tick); err != nil {
			return fmt.Errorf("unable to process tick: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("unable to scan rows: %w", err)
	}

	return nil
}
