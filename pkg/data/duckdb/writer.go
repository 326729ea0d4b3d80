package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/peter-kozarec/replay/pkg/engine"
)

const (
	createTradeLogTable = `CREATE TABLE IF NOT EXISTS trade_log (
		run_id VARCHAR,
		ts TIMESTAMP,
		kind VARCHAR,
		order_id BIGINT,
		side VARCHAR,
		qty VARCHAR,
		price VARCHAR,
		fee VARCHAR,
		liquidity VARCHAR,
		cash_after VARCHAR,
		reason VARCHAR
	)`
	createEquityTable = `CREATE TABLE IF NOT EXISTS equity_series (
		run_id VARCHAR,
		ts TIMESTAMP,
		equity VARCHAR,
		cash VARCHAR,
		pos_qty VARCHAR,
		avg_price VARCHAR
	)`
)

// Writer persists run results so sessions can be compared with plain SQL.
// Decimal values are stored as text to keep them exact.
type Writer struct {
	db *sql.DB
}

func NewWriter(dataSourceName string) (*Writer, error) {
	db, err := sql.Open("duckdb", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("unable to open duckdb %q: %w", dataSourceName, err)
	}
	for _, stmt := range []string{createTradeLogTable, createEquityTable} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("unable to create table: %w", err)
		}
	}
	return &Writer{db: db}, nil
}

func (w *Writer) Close() {
	_ = w.db.Close()
}

func (w *Writer) StoreResult(ctx context.Context, runId string, res engine.Result) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unable to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, entry := range res.TradeLog {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO trade_log VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runId, entry.TimeStamp, entry.Kind.String(), entry.OrderId, entry.Side,
			entry.Qty.String(), entry.Price.String(), entry.Fee.String(),
			entry.Liquidity, entry.CashAfter.String(), entry.Reason)
		if err != nil {
			return fmt.Errorf("unable to insert trade log entry: %w", err)
		}
	}

	for _, point := range res.EquitySeries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO equity_series VALUES (?, ?, ?, ?, ?, ?)`,
			runId, point.TimeStamp, point.Equity.String(), point.Cash.String(),
			point.PosQty.String(), point.AvgPrice.String())
		if err != nil {
			return fmt.Errorf("unable to insert equity point: %w", err)
		}
	}

	return tx.Commit()
}
