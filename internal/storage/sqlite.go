package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/phuslu/log"
	"github.com/pkg/errors"

	"stockRisk/internal/finance"
)

const dateLayout = "2006-01-02"

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	Close() error
}

// Store keeps fetched daily closes so later runs can be repeated offline.
type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(ctx context.Context, db DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS prices(
		symbol TEXT NOT NULL, date TEXT NOT NULL, adj_close REAL NOT NULL,
		PRIMARY KEY(symbol, date)
	)`)
	return errors.Wrap(err, "create prices table")
}

func NewStore(db DB) *Store { return &Store{db: db} }

func (s *Store) Name() string { return "sqlite" }

// SavePrices upserts every point of the series under its symbol.
func (s *Store) SavePrices(ctx context.Context, series finance.TimeSeries) error {
	symbol := strings.ToUpper(series.Symbol)
	if symbol == "" {
		return errors.New("series has no symbol")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO prices(symbol,date,adj_close) VALUES(?,?,?)
		ON CONFLICT(symbol,date) DO UPDATE SET adj_close=excluded.adj_close`)
	if err != nil {
		return errors.Wrap(err, "prepare upsert")
	}
	defer stmt.Close()
	for _, p := range series.Points() {
		if _, err := stmt.ExecContext(ctx, symbol, p.Date.Format(dateLayout), p.Value); err != nil {
			return errors.Wrapf(err, "save %s %s", symbol, p.Date.Format(dateLayout))
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	log.Debug().Str("symbol", symbol).Int("points", series.Len()).Msg("sqlite: prices saved")
	return nil
}

// FetchPrices returns the stored closes for dates in [start, end).
func (s *Store) FetchPrices(ctx context.Context, symbol string, start, end time.Time) (finance.TimeSeries, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, adj_close FROM prices WHERE symbol=? AND date>=? AND date<? ORDER BY date ASC`,
		symbol, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return finance.TimeSeries{}, errors.Wrap(err, "query prices")
	}
	defer rows.Close()
	var points []finance.Point
	for rows.Next() {
		var d string
		var v float64
		if err := rows.Scan(&d, &v); err != nil {
			return finance.TimeSeries{}, errors.Wrap(err, "scan price")
		}
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return finance.TimeSeries{}, errors.Wrapf(err, "bad stored date %q", d)
		}
		points = append(points, finance.Point{Date: t, Value: v})
	}
	if err := rows.Err(); err != nil {
		return finance.TimeSeries{}, errors.Wrap(err, "read prices")
	}
	if len(points) == 0 {
		return finance.TimeSeries{}, errors.Wrapf(finance.ErrNoData, "%s between %s and %s in store",
			symbol, start.Format(dateLayout), end.Format(dateLayout))
	}
	return finance.NewTimeSeries(symbol, points), nil
}
