package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Dialect names the database/sql driver a SQLStore talks to.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// SQLStore persists trades in SQLite or Postgres.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	log     *zap.Logger
}

func NewSQLite(path string, log *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open(string(DialectSQLite), path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return NewSQLStore(db, DialectSQLite, log)
}

func NewPostgres(dsn string, log *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open(string(DialectPostgres), dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewSQLStore(db, DialectPostgres, log)
}

// NewSQLStore wraps an already opened handle and makes sure the schema exists.
// The store owns db from here on and closes it on failure.
func NewSQLStore(db *sql.DB, dialect Dialect, log *zap.Logger) (*SQLStore, error) {
	if log == nil {
		log = zap.NewNop()
	}

	schema := SQLiteSchema
	if dialect == DialectPostgres {
		schema = PostgresSchema
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLStore{db: db, dialect: dialect, log: log}, nil
}

func (s *SQLStore) RecordTrade(ctx context.Context, t TradeRecord) error {
	if t.TradeID == "" {
		return fmt.Errorf("trade_id is required")
	}
	if t.OpenTime.IsZero() {
		return fmt.Errorf("trade %s: open_time is required", t.TradeID)
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO trades
		(trade_id, instrument, units, entry_price, exit_price, open_time, close_time, realized_pl, strategy, reason, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		t.TradeID, t.Instrument, t.Units, t.EntryPrice, t.ExitPrice,
		t.OpenTime.UTC(), nullTime(t), nullPL(t), t.Strategy, t.Reason, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert trade %s: %w", t.TradeID, err)
	}

	s.log.Debug("trade recorded",
		zap.String("trade_id", t.TradeID),
		zap.String("instrument", t.Instrument),
		zap.String("strategy", t.Strategy),
	)
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders into $n for Postgres.
func (s *SQLStore) rebind(q string) string {
	if s.dialect != DialectPostgres {
		return q
	}

	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nullTime(t TradeRecord) sql.NullTime {
	if t.CloseTime == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.CloseTime.UTC(), Valid: true}
}

func nullPL(t TradeRecord) decimal.NullDecimal {
	if t.RealizedPL == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *t.RealizedPL, Valid: true}
}
