package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const tradeColumns = `trade_id, instrument, units, entry_price, exit_price, open_time, close_time, realized_pl, strategy, reason, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

// GetTrade returns a single trade record by ID.
func (s *SQLStore) GetTrade(ctx context.Context, tradeID string) (TradeRecord, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`), tradeID)

	rec, err := s.scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TradeRecord{}, fmt.Errorf("trade %q: %w", tradeID, ErrTradeNotFound)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTrades returns every trade ordered by open_time.
func (s *SQLStore) ListTrades(ctx context.Context) ([]TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		ORDER BY open_time ASC, trade_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	return s.collect(rows)
}

// ListTradesOpenedBetween returns trades whose open_time is within [start, end).
// Times are stored in UTC so the text comparison SQLite does stays ordered.
func (s *SQLStore) ListTradesOpenedBetween(ctx context.Context, start, end time.Time) ([]TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT `+tradeColumns+`
		FROM trades
		WHERE open_time >= ? AND open_time < ?
		ORDER BY open_time ASC, trade_id ASC`), start.UTC(), end.UTC())
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	return s.collect(rows)
}

func (s *SQLStore) DeleteTrade(ctx context.Context, tradeID string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM trades WHERE trade_id = ?`), tradeID)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", tradeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", tradeID, err)
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, ErrTradeNotFound)
	}
	return nil
}

func (s *SQLStore) collect(rows *sql.Rows) ([]TradeRecord, error) {
	defer rows.Close()

	out := []TradeRecord{}
	for rows.Next() {
		rec, err := s.scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) scanTrade(row rowScanner) (TradeRecord, error) {
	var (
		rec         TradeRecord
		open, close looseTime
		pl          decimal.NullDecimal
	)

	err := row.Scan(
		&rec.TradeID,
		&rec.Instrument,
		&rec.Units,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&open,
		&close,
		&pl,
		&rec.Strategy,
		&rec.Reason,
		&rec.Notes,
	)
	if err != nil {
		return TradeRecord{}, err
	}

	if open.t == nil {
		return TradeRecord{}, fmt.Errorf("trade %s: invalid open_time %q", rec.TradeID, open.raw)
	}
	rec.OpenTime = *open.t

	if close.malformed {
		// The trade still counts everywhere except holding-time stats.
		s.log.Warn("ignoring malformed close_time",
			zap.String("trade_id", rec.TradeID),
			zap.String("close_time", close.raw),
		)
	}
	rec.CloseTime = close.t

	if pl.Valid {
		v := pl.Decimal
		rec.RealizedPL = &v
	}
	return rec, nil
}
