package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var csvHeader = []string{
	"trade_id", "instrument", "units", "entry_price", "exit_price",
	"open_time", "close_time", "realized_pl", "strategy", "reason", "notes",
}

// FieldIssue describes a CSV value that was dropped while reading.
type FieldIssue struct {
	Row   int
	Field string
	Value string
}

func (i FieldIssue) String() string {
	return fmt.Sprintf("row %d: %s %q", i.Row, i.Field, i.Value)
}

// ReadTradesCSV parses trades from r. Columns are matched by header name and
// only open_time is required. An unreadable close_time is dropped (the trade
// is kept as open) and reported in the returned issues; any other bad value
// fails the read.
func ReadTradesCSV(r io.Reader) ([]TradeRecord, []FieldIssue, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []TradeRecord{}, nil, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["open_time"]; !ok {
		return nil, nil, fmt.Errorf("open_time column is required")
	}

	var (
		out    = []TradeRecord{}
		issues []FieldIssue
		row    = 1
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", row, err)
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		t := TradeRecord{
			TradeID:    get("trade_id"),
			Instrument: get("instrument"),
			Strategy:   get("strategy"),
			Reason:     get("reason"),
			Notes:      get("notes"),
		}

		for _, fld := range []struct {
			name string
			dst  *float64
		}{
			{"units", &t.Units},
			{"entry_price", &t.EntryPrice},
			{"exit_price", &t.ExitPrice},
		} {
			v := get(fld.name)
			if v == "" {
				continue
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: %s: %w", row, fld.name, err)
			}
			*fld.dst = x
		}

		open, err := ParseTime(get("open_time"))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: open_time: %w", row, err)
		}
		t.OpenTime = open

		if v := get("close_time"); v != "" {
			if ct, err := ParseTime(v); err == nil {
				t.CloseTime = &ct
			} else {
				issues = append(issues, FieldIssue{Row: row, Field: "close_time", Value: v})
			}
		}

		if v := get("realized_pl"); v != "" {
			pl, err := decimal.NewFromString(v)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d: realized_pl: %w", row, err)
			}
			t.RealizedPL = &pl
		}

		out = append(out, t)
	}
	return out, issues, nil
}

// WriteTradesCSV writes trades with a header row.
func WriteTradesCSV(w io.Writer, trades []TradeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range trades {
		if err := cw.Write(csvRow(t)); err != nil {
			return fmt.Errorf("write trade %s: %w", t.TradeID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(t TradeRecord) []string {
	closeTime := ""
	if t.CloseTime != nil {
		closeTime = t.CloseTime.Format(time.RFC3339Nano)
	}
	pl := ""
	if t.RealizedPL != nil {
		pl = t.RealizedPL.String()
	}
	return []string{
		t.TradeID,
		t.Instrument,
		f(t.Units),
		f(t.EntryPrice),
		f(t.ExitPrice),
		t.OpenTime.Format(time.RFC3339Nano),
		closeTime,
		pl,
		t.Strategy,
		t.Reason,
		t.Notes,
	}
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// CSVStore keeps the journal in a single CSV file. It suits small personal
// journals; every query reads the whole file.
type CSVStore struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewCSVStore(path string, log *zap.Logger) (*CSVStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CSVStore{path: path, log: log}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.write(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat journal: %w", err)
	}
	return s, nil
}

func (s *CSVStore) RecordTrade(ctx context.Context, t TradeRecord) error {
	if t.TradeID == "" {
		return fmt.Errorf("trade_id is required")
	}
	if t.OpenTime.IsZero() {
		return fmt.Errorf("trade %s: open_time is required", t.TradeID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	trades, err := s.read()
	if err != nil {
		return err
	}
	for _, existing := range trades {
		if existing.TradeID == t.TradeID {
			return fmt.Errorf("trade %s already recorded", t.TradeID)
		}
	}

	fh, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer fh.Close()

	cw := csv.NewWriter(fh)
	if err := cw.Write(csvRow(t)); err != nil {
		return fmt.Errorf("write trade %s: %w", t.TradeID, err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *CSVStore) GetTrade(ctx context.Context, tradeID string) (TradeRecord, error) {
	trades, err := s.ListTrades(ctx)
	if err != nil {
		return TradeRecord{}, err
	}
	for _, t := range trades {
		if t.TradeID == tradeID {
			return t, nil
		}
	}
	return TradeRecord{}, fmt.Errorf("trade %q: %w", tradeID, ErrTradeNotFound)
}

// ListTrades returns every trade ordered by open time.
func (s *CSVStore) ListTrades(ctx context.Context) ([]TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades, err := s.read()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].OpenTime.Before(trades[j].OpenTime)
	})
	return trades, nil
}

// ListTradesOpenedBetween returns trades whose open time is within [start, end).
func (s *CSVStore) ListTradesOpenedBetween(ctx context.Context, start, end time.Time) ([]TradeRecord, error) {
	trades, err := s.ListTrades(ctx)
	if err != nil {
		return nil, err
	}
	out := []TradeRecord{}
	for _, t := range trades {
		if !t.OpenTime.Before(start) && t.OpenTime.Before(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *CSVStore) DeleteTrade(ctx context.Context, tradeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades, err := s.read()
	if err != nil {
		return err
	}
	kept := trades[:0]
	for _, t := range trades {
		if t.TradeID != tradeID {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(trades) {
		return fmt.Errorf("trade %q: %w", tradeID, ErrTradeNotFound)
	}
	return s.write(kept)
}

func (s *CSVStore) Close() error {
	return nil
}

func (s *CSVStore) read() ([]TradeRecord, error) {
	fh, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer fh.Close()

	trades, issues, err := ReadTradesCSV(fh)
	if err != nil {
		return nil, fmt.Errorf("read journal %s: %w", s.path, err)
	}
	for _, is := range issues {
		s.log.Warn("ignoring malformed value",
			zap.String("path", s.path),
			zap.Int("row", is.Row),
			zap.String("field", is.Field),
			zap.String("value", is.Value),
		)
	}
	return trades, nil
}

func (s *CSVStore) write(trades []TradeRecord) error {
	tmp := s.path + ".tmp"
	fh, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if err := WriteTradesCSV(fh, trades); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	return os.Rename(tmp, s.path)
}
