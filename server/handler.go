package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/id"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/report"
)

// Handler serves the journal and its analytics over HTTP. Every analytics
// request reloads the trades and recomputes from scratch.
type Handler struct {
	Store         journal.Store
	Calendar      analytics.Calendar
	DefaultPeriod analytics.Period
	TopStrategies int
	Logger        *zap.Logger

	// Now is the reference time for periods; nil means time.Now.
	Now func() time.Time
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)

	group := r.Group("/api/v1")
	group.GET("/trades", h.listTrades)
	group.POST("/trades", h.createTrade)
	group.GET("/trades/:id", h.getTrade)
	group.DELETE("/trades/:id", h.deleteTrade)

	an := group.Group("/analytics")
	an.GET("/summary", h.summary)
	an.GET("/equity", h.equity)
	an.GET("/distribution", h.distribution)
	an.GET("/weekdays", h.weekdays)
	an.GET("/strategies", h.strategies)
	an.GET("/report", h.fullReport)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Handler) period(c *gin.Context) analytics.Period {
	if p := strings.TrimSpace(c.Query("period")); p != "" {
		return analytics.ParsePeriod(p)
	}
	return analytics.ParsePeriod(string(h.DefaultPeriod))
}

func (h *Handler) listTrades(c *gin.Context) {
	trades, err := h.Store.ListTrades(c.Request.Context())
	if err != nil {
		h.log().Error("list trades failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "list trades failed", nil)
		return
	}

	p := h.period(c)
	trades = analytics.SelectPeriod(trades, p, h.now(), h.Calendar)
	Ok(c, trades, map[string]any{"period": p, "count": len(trades)})
}

func (h *Handler) getTrade(c *gin.Context) {
	t, err := h.Store.GetTrade(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, "get trade", err)
		return
	}
	Ok(c, t, nil)
}

func (h *Handler) deleteTrade(c *gin.Context) {
	if err := h.Store.DeleteTrade(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, "delete trade", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type tradeInput struct {
	TradeID    string           `json:"trade_id"`
	Instrument string           `json:"instrument" binding:"required"`
	Units      float64          `json:"units"`
	EntryPrice float64          `json:"entry_price"`
	ExitPrice  float64          `json:"exit_price"`
	OpenTime   time.Time        `json:"open_time" binding:"required"`
	CloseTime  *time.Time       `json:"close_time"`
	RealizedPL *decimal.Decimal `json:"realized_pl"`
	Strategy   string           `json:"strategy"`
	Reason     string           `json:"reason"`
	Notes      string           `json:"notes"`
}

func (h *Handler) createTrade(c *gin.Context) {
	var in tradeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		Error(c, http.StatusBadRequest, "invalid trade", map[string]any{"error": err.Error()})
		return
	}
	if in.TradeID == "" {
		tid, err := id.NewAt(in.OpenTime)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid trade", map[string]any{"error": err.Error()})
			return
		}
		in.TradeID = tid
	}

	t := journal.TradeRecord(in)
	if err := h.Store.RecordTrade(c.Request.Context(), t); err != nil {
		h.log().Warn("record trade failed", zap.String("trade_id", t.TradeID), zap.Error(err))
		Error(c, http.StatusUnprocessableEntity, "record trade failed", map[string]any{"error": err.Error()})
		return
	}
	Created(c, t)
}

func (h *Handler) storeError(c *gin.Context, op string, err error) {
	if errors.Is(err, journal.ErrTradeNotFound) {
		Error(c, http.StatusNotFound, "trade not found", map[string]any{"id": c.Param("id")})
		return
	}
	h.log().Error(op+" failed", zap.String("id", c.Param("id")), zap.Error(err))
	Error(c, http.StatusInternalServerError, op+" failed", nil)
}

// build loads every trade and computes the report for the requested period.
func (h *Handler) build(c *gin.Context) (report.Report, bool) {
	trades, err := h.Store.ListTrades(c.Request.Context())
	if err != nil {
		h.log().Error("load trades failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "load trades failed", nil)
		return report.Report{}, false
	}

	r := report.Build(trades, report.Options{
		Period:        h.period(c),
		Now:           h.now(),
		Calendar:      h.Calendar,
		TopStrategies: h.TopStrategies,
	})
	return r, true
}

func meta(r report.Report) map[string]any {
	m := map[string]any{
		"period":   r.Period,
		"timezone": r.Timezone,
		"trades":   r.Summary.TotalTrades,
	}
	if r.Start != nil && r.End != nil {
		m["start"] = r.Start
		m["end"] = r.End
	}
	return m
}

func (h *Handler) summary(c *gin.Context) {
	if r, ok := h.build(c); ok {
		Ok(c, r.Summary, meta(r))
	}
}

func (h *Handler) equity(c *gin.Context) {
	if r, ok := h.build(c); ok {
		Ok(c, r.Equity, meta(r))
	}
}

func (h *Handler) distribution(c *gin.Context) {
	if r, ok := h.build(c); ok {
		Ok(c, r.Distribution, meta(r))
	}
}

func (h *Handler) weekdays(c *gin.Context) {
	if r, ok := h.build(c); ok {
		Ok(c, r.Weekdays, meta(r))
	}
}

func (h *Handler) strategies(c *gin.Context) {
	if r, ok := h.build(c); ok {
		Ok(c, r.Strategies, meta(r))
	}
}

func (h *Handler) fullReport(c *gin.Context) {
	if r, ok := h.build(c); ok {
		Ok(c, r, meta(r))
	}
}
