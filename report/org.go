package report

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

var orgFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"pct":   func(x float64) string { return fmt.Sprintf("%.2f", x) },
	"stamp": func(t time.Time) string { return t.Format("2006-01-02 Mon 15:04") },
	"span":  rangeText,
}

var orgTemplate = template.Must(template.New("report").Funcs(orgFuncs).Parse(OrgTemplate))

// WriteOrg renders the report as an Org-mode subtree.
func WriteOrg(w io.Writer, r Report) error {
	if err := orgTemplate.Execute(w, r); err != nil {
		return fmt.Errorf("render org report: %w", err)
	}
	return nil
}

const OrgTemplate = `* PERFORMANCE: {{.Period}} {{span .}}
:PROPERTIES:
:PERIOD:        {{.Period}}
:TIMEZONE:      {{.Timezone}}
:TRADES:        {{.Summary.TotalTrades}}
:WINS:          {{.Summary.ProfitableTrades}}
:LOSSES:        {{.Summary.LosingTrades}}
:BREAKEVEN:     {{.Summary.BreakEvenTrades}}
:WIN_RATE:      {{pct .Summary.WinRate}}
:PROFIT_FAC:    {{.Summary.ProfitFactor}}
:NET_PL:        {{money .Summary.NetPnL}}
:MAX_DD:        {{money .Summary.MaxDrawdown}}
:CREATED:       [{{stamp .Generated}}]
:END:

** Performance Summary
- Net P/L:          *{{money .Summary.NetPnL}}*
- Win Rate:         *{{pct .Summary.WinRate}}%*
- Profit Factor:    *{{.Summary.ProfitFactor}}*
- Expectancy:       *{{money .Summary.ExpectedValue}}*
- Avg Win / Loss:   *{{money .Summary.AvgWin}}* / *{{money .Summary.AvgLoss}}*
- Daily P/L:        *{{money .Summary.NetDailyPnL}}* over {{.Summary.TradingDays}} days
- Avg Hold:         *{{printf "%.1f" .Summary.AvgTradeTimeMinutes}} min*

** Trade Distribution
| Outcome    | Count |
|------------+-------|
| Wins       | {{.Summary.ProfitableTrades}} |
| Losses     | {{.Summary.LosingTrades}} |
| Break-even | {{.Summary.BreakEvenTrades}} |
| Total      | {{.Summary.TotalTrades}} |

{{- if .Weekdays }}

** By Weekday
| Day | Trades | P/L |
|-----+--------+-----|
{{- range .Weekdays }}
| {{.Day}} | {{.Count}} | {{money .PnL}} |
{{- end }}
{{- end }}

{{- if .Strategies }}

** Strategies
| Strategy | Trades | Wins | Losses | Win % | P/L |
|----------+--------+------+--------+-------+-----|
{{- range .Strategies }}
| {{.Name}} | {{.Trades}} | {{.Wins}} | {{.Losses}} | {{pct .WinRate}} | {{money .PnL}} |
{{- end }}
{{- end }}

{{- if .Distribution }}

** P/L Histogram
| Range | Count |
|-------+-------|
{{- range .Distribution }}
| {{.Label}} | {{.Count}} |
{{- end }}
{{- end }}
`
