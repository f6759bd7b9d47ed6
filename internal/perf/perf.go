// Package perf computes the asset performance table of a weekly deck from
// closing price histories.
package perf

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/VantageDataChat/GoDeck/internal/charts"
	"github.com/VantageDataChat/GoDeck/internal/deckspec"
)

// MinCloses is the shortest history an asset needs.
const MinCloses = 5

// Lookbacks in trading days.
const (
	weekBack  = 6
	monthBack = 22
)

const dateLayout = "2006-01-02"

// Signals.
const (
	Bullish = "bullish"
	Bearish = "bearish"
	Neutral = "neutral"
)

// Input is a set of price histories.
type Input struct {
	Assets []Asset `json:"assets"`
	// AsOf is the reference date, "2006-01-02". Defaults to today.
	AsOf string `json:"as_of,omitempty"`
}

// Asset is one closing price history, oldest first. Dates align with
// Closes when given. A nil close is a missing quote.
type Asset struct {
	Name   string     `json:"name"`
	Closes []*float64 `json:"closes"`
	Dates  []string   `json:"dates,omitempty"`
}

// Performance is the computed row for one asset.
type Performance struct {
	Name       string `json:"name"`
	Level      string `json:"level"`
	Change1W   string `json:"change1w"`
	ChangeMTD  string `json:"changeMtd"`
	ChangeYTD  string `json:"changeYtd"`
	Signal     string `json:"signal"`
	Commentary string `json:"commentary"`

	// Trend holds the closes since the month base.
	Trend []float64 `json:"-"`
}

// Result maps asset names to their performance.
type Result map[string]Performance

var levelPrinter = message.NewPrinter(language.English)

// Decode reads one Input from r.
func Decode(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, deckspec.ErrEmptyInput
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, &deckspec.InvalidJSONError{Err: err}
	}
	return &in, nil
}

// Compute returns the performance of every usable asset in in. Assets with
// short or malformed histories are skipped and logged.
func Compute(in Input, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	asOf := time.Now()
	if in.AsOf != "" {
		t, err := time.Parse(dateLayout, in.AsOf)
		if err != nil {
			return nil, fmt.Errorf("invalid as_of date: %w", err)
		}
		asOf = t
	}
	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	res := make(Result, len(in.Assets))
	for _, a := range in.Assets {
		p, err := compute(a, yearStart)
		if err != nil {
			logger.Warn("skipping asset", zap.String("asset", a.Name), zap.Error(err))
			continue
		}
		res[a.Name] = p
	}
	return res, nil
}

var errShortHistory = errors.New("not enough closes")

func compute(a Asset, yearStart time.Time) (Performance, error) {
	closes, dates, err := clean(a)
	if err != nil {
		return Performance{}, err
	}
	if len(closes) < MinCloses {
		return Performance{}, fmt.Errorf("%w: %d", errShortHistory, len(closes))
	}

	n := len(closes)
	current := closes[n-1]
	weekIdx := max(0, n-weekBack)
	monthIdx := max(0, n-monthBack)

	ytd := closes[0]
	for i, d := range dates {
		if !d.Before(yearStart) {
			ytd = closes[i]
			break
		}
	}

	chg1w, err := change(current, closes[weekIdx])
	if err != nil {
		return Performance{}, err
	}
	chgMTD, err := change(current, closes[monthIdx])
	if err != nil {
		return Performance{}, err
	}
	chgYTD, err := change(current, ytd)
	if err != nil {
		return Performance{}, err
	}

	return Performance{
		Name:      a.Name,
		Level:     FormatLevel(current, a.Name),
		Change1W:  FormatChange(chg1w),
		ChangeMTD: FormatChange(chgMTD),
		ChangeYTD: FormatChange(chgYTD),
		Signal:    Signal(a.Name, chg1w),
		Trend:     append([]float64(nil), closes[monthIdx:]...),
	}, nil
}

// clean drops missing and NaN closes together with their dates and parses
// the dates.
func clean(a Asset) ([]float64, []time.Time, error) {
	if len(a.Dates) > 0 && len(a.Dates) != len(a.Closes) {
		return nil, nil, fmt.Errorf("%d dates for %d closes", len(a.Dates), len(a.Closes))
	}
	closes := make([]float64, 0, len(a.Closes))
	var dates []time.Time
	for i, c := range a.Closes {
		if c == nil || math.IsNaN(*c) || math.IsInf(*c, 0) {
			continue
		}
		if len(a.Dates) > 0 {
			d, err := time.Parse(dateLayout, a.Dates[i])
			if err != nil {
				return nil, nil, fmt.Errorf("invalid date %q: %w", a.Dates[i], err)
			}
			dates = append(dates, d)
		}
		closes = append(closes, *c)
	}
	return closes, dates, nil
}

func change(current, base float64) (float64, error) {
	if base == 0 {
		return 0, errors.New("zero base price")
	}
	return (current - base) / base * 100, nil
}

// FormatChange renders a percent change with an explicit sign, "+1.2%".
func FormatChange(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatLevel renders a price the way the asset is quoted: yields as
// percentages, FX to four decimals, large levels with thousands separators.
func FormatLevel(v float64, name string) string {
	switch {
	case strings.Contains(name, "10Y"), strings.Contains(name, "2Y"):
		return fmt.Sprintf("%.2f%%", v)
	case strings.Contains(name, "EUR"), strings.Contains(name, "CHF"):
		return fmt.Sprintf("%.4f", v)
	case v >= 1000:
		return levelPrinter.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// Signal classifies the weekly change. A falling VIX is bullish.
func Signal(name string, chg1w float64) string {
	if name == "VIX" {
		switch {
		case chg1w < -5:
			return Bullish
		case chg1w > 10:
			return Bearish
		}
		return Neutral
	}
	switch {
	case chg1w > 1:
		return Bullish
	case chg1w < -1:
		return Bearish
	}
	return Neutral
}

// Headers are the sparkline table columns produced by Rows.
var Headers = []string{"Asset", "Level", "1W", "MTD", "YTD", "Signal"}

// SparkRow is one row of a sparkline_table chart.
type SparkRow struct {
	Cells     []string  `json:"cells"`
	Sparkline []float64 `json:"sparkline,omitempty"`
}

// Rows returns the table rows in the given asset order; names missing from
// r are skipped. With no order, rows are sorted by name.
func (r Result) Rows(order ...string) []SparkRow {
	if len(order) == 0 {
		for name := range r {
			order = append(order, name)
		}
		sort.Strings(order)
	}
	rows := make([]SparkRow, 0, len(order))
	for _, name := range order {
		p, ok := r[name]
		if !ok {
			continue
		}
		rows = append(rows, SparkRow{
			Cells:     []string{p.Name, p.Level, p.Change1W, p.ChangeMTD, p.ChangeYTD, strings.ToUpper(p.Signal)},
			Sparkline: p.Trend,
		})
	}
	return rows
}

// Chart wraps the rows in a sparkline_table chart spec.
func (r Result) Chart(title string, order ...string) (*charts.Spec, error) {
	data, err := json.Marshal(struct {
		Headers []string   `json:"headers"`
		Rows    []SparkRow `json:"rows"`
	}{Headers, r.Rows(order...)})
	if err != nil {
		return nil, fmt.Errorf("failed to encode table: %w", err)
	}
	return &charts.Spec{
		Type:     "sparkline_table",
		Data:     data,
		Config:   charts.Config{Title: title},
		Filename: "chart_performance.png",
	}, nil
}

// Names returns the asset names of in, in input order.
func (in Input) Names() []string {
	names := make([]string, 0, len(in.Assets))
	for _, a := range in.Assets {
		names = append(names, a.Name)
	}
	return names
}
