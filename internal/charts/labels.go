package charts

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var labelPrinter = message.NewPrinter(language.English)

// valueLabel prints v like formatNumber, grouping thousands from 1000 up:
// 35.5, 1,250, -12,000.25.
func valueLabel(v float64) string {
	if v == 0 {
		return "0"
	}
	s := formatNumber(v)
	if math.Abs(v) < 1000 {
		return s
	}
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return s
	}
	out := labelPrinter.Sprintf("%d", n)
	if frac != "" {
		out += "." + frac
	}
	return out
}
