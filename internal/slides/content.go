package slides

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// flexText accepts a JSON string or number and keeps its textual form.
type flexText string

func (t *flexText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = flexText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*t = flexText(n.String())
	return nil
}

// bulletText accepts either a preformatted string or a list of entries,
// which become "• entry" lines.
type bulletText string

func (t *bulletText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		lines := make([]string, len(items))
		for i, s := range items {
			lines[i] = "• " + s
		}
		*t = bulletText(strings.Join(lines, "\n"))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = bulletText(s)
	return nil
}

// Box is a placement rectangle in inches.
type Box struct {
	Left, Top, Width, Height float64
}

// dims is a partial Box as written in slide content.
type dims struct {
	Left   *float64 `json:"left"`
	Top    *float64 `json:"top"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
}

func (d *dims) or(def Box) Box {
	if d == nil {
		return def
	}
	out := def
	if d.Left != nil {
		out.Left = *d.Left
	}
	if d.Top != nil {
		out.Top = *d.Top
	}
	if d.Width != nil && *d.Width > 0 {
		out.Width = *d.Width
	}
	if d.Height != nil && *d.Height > 0 {
		out.Height = *d.Height
	}
	return out
}

// chartBox is the default chart placement.
var chartBox = Box{Left: 0.4, Top: 2.5, Width: 12.5, Height: 4.5}

type coverContent struct {
	Company     string `json:"company"`
	Tagline     string `json:"tagline"`
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	DateRange   string `json:"date_range"`
	Theme       string `json:"theme"`
	FooterText  string `json:"footer_text"`
}

type summarySection struct {
	Text   string   `json:"text"`
	Height *float64 `json:"height"`
}

type summaryContent struct {
	Title    string           `json:"title"`
	Tag      string           `json:"tag"`
	Sections []summarySection `json:"sections"`
}

type chartContent struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Tag       string `json:"tag"`
	ChartDims *dims  `json:"chart_dims"`
}

type textContent struct {
	Title      string   `json:"title"`
	Tag        string   `json:"tag"`
	LeftTitle  string   `json:"left_title"`
	LeftColor  string   `json:"left_color"`
	LeftItems  []string `json:"left_items"`
	LeftIcon   *string  `json:"left_icon"`
	RightTitle string   `json:"right_title"`
	RightColor string   `json:"right_color"`
	RightItems []string `json:"right_items"`
	RightIcon  *string  `json:"right_icon"`
}

type sourcesContent struct {
	Title        string     `json:"title"`
	LeftSources  bulletText `json:"left_sources"`
	RightSources bulletText `json:"right_sources"`
	Disclaimer   string     `json:"disclaimer"`
}

type backCoverContent struct {
	// Company falls back to the house name only when absent; "" hides it.
	Company      *string  `json:"company"`
	Tagline      string   `json:"tagline"`
	ContactLines []string `json:"contact_lines"`
	Closing      string   `json:"closing"`
	Regulatory   string   `json:"regulatory"`
	Copyright    string   `json:"copyright"`
}

type dividerContent struct {
	Number   flexText `json:"number"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
}

type kpi struct {
	Label  string   `json:"label"`
	Value  flexText `json:"value"`
	Change flexText `json:"change"`
	Trend  string   `json:"trend"`
}

type kpiContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Tag      string `json:"tag"`
	KPIs     []kpi  `json:"kpis"`
}

type newsItem struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
	Impact   string `json:"impact"`
}

type newsContent struct {
	Title string     `json:"title"`
	Tag   string     `json:"tag"`
	Items []newsItem `json:"items"`
}

type imageContent struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Tag       string `json:"tag"`
	ImagePath string `json:"image_path"`
	Caption   string `json:"caption"`
	Dims      *dims  `json:"dims"`
}

type dualChartContent struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Tag      string   `json:"tag"`
	Captions []string `json:"captions"`
}

type calloutContent struct {
	Title       string   `json:"title"`
	Tag         string   `json:"tag"`
	Text        string   `json:"text"`
	Attribution string   `json:"attribution"`
	Stat        flexText `json:"stat"`
	StatLabel   string   `json:"stat_label"`
}
