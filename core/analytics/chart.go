package analytics

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	chartTitle   = "Average Grades per Subject"
	chartNoData  = "No grade data available"
	chartMaxMark = 100
)

// Bar is one subject of the averages chart.
type Bar struct {
	SubjectCode string  `json:"subject_code"`
	SubjectName string  `json:"subject_name"`
	Average     float64 `json:"average"`
	Count       int     `json:"count"`
}

// RenderBarChart writes a horizontal text bar chart of bars on a 0-100 scale, `width` columns wide at 100.
func RenderBarChart(w io.Writer, bars []Bar, width int) error {
	if width <= 0 {
		width = 50
	}

	var b strings.Builder
	b.WriteString(chartTitle + "\n")
	if len(bars) == 0 {
		b.WriteString(chartNoData + "\n")
		_, err := io.WriteString(w, b.String())
		return errors.Wrap(err, "writing chart")
	}

	labelWidth := 0
	for _, bar := range bars {
		if n := utf8.RuneCountInString(bar.SubjectCode); n > labelWidth {
			labelWidth = n
		}
	}

	for _, bar := range bars {
		n := int(bar.Average/chartMaxMark*float64(width) + 0.5)
		if n < 0 {
			n = 0
		} else if n > width {
			n = width
		}
		_, _ = fmt.Fprintf(&b, "%-*s |%s%s| %6.2f\n",
			labelWidth, bar.SubjectCode,
			strings.Repeat("#", n), strings.Repeat(" ", width-n),
			bar.Average,
		)
	}
	_, _ = fmt.Fprintf(&b, "%*s  0%s100\n", labelWidth, "", strings.Repeat(" ", maxInt(width-4, 1)))

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "writing chart")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
