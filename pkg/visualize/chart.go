package visualize

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fogleman/gg"
)

const (
	chartWidth  = 1000
	chartHeight = 600

	marginLeft   = 80
	marginRight  = 60
	marginTop    = 60
	marginBottom = 110

	lineColor = "#2196F3"
	gridColor = "#D9D9D9"
	textColor = "#333333"

	yTicks = 5
	xTicks = 8
)

// RenderChart draws the cumulative amount of stars over time as a PNG image.
func RenderChart(w io.Writer, points []Point, title string) error {
	if len(points) == 0 {
		return errors.New("no starring dates to plot")
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	var (
		left   = float64(marginLeft)
		right  = float64(chartWidth - marginRight)
		top    = float64(marginTop)
		bottom = float64(chartHeight - marginBottom)

		first = points[0].Day
		last  = points[len(points)-1].Day
	)

	if !last.After(first) {
		last = first.Add(24 * time.Hour)
	}

	maxTotal := niceCeiling(points[len(points)-1].Total)

	x := func(t time.Time) float64 {
		return left + (right-left)*float64(t.Sub(first))/float64(last.Sub(first))
	}
	y := func(count int) float64 {
		return bottom - (bottom-top)*float64(count)/float64(maxTotal)
	}

	// Dashed grid and tick labels.
	dc.SetLineWidth(1)
	for i := 0; i <= yTicks; i++ {
		count := maxTotal * i / yTicks
		dc.SetHexColor(gridColor)
		dc.SetDash(4, 4)
		dc.DrawLine(left, y(count), right, y(count))
		dc.Stroke()

		dc.SetHexColor(textColor)
		dc.DrawStringAnchored(fmt.Sprint(count), left-8, y(count), 1, 0.5)
	}

	for i := 0; i <= xTicks; i++ {
		day := first.Add(time.Duration(float64(last.Sub(first)) * float64(i) / xTicks))
		dc.SetHexColor(gridColor)
		dc.SetDash(4, 4)
		dc.DrawLine(x(day), top, x(day), bottom)
		dc.Stroke()

		dc.SetHexColor(textColor)
		dc.Push()
		dc.RotateAbout(gg.Radians(-45), x(day), bottom+8)
		dc.DrawStringAnchored(day.Format("2006-01-02"), x(day), bottom+8, 1, 0.5)
		dc.Pop()
	}

	// Axes, without the top and right spines.
	dc.SetDash()
	dc.SetHexColor(textColor)
	dc.DrawLine(left, top, left, bottom)
	dc.DrawLine(left, bottom, right, bottom)
	dc.Stroke()

	// Cumulative stars.
	dc.SetHexColor(lineColor)
	dc.SetLineWidth(2)
	dc.MoveTo(x(points[0].Day), y(points[0].Total))
	for _, point := range points[1:] {
		dc.LineTo(x(point.Day), y(point.Total))
	}
	dc.Stroke()

	// Labels.
	dc.SetHexColor(textColor)
	dc.DrawStringAnchored(title, chartWidth/2, top/2, 0.5, 0.5)
	dc.DrawStringAnchored("Date", (left+right)/2, chartHeight-12, 0.5, 0.5)

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 20, (top+bottom)/2)
	dc.DrawStringAnchored("Cumulative Stars", 20, (top+bottom)/2, 0.5, 0.5)
	dc.Pop()

	lastPoint := points[len(points)-1]
	dc.DrawStringAnchored(fmt.Sprintf("Total: %s", formatThousands(lastPoint.Total)), x(lastPoint.Day)+10, y(lastPoint.Total), 0, 0.5)

	return dc.EncodePNG(w)
}

// niceCeiling rounds n up so that the y axis ticks fall on round values.
func niceCeiling(n int) int {
	if n <= yTicks {
		return yTicks
	}

	// Half of the highest power of ten below n.
	unit := int(math.Pow(10, math.Floor(math.Log10(float64(n))))) / 2
	if unit < yTicks {
		unit = yTicks
	}

	return (n + unit - 1) / unit * unit
}

// formatThousands formats n with comma separators.
func formatThousands(n int) string {
	if n < 0 {
		return "-" + formatThousands(-n)
	}

	s := fmt.Sprint(n)

	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}

	return s
}
