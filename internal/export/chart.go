package export

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	DefaultChartWidth  = 800
	DefaultChartHeight = 480

	minChartWidth  = 200
	minChartHeight = 160
)

var (
	chartFontOnce sync.Once
	chartFont     *truetype.Font
	chartFontErr  error
)

func loadChartFont() (*truetype.Font, error) {
	chartFontOnce.Do(func() {
		chartFont, chartFontErr = truetype.Parse(goregular.TTF)
		if chartFontErr != nil {
			chartFontErr = fmt.Errorf("failed to parse TTF: %w", chartFontErr)
		}
	})
	return chartFont, chartFontErr
}

func fontFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// ChartExporter draws weekly hours per subject as a PNG bar chart. Bars use
// the severity fill colours.
type ChartExporter struct {
	Width  int
	Height int
}

func NewChartExporter(width, height int) *ChartExporter {
	if width < minChartWidth {
		width = DefaultChartWidth
	}
	if height < minChartHeight {
		height = DefaultChartHeight
	}
	return &ChartExporter{Width: width, Height: height}
}

func (ChartExporter) Format() Format      { return FormatPNG }
func (ChartExporter) Extension() string   { return "png" }
func (ChartExporter) ContentType() string { return "image/png" }

func (c ChartExporter) Export(ctx context.Context, w io.Writer, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := loadChartFont()
	if err != nil {
		return err
	}

	width, height := float64(c.Width), float64(c.Height)
	dc := gg.NewContext(c.Width, c.Height)
	dc.SetColor(color.White)
	dc.Clear()

	const (
		left   = 60.0
		right  = 20.0
		top    = 56.0
		bottom = 64.0
	)
	plotW := width - left - right
	plotH := height - top - bottom

	dc.SetFontFace(fontFace(f, 20))
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(doc.title()+" (hours/week)", width/2, top/2, 0.5, 0.5)

	maxHours := 0.0
	for _, r := range doc.Rows {
		maxHours = math.Max(maxHours, r.WeeklyHours)
	}
	scaleMax := niceCeil(maxHours)

	// Axes and gridlines.
	dc.SetFontFace(fontFace(f, 12))
	dc.SetLineWidth(1)
	const ticks = 4
	for i := 0; i <= ticks; i++ {
		v := scaleMax * float64(i) / ticks
		y := top + plotH - plotH*float64(i)/ticks
		dc.SetRGB(0.85, 0.85, 0.85)
		dc.DrawLine(left, y, left+plotW, y)
		dc.Stroke()
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(hours(v, 1), left-8, y, 1, 0.5)
	}
	dc.SetColor(color.Black)
	dc.DrawLine(left, top, left, top+plotH)
	dc.DrawLine(left, top+plotH, left+plotW, top+plotH)
	dc.Stroke()

	if len(doc.Rows) == 0 {
		return encodePNG(dc, w)
	}

	slot := plotW / float64(len(doc.Rows))
	barW := slot * 0.6
	for i, r := range doc.Rows {
		barH := 0.0
		if scaleMax > 0 {
			barH = plotH * r.WeeklyHours / scaleMax
		}
		x := left + slot*float64(i) + (slot-barW)/2
		y := top + plotH - barH

		red, green, blue := hexRGB(fillFor(r.Severity))
		dc.SetRGB255(red, green, blue)
		dc.DrawRectangle(x, y, barW, barH)
		dc.FillPreserve()
		dc.SetRGB(0.4, 0.4, 0.4)
		dc.Stroke()

		dc.SetColor(color.Black)
		dc.DrawStringAnchored(hours(r.WeeklyHours, 1), x+barW/2, y-6, 0.5, 0)
		dc.DrawStringWrapped(r.Subject, x+barW/2, top+plotH+8, 0.5, 0, slot, 1.2, gg.AlignCenter)
	}

	return encodePNG(dc, w)
}

func encodePNG(dc *gg.Context, w io.Writer) error {
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// niceCeil rounds v up to 1, 2 or 5 times a power of ten so axis ticks land
// on readable values.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*exp >= v {
			return m * exp
		}
	}
	return 10 * exp
}
