package chart

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	barPageWidth  = 12 * vg.Inch
	barPageHeight = 8 * vg.Inch
	// room kept free on the right for the time axis
	rightAxisSpace = vg.Inch
	// fraction of a category slot taken by one bar
	barFraction = 0.24
)

// Bar is one algorithm's pair of bars.
type Bar struct {
	Label    string
	Accuracy float64
	Time     float64
}

// BarChart compares accuracy (left axis) and average time in milliseconds
// (right axis) per algorithm. Bars are drawn in the given order.
type BarChart struct {
	Title string
	Bars  []Bar
}

func (c BarChart) Render(w io.Writer) error {
	img := vgimg.New(barPageWidth, barPageHeight)
	if err := c.draw(draw.New(img)); err != nil {
		return err
	}
	return writePNG(w, img)
}

// AccuracyAxisMax is the top of the accuracy axis, leaving headroom for the
// value labels.
func AccuracyAxisMax(bars []Bar) float64 {
	top := 1.0
	for _, b := range bars {
		top = math.Max(top, b.Accuracy)
	}
	return 1.1 * top
}

// TimeAxisMax is 1.1 times the largest time, or 1 when there is none.
func TimeAxisMax(bars []Bar) float64 {
	top := 0.0
	for _, b := range bars {
		top = math.Max(top, b.Time)
	}
	if top <= 0 {
		return 1
	}
	return 1.1 * top
}

func (c BarChart) draw(dc draw.Canvas) error {
	n := len(c.Bars)
	accMax := AccuracyAxisMax(c.Bars)
	timeMax := TimeAxisMax(c.Bars)

	accs := make(plotter.Values, n)
	scaled := make(plotter.Values, n)
	labels := make([]string, n)
	for i, b := range c.Bars {
		accs[i] = b.Accuracy
		// times share the accuracy axis, the right axis relabels them
		scaled[i] = b.Time / timeMax * accMax
		labels[i] = b.Label
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.Y.Label.Text = "Accuracy"
	p.Legend.Top = true

	area := draw.Crop(dc, 0, -rightAxisSpace, 0, 0)
	width := slotWidth(area, n) * barFraction

	if n > 0 {
		accBars, err := plotter.NewBarChart(accs, width)
		if err != nil {
			return fmt.Errorf("accuracy bars: %w", err)
		}
		accBars.Color = Green
		accBars.LineStyle.Width = 0
		accBars.Offset = -width / 2

		timeBars, err := plotter.NewBarChart(scaled, width)
		if err != nil {
			return fmt.Errorf("time bars: %w", err)
		}
		timeBars.Color = Blue
		timeBars.LineStyle.Width = 0
		timeBars.Offset = width / 2

		p.Add(accBars, timeBars)
		p.Legend.Add("accuracy", accBars)
		p.Legend.Add("average time", timeBars)
		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = math.Pi * 75 / 180
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YCenter
	}
	p.X.Min, p.X.Max = -0.5, math.Max(float64(n)-0.5, 0.5)
	p.Y.Min, p.Y.Max = 0, accMax

	p.Draw(area)
	da := p.DataCanvas(area)

	valueStyle := p.Y.Tick.Label
	valueStyle.XAlign = text.XCenter
	valueStyle.YAlign = text.YBottom
	for i, b := range c.Bars {
		x := da.X(p.X.Norm(float64(i)))
		annotate(da, valueStyle, x-width/2, da.Y(p.Y.Norm(accs[i])), b.Accuracy)
		annotate(da, valueStyle, x+width/2, da.Y(p.Y.Norm(scaled[i])), b.Time)
	}
	drawTimeAxis(dc, da, p, timeMax)
	return nil
}

func slotWidth(area draw.Canvas, n int) vg.Length {
	if n < 1 {
		n = 1
	}
	// approximate plot area once axis labels and padding are subtracted
	usable := area.Max.X - area.Min.X - 1.5*vg.Inch
	return usable / vg.Length(n)
}

func annotate(c draw.Canvas, sty text.Style, x, y vg.Length, v float64) {
	c.FillText(sty, vg.Point{X: x, Y: y + vg.Points(3)}, fmt.Sprintf("%.2f", v))
}

// drawTimeAxis draws a second vertical axis along the right edge of the data
// area mapping [0, top] onto its full height.
func drawTimeAxis(c, da draw.Canvas, p *plot.Plot, top float64) {
	x := da.Max.X + vg.Points(4)
	c.StrokeLine2(p.Y.LineStyle, x, da.Min.Y, x, da.Max.Y)

	tickStyle := p.Y.Tick.Label
	tickStyle.XAlign = text.XLeft
	tickStyle.YAlign = text.YCenter
	for _, t := range (plot.DefaultTicks{}).Ticks(0, top) {
		if t.IsMinor() || t.Value < 0 || t.Value > top {
			continue
		}
		y := da.Y(t.Value / top)
		c.StrokeLine2(p.Y.Tick.LineStyle, x, y, x+p.Y.Tick.Length, y)
		c.FillText(tickStyle, vg.Point{X: x + p.Y.Tick.Length + vg.Points(2), Y: y}, t.Label)
	}

	labelStyle := p.Y.Label.TextStyle
	labelStyle.Rotation = math.Pi / 2
	labelStyle.XAlign = text.XCenter
	labelStyle.YAlign = text.YBottom
	mid := (da.Min.Y + da.Max.Y) / 2
	c.FillText(labelStyle, vg.Point{X: c.Max.X - vg.Points(6), Y: mid}, "Average time (ms)")
}
