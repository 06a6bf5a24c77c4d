package chart

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	scatterPageWidth  = 16 * vg.Inch
	scatterPageHeight = 12 * vg.Inch
	MaxColumns        = 6
)

// Point is one scored sample; Correct selects its colour.
type Point struct {
	Score   float64
	Correct bool
}

// Panel is one subplot of a scatter page.
type Panel struct {
	Title  string
	Points []Point
}

// ScatterGrid lays panels out row by row, at most MaxColumns per row, under a
// page title.
type ScatterGrid struct {
	Title  string
	Panels []Panel
}

// GridShape returns the rows and columns needed for n panels.
func GridShape(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = min(n, MaxColumns)
	return (n + cols - 1) / cols, cols
}

// ScoreRange is the y range of a panel: [min(0, lowest), max(1.1*highest, 1)].
func ScoreRange(points []Point) (lo, hi float64) {
	if len(points) == 0 {
		return 0, 1
	}
	lowest, highest := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lowest = math.Min(lowest, p.Score)
		highest = math.Max(highest, p.Score)
	}
	return math.Min(0, lowest), math.Max(1.1*highest, 1)
}

func (g ScatterGrid) Render(w io.Writer) error {
	img := vgimg.New(scatterPageWidth, scatterPageHeight)
	dc := draw.New(img)

	titleStyle := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, 14),
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	dc.FillText(titleStyle, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(6)}, g.Title)

	rows, cols := GridShape(len(g.Panels))
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadTop:    vg.Points(30),
		PadBottom: vg.Points(8),
		PadLeft:   vg.Points(8),
		PadRight:  vg.Points(8),
		PadX:      vg.Points(12),
		PadY:      vg.Points(12),
	}
	for i, panel := range g.Panels {
		p, err := panel.plot()
		if err != nil {
			return fmt.Errorf("panel %q: %w", panel.Title, err)
		}
		p.Draw(tiles.At(dc, i%cols, i/cols))
	}
	return writePNG(w, img)
}

func (panel Panel) plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.Title.TextStyle.Font.Size = vg.Points(10)
	p.X.Tick.Marker = plot.ConstantTicks(nil)

	n := len(panel.Points)
	if n > 0 {
		xys := make(plotter.XYs, n)
		for i, pt := range panel.Points {
			xys[i].X = float64(i)
			xys[i].Y = pt.Score
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(2)
		s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			gs := s.GlyphStyle
			if panel.Points[i].Correct {
				gs.Color = Blue
			} else {
				gs.Color = Red
			}
			return gs
		}
		p.Add(s)
	}
	p.X.Min, p.X.Max = -1, math.Max(float64(n), 1)
	p.Y.Min, p.Y.Max = ScoreRange(panel.Points)
	return p, nil
}
