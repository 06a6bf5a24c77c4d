// Package chart renders the comparison charts as PNG images.
package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"gonum.org/v1/plot/vg/vgimg"
)

var (
	Green = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	Blue  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	Red   = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// Renderer is implemented by every chart in this package.
type Renderer interface {
	Render(w io.Writer) error
}

// Save renders r into the PNG file at path, replacing any previous content.
func Save(path string, r Renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := r.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

func writePNG(w io.Writer, img *vgimg.Canvas) error {
	_, err := vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	return err
}
