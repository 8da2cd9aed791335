package canvas

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/vovakirdan/star-catcher/internal/core"
)

// halfBlock paints the top half of a cell in the foreground color and the
// bottom half in the background color.
const halfBlock = '▀'

// Viewport maps a pixel field onto a block of terminal cells.
// Every cell covers one column and two rows of downsampled pixels.
type Viewport struct {
	X, Y   int // Top-left cell
	W, H   int // Size in cells
	FieldW int
	FieldH int
}

// FitViewport returns the largest viewport that shows a fieldW x fieldH
// field inside cols x rows cells with square pixels, centered.
func FitViewport(fieldW, fieldH, cols, rows int) Viewport {
	vp := Viewport{FieldW: fieldW, FieldH: fieldH}
	if fieldW <= 0 || fieldH <= 0 || cols <= 0 || rows <= 0 {
		return vp
	}

	w := cols
	px := w * fieldH / fieldW
	if px > rows*2 {
		px = rows * 2
		w = px * fieldW / fieldH
	}
	vp.W = core.Max(w, 1)
	vp.H = core.Clamp((px+1)/2, 1, rows)
	vp.X = (cols - vp.W) / 2
	vp.Y = (rows - vp.H) / 2
	return vp
}

// Empty reports whether the viewport covers no cells.
func (v Viewport) Empty() bool {
	return v.W <= 0 || v.H <= 0 || v.FieldW <= 0 || v.FieldH <= 0
}

// ToCell converts a field position to the cell that displays it.
func (v Viewport) ToCell(fx, fy float64) (col, row int) {
	if v.Empty() {
		return v.X, v.Y
	}
	col = v.X + int(fx*float64(v.W)/float64(v.FieldW))
	row = v.Y + int(fy*float64(v.H)/float64(v.FieldH))
	return col, row
}

// ToField converts a cell to the field position at its center.
// ok is false when the cell lies outside the viewport.
func (v Viewport) ToField(col, row int) (fx, fy float64, ok bool) {
	if v.Empty() {
		return 0, 0, false
	}
	cx, cy := col-v.X, row-v.Y
	if cx < 0 || cx >= v.W || cy < 0 || cy >= v.H {
		return 0, 0, false
	}
	fx = (float64(cx) + 0.5) * float64(v.FieldW) / float64(v.W)
	fy = (float64(cy) + 0.5) * float64(v.FieldH) / float64(v.H)
	return fx, fy, true
}

// Cells downsamples img into the viewport area of dst using half blocks.
func Cells(img image.Image, dst *core.Screen, vp Viewport) {
	if vp.Empty() || img == nil {
		return
	}
	small := imaging.Resize(img, vp.W, vp.H*2, imaging.Box)
	for cy := 0; cy < vp.H; cy++ {
		for cx := 0; cx < vp.W; cx++ {
			dst.SetCell(vp.X+cx, vp.Y+cy, core.Cell{
				Rune:  halfBlock,
				FG:    rgbOf(small.NRGBAAt(cx, cy*2)),
				BG:    rgbOf(small.NRGBAAt(cx, cy*2+1)),
				HasFG: true,
				HasBG: true,
			})
		}
	}
}

// OverlayText writes the surface's visible text shapes into dst as real
// characters positioned through vp.
func OverlayText(s *Surface, dst *core.Screen, vp Viewport) {
	if vp.Empty() {
		return
	}
	s.each(false, func(_ Handle, sh *Shape) {
		if sh.Hidden || sh.Kind != KindText || sh.Text == "" || len(sh.Coords) < 2 {
			return
		}
		ts := sh.TextStyle
		col, row := vp.ToCell(sh.Coords[0], sh.Coords[1])
		runes := []rune(sh.Text)
		if ts.Anchor == AnchorCenter {
			col -= len(runes) / 2
		}
		for i, r := range runes {
			x := col + i
			if x < vp.X || x >= vp.X+vp.W {
				continue
			}
			c := dst.GetCell(x, row)
			c.Rune = r
			c.FG = ts.Color
			c.HasFG = true
			if ts.HasBackground {
				c.BG = ts.Background
				c.HasBG = true
			}
			dst.SetCell(x, row, c)
		}
	})
}

func rgbOf(c color.NRGBA) core.RGB {
	return core.RGB{R: c.R, G: c.G, B: c.B}
}
