package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/star-catcher/internal/core"
)

const defaultFontSize = 12

// RenderOptions tune a single Render call.
type RenderOptions struct {
	// SkipText leaves text shapes out, for targets that draw text natively.
	SkipText bool
}

// Raster paints a Surface into an RGBA image.
// The background layer is rasterized once and reused until a shape tagged
// TagBackground changes.
type Raster struct {
	surface *Surface

	bg    image.Image
	bgRev uint64

	font  *truetype.Font
	faces map[float64]font.Face
}

// NewRaster creates a rasterizer for s.
func NewRaster(s *Surface) *Raster {
	r := &Raster{
		surface: s,
		faces:   make(map[float64]font.Face),
	}
	if f, err := truetype.Parse(goregular.TTF); err == nil {
		r.font = f
	}
	return r
}

// Surface returns the surface this raster paints.
func (r *Raster) Surface() *Surface { return r.surface }

// Render paints the whole display list and returns the frame.
func (r *Raster) Render(opts RenderOptions) *image.RGBA {
	s := r.surface
	r.ensureBackground()

	dc := gg.NewContext(s.width, s.height)
	dc.DrawImage(r.bg, 0, 0)

	s.each(true, func(_ Handle, sh *Shape) {
		if sh.Hidden {
			return
		}
		if sh.Kind == KindText && opts.SkipText {
			return
		}
		r.draw(dc, sh)
	})
	return toRGBA(dc.Image())
}

// Invalidate drops the cached background layer.
func (r *Raster) Invalidate() {
	r.bg = nil
}

func (r *Raster) ensureBackground() {
	s := r.surface
	rev := s.Revision(TagBackground)
	if r.bg != nil && rev == r.bgRev {
		return
	}

	dc := gg.NewContext(s.width, s.height)
	dc.SetColor(color.Black)
	dc.Clear()
	for _, h := range s.order {
		sh := s.shapes[h]
		if sh.Hidden || !sh.HasTag(TagBackground) || sh.HasTag(TagOverlay) {
			continue
		}
		r.draw(dc, sh)
	}
	r.bg = dc.Image()
	r.bgRev = rev
}

func (r *Raster) draw(dc *gg.Context, sh *Shape) {
	c := sh.Coords
	switch sh.Kind {
	case KindLine:
		if len(c) < 4 {
			return
		}
		dc.SetColor(rgba(sh.Style.Outline))
		dc.SetLineWidth(sh.Style.lineWidth())
		// Pixel centers sit on half coordinates.
		dc.DrawLine(c[0]+0.5, c[1]+0.5, c[2]+0.5, c[3]+0.5)
		dc.Stroke()
	case KindOval:
		b := sh.Bounds()
		dc.DrawEllipse((b.X0+b.X1)/2, (b.Y0+b.Y1)/2, b.Width()/2, b.Height()/2)
		paint(dc, sh.Style)
	case KindRectangle:
		b := sh.Bounds()
		dc.DrawRectangle(b.X0, b.Y0, b.Width(), b.Height())
		paint(dc, sh.Style)
	case KindPolygon:
		if len(c) < 4 {
			return
		}
		dc.NewSubPath()
		dc.MoveTo(c[0], c[1])
		for i := 2; i+1 < len(c); i += 2 {
			dc.LineTo(c[i], c[i+1])
		}
		dc.ClosePath()
		paint(dc, sh.Style)
	case KindText:
		r.drawText(dc, sh)
	}
}

func paint(dc *gg.Context, st Style) {
	switch {
	case st.Filled && st.Outlined:
		dc.SetColor(rgba(st.Fill))
		dc.FillPreserve()
		dc.SetColor(rgba(st.Outline))
		dc.SetLineWidth(st.lineWidth())
		dc.Stroke()
	case st.Filled:
		dc.SetColor(rgba(st.Fill))
		dc.Fill()
	case st.Outlined:
		dc.SetColor(rgba(st.Outline))
		dc.SetLineWidth(st.lineWidth())
		dc.Stroke()
	default:
		dc.ClearPath()
	}
}

func (r *Raster) drawText(dc *gg.Context, sh *Shape) {
	if sh.Text == "" || len(sh.Coords) < 2 {
		return
	}
	ts := sh.TextStyle
	if face := r.face(ts.Size); face != nil {
		dc.SetFontFace(face)
	}
	x, y := sh.Coords[0], sh.Coords[1]
	ax, ay := ts.Anchor.factors()

	if ts.HasBackground {
		w, h := dc.MeasureString(sh.Text)
		x0 := x - ax*w
		y0 := y + ay*h - h
		dc.SetColor(rgba(ts.Background))
		dc.DrawRectangle(x0-2, y0-2, w+4, h+4)
		dc.Fill()
	}

	dc.SetColor(rgba(ts.Color))
	dc.DrawStringAnchored(sh.Text, x, y, ax, ay)
}

func (r *Raster) face(size float64) font.Face {
	if r.font == nil {
		return nil
	}
	if size <= 0 {
		size = defaultFontSize
	}
	if f, ok := r.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(r.font, &truetype.Options{Size: size})
	r.faces[size] = f
	return f
}

// WritePNG renders the surface and encodes it as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.Render(RenderOptions{})); err != nil {
		return fmt.Errorf("canvas: encode png: %w", err)
	}
	return nil
}

// SavePNG renders the surface into a PNG file, creating parent directories.
func (r *Raster) SavePNG(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("canvas: create directory: %w", err)
		}
	}
	if err := gg.SavePNG(path, r.Render(RenderOptions{})); err != nil {
		return fmt.Errorf("canvas: save png: %w", err)
	}
	return nil
}

func rgba(c core.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}
