// Package export writes rendered frames of a scene to image files.
package export

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"beziertui/internal/geom"
	"beziertui/internal/logging"
	"beziertui/internal/scene"
)

// Style is how one layer is painted.
type Style struct {
	Stroke    color.Color
	Fill      color.Color
	LineWidth float64
}

// DefaultStyles paints on a white background.
var DefaultStyles = [scene.LayerCount]Style{
	scene.LayerCurve:        {Stroke: color.RGBA{0x1f, 0x4e, 0x9c, 0xff}, LineWidth: 2},
	scene.LayerConstruction: {Stroke: color.RGBA{0x9a, 0x9a, 0x9a, 0xff}, LineWidth: 1},
	scene.LayerConnections:  {Stroke: color.RGBA{0xc8, 0xc8, 0xc8, 0xff}, LineWidth: 1},
	scene.LayerMarkers:      {Stroke: color.RGBA{0xe6, 0x7e, 0x22, 0xff}, LineWidth: 2},
	scene.LayerHandles:      {Stroke: color.Black, Fill: color.RGBA{0x9e, 0xca, 0xe1, 0xff}, LineWidth: 1},
	scene.LayerSelection:    {Stroke: color.RGBA{0xd6, 0x27, 0x28, 0xff}, LineWidth: 2},
	scene.LayerHover:        {Stroke: color.RGBA{0x2c, 0xa0, 0x2c, 0xff}, LineWidth: 1},
}

// Renderer records drawing calls per layer and replays them onto a gg
// context lowest layer first. Coordinates are canvas units; Origin lands on
// pixel (0, 0) and Scale converts units to pixels.
type Renderer struct {
	Origin geom.Point
	Scale  float64
	Styles [scene.LayerCount]Style

	layer scene.Layer
	ops   [scene.LayerCount][]func(dc *gg.Context, st Style)
}

func NewRenderer(scale float64) *Renderer {
	return &Renderer{Scale: scale, Styles: DefaultStyles}
}

func (r *Renderer) SetLayer(l scene.Layer) {
	if l < 0 || l >= scene.LayerCount {
		l = scene.LayerCurve
	}
	r.layer = l
}

func (r *Renderer) add(f func(dc *gg.Context, st Style)) {
	r.ops[r.layer] = append(r.ops[r.layer], f)
}

func (r *Renderer) px(p geom.Point) (float64, float64) {
	return (p.X - r.Origin.X) * r.Scale, (p.Y - r.Origin.Y) * r.Scale
}

func (r *Renderer) DrawPolyline(points []geom.Point) {
	if len(points) < 2 {
		return
	}
	pts := append([]geom.Point(nil), points...)
	r.add(func(dc *gg.Context, st Style) {
		dc.NewSubPath()
		for i, p := range pts {
			x, y := r.px(p)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.SetColor(st.Stroke)
		dc.SetLineWidth(st.LineWidth)
		dc.Stroke()
	})
}

func (r *Renderer) DrawSegment(a, b geom.Point) {
	r.add(func(dc *gg.Context, st Style) {
		x1, y1 := r.px(a)
		x2, y2 := r.px(b)
		dc.SetColor(st.Stroke)
		dc.SetLineWidth(st.LineWidth)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	})
}

func (r *Renderer) DrawFilledCircle(c geom.Point, radius float64) {
	r.add(func(dc *gg.Context, st Style) {
		x, y := r.px(c)
		fill := st.Fill
		if fill == nil {
			fill = st.Stroke
		}
		dc.SetColor(fill)
		dc.DrawCircle(x, y, radius*r.Scale)
		dc.Fill()
	})
}

func (r *Renderer) DrawStrokedCircle(c geom.Point, radius float64) {
	r.add(func(dc *gg.Context, st Style) {
		x, y := r.px(c)
		dc.SetColor(st.Stroke)
		dc.SetLineWidth(st.LineWidth)
		dc.DrawCircle(x, y, radius*r.Scale)
		dc.Stroke()
	})
}

// Flush replays every recorded call onto dc in layer order and forgets them.
func (r *Renderer) Flush(dc *gg.Context) {
	for l := range r.ops {
		for _, f := range r.ops[l] {
			f(dc, r.Styles[l])
		}
		r.ops[l] = nil
	}
}

// Frame renders draw onto a new white width x height pixel context whose
// top left corner is canvas position origin.
func Frame(width, height int, scale float64, origin geom.Point, draw func(scene.Renderer)) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	r := NewRenderer(scale)
	r.Origin = origin
	draw(r)
	r.Flush(dc)
	return dc
}

// PNG renders draw onto a width x height pixel image and saves it to path.
func PNG(path string, width, height int, scale float64, draw func(scene.Renderer)) error {
	return PNGAt(path, width, height, scale, geom.Point{}, draw)
}

// PNGAt is PNG with the image's top left corner at canvas position origin.
func PNGAt(path string, width, height int, scale float64, origin geom.Point, draw func(scene.Renderer)) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export: invalid image size %dx%d", width, height)
	}
	if scale <= 0 {
		return fmt.Errorf("export: invalid scale %g", scale)
	}
	dc := Frame(width, height, scale, origin, draw)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logging.Logger().Info("frame exported", "path", path, "width", width, "height", height, "origin", origin.String())
	return nil
}
