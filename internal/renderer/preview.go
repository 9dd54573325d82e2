package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/ivlev/orbitpath/internal/director"
	"github.com/ivlev/orbitpath/internal/geometry"
)

// PreviewOptions controls the top-down preview.
type PreviewOptions struct {
	Samples    int     // spline samples per keyframe segment
	Margin     float32 // pixels kept free around the drawing
	LineWidth  float32
	MarkerSize float32

	Background color.Color
	Curve      color.Color
	Keyframe   color.Color
	Start      color.Color
	Center     color.Color
}

// DefaultPreviewOptions returns the palette and sizes used by the CLI.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		Samples:    16,
		Margin:     24,
		LineWidth:  2,
		MarkerSize: 6,
		Background: color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff},
		Curve:      color.RGBA{R: 0x6c, G: 0xb4, B: 0xee, A: 0xff},
		Keyframe:   color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff},
		Start:      color.RGBA{R: 0x4c, G: 0xd1, B: 0x37, A: 0xff},
		Center:     color.RGBA{R: 0xee, G: 0x55, B: 0x55, A: 0xff},
	}
}

// Projection maps world X-Z coordinates onto preview pixels. North (-Z) is up.
type Projection struct {
	minX, minZ float64
	scale      float64
	offX, offY float32
}

// NewProjection fits the given points into a w by h canvas with margin.
func NewProjection(points []geometry.Point3D, w, h int, margin float32) Projection {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minZ, maxZ = math.Min(minZ, p.Z), math.Max(maxZ, p.Z)
	}

	availW := float64(w) - 2*float64(margin)
	availH := float64(h) - 2*float64(margin)
	spanX, spanZ := maxX-minX, maxZ-minZ

	scale := 1.0
	if spanX > 0 || spanZ > 0 {
		scale = math.Min(availW/math.Max(spanX, 1e-9), availH/math.Max(spanZ, 1e-9))
	}

	// center the drawing on the free axis
	return Projection{
		minX:  minX,
		minZ:  minZ,
		scale: scale,
		offX:  margin + float32((availW-spanX*scale)/2),
		offY:  margin + float32((availH-spanZ*scale)/2),
	}
}

// Map returns the pixel position of p.
func (pr Projection) Map(p geometry.Point3D) (x, y float32) {
	return pr.offX + float32((p.X-pr.minX)*pr.scale), pr.offY + float32((p.Z-pr.minZ)*pr.scale)
}

// RenderPreview draws a top-down view of path into dst: the interpolated
// camera track, a marker per keyframe with the first one highlighted, and a
// cross on the orbit center. It returns the projection used.
func RenderPreview(dst *image.RGBA, path *director.Path, center geometry.Point3D, opts PreviewOptions) (Projection, error) {
	if len(path.Rows) == 0 {
		return Projection{}, fmt.Errorf("path %q has no keyframes to preview", path.Name)
	}
	if opts.Samples < 1 {
		opts.Samples = 1
	}

	track := sampleTrack(path, opts.Samples)

	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	proj := NewProjection(append(track, center), w, h, opts.Margin)

	draw.Draw(dst, bounds, image.NewUniform(opts.Background), image.Point{}, draw.Src)

	r := vector.NewRasterizer(w, h)

	for i := 1; i < len(track); i++ {
		ax, ay := proj.Map(track[i-1])
		bx, by := proj.Map(track[i])
		addStroke(r, ax, ay, bx, by, opts.LineWidth)
	}
	fill(dst, r, opts.Curve)

	for _, row := range path.Rows[1:] {
		x, y := proj.Map(row.Position)
		r.Reset(w, h)
		addSquare(r, x, y, opts.MarkerSize)
		fill(dst, r, opts.Keyframe)
	}

	x, y := proj.Map(path.Rows[0].Position)
	r.Reset(w, h)
	addSquare(r, x, y, opts.MarkerSize*1.5)
	fill(dst, r, opts.Start)

	cx, cy := proj.Map(center)
	arm := opts.MarkerSize * 1.5
	r.Reset(w, h)
	addStroke(r, cx-arm, cy, cx+arm, cy, opts.LineWidth)
	addStroke(r, cx, cy-arm, cx, cy+arm, opts.LineWidth)
	fill(dst, r, opts.Center)

	return proj, nil
}

// WritePNG encodes img to file.
func WritePNG(img image.Image, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// sampleTrack walks the spline with n samples per keyframe segment.
func sampleTrack(path *director.Path, n int) []geometry.Point3D {
	rows := path.Rows
	track := []geometry.Point3D{rows[0].Position}
	for i := 1; i < len(rows); i++ {
		start, end := float64(rows[i-1].Time), float64(rows[i].Time)
		if end <= start {
			track = append(track, rows[i].Position)
			continue
		}
		for s := 1; s <= n; s++ {
			t := start + (end-start)*float64(s)/float64(n)
			track = append(track, Sample(path, t).Position)
		}
	}
	return track
}

func fill(dst *image.RGBA, r *vector.Rasterizer, c color.Color) {
	r.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// addStroke adds the quad covering a line of the given width from a to b.
func addStroke(r *vector.Rasterizer, ax, ay, bx, by, width float32) {
	dx, dy := bx-ax, by-ay
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	r.MoveTo(ax+nx, ay+ny)
	r.LineTo(bx+nx, by+ny)
	r.LineTo(bx-nx, by-ny)
	r.LineTo(ax-nx, ay-ny)
	r.ClosePath()
}

func addSquare(r *vector.Rasterizer, x, y, size float32) {
	half := size / 2
	r.MoveTo(x-half, y-half)
	r.LineTo(x+half, y-half)
	r.LineTo(x+half, y+half)
	r.LineTo(x-half, y+half)
	r.ClosePath()
}
