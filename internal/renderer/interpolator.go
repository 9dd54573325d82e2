package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/orbitpath/internal/director"
	"github.com/ivlev/orbitpath/internal/geometry"
)

// Alpha is the Catmull-Rom parameterization exponent: 0 uniform,
// 0.5 centripetal, 1 chordal. Documents declare the centripetal spline.
const Alpha = 0.5

// minKnot keeps coincident control points from producing zero-length knots.
const minKnot = 1e-4

// CameraState is the interpolated camera at a moment of playback.
type CameraState struct {
	Position geometry.Point3D
	Rotation geometry.Orientation
}

// Sample evaluates the camera along the path's Catmull-Rom spline at time t
// in milliseconds. Times outside the path clamp to its first or last row.
func Sample(path *director.Path, t float64) CameraState {
	rows := path.Rows
	if len(rows) == 0 {
		return CameraState{}
	}

	if t <= float64(rows[0].Time) {
		return stateOf(rows[0])
	}
	last := len(rows) - 1
	if t >= float64(rows[last].Time) {
		return stateOf(rows[last])
	}

	// Find the segment containing t; zero-length segments are skipped.
	i := 0
	for i < last-1 && t >= float64(rows[i+1].Time) {
		i++
	}
	start, end := float64(rows[i].Time), float64(rows[i+1].Time)
	if end <= start {
		return stateOf(rows[i+1])
	}
	frac := (t - start) / (end - start)

	// only the neighbours of the segment influence it
	lo, hi := max(i-1, 0), min(i+3, len(rows))
	pos := make([]mgl64.Vec3, 0, hi-lo)
	rot := make([]mgl64.Vec3, 0, hi-lo)
	for _, r := range rows[lo:hi] {
		pos = append(pos, r.Position.Vec3())
		rot = append(rot, mgl64.Vec3{r.Rotation.Yaw, r.Rotation.Pitch, r.Rotation.Roll})
	}

	p := segment(pos, i-lo, frac)
	r := segment(rot, i-lo, frac)

	return CameraState{
		Position: geometry.FromVec3(p),
		Rotation: geometry.Orientation{Yaw: r.X(), Pitch: r.Y(), Roll: r.Z()},
	}
}

func stateOf(r director.Row) CameraState {
	return CameraState{Position: r.Position, Rotation: r.Rotation}
}

// segment evaluates the spline between pts[i] and pts[i+1] at frac in [0, 1].
// Missing outer neighbours are mirrored through the segment end points.
func segment(pts []mgl64.Vec3, i int, frac float64) mgl64.Vec3 {
	p1, p2 := pts[i], pts[i+1]

	var p0, p3 mgl64.Vec3
	if i > 0 {
		p0 = pts[i-1]
	} else {
		p0 = p1.Mul(2).Sub(p2)
	}
	if i+2 < len(pts) {
		p3 = pts[i+2]
	} else {
		p3 = p2.Mul(2).Sub(p1)
	}

	return catmullRom(p0, p1, p2, p3, frac)
}

// catmullRom uses the Barry-Goldman pyramid so non-uniform knots need no
// special casing.
func catmullRom(p0, p1, p2, p3 mgl64.Vec3, frac float64) mgl64.Vec3 {
	t0 := 0.0
	t1 := t0 + knot(p0, p1)
	t2 := t1 + knot(p1, p2)
	t3 := t2 + knot(p2, p3)

	u := t1 + (t2-t1)*frac

	a1 := blend(p0, p1, t0, t1, u)
	a2 := blend(p1, p2, t1, t2, u)
	a3 := blend(p2, p3, t2, t3, u)

	b1 := blend(a1, a2, t0, t2, u)
	b2 := blend(a2, a3, t1, t3, u)

	return blend(b1, b2, t1, t2, u)
}

func knot(a, b mgl64.Vec3) float64 {
	return math.Max(math.Pow(b.Sub(a).Len(), Alpha), minKnot)
}

// blend interpolates between a at time ta and b at time tb.
func blend(a, b mgl64.Vec3, ta, tb, u float64) mgl64.Vec3 {
	w := (u - ta) / (tb - ta)
	return lerp(a, b, w)
}

// lerp performs linear interpolation between a and b
func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
