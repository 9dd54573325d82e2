package geometry

import (
	"fmt"
	"math"

	"github.com/ivlev/orbitpath/internal/errs"
)

// GenerateCircle returns count evenly spaced points on the circle of the given
// radius around center, lying in the X-Z plane at the center's height.
// The first point sits on the +X axis and the walk is counter-clockwise in X-Z.
func GenerateCircle(center Point3D, radius float64, count int, rounding Rounding) ([]Point3D, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: point count must be at least 1, got %d", errs.ErrInvalidArgument, count)
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius must not be negative, got %g", errs.ErrInvalidArgument, radius)
	}

	points := make([]Point3D, 0, count)
	for i := 0; i < count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(count)
		points = append(points, Point3D{
			X: rounding.Apply(center.X + radius*math.Cos(angle)),
			Y: center.Y,
			Z: rounding.Apply(center.Z + radius*math.Sin(angle)),
		})
	}

	return points, nil
}

// CloseLoop appends the first point again so a traversal ends where it started.
func CloseLoop(points []Point3D) []Point3D {
	if len(points) == 0 {
		return points
	}
	return append(points, points[0])
}
