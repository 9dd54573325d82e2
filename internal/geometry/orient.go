package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/orbitpath/internal/errs"
)

// Orient returns the rotation that makes a camera at point look at center.
//
// Yaw follows the Minecraft convention (0 faces +Z, -90 faces +X). Pitch is the
// elevation of the center as seen from the camera. Both are rounded to two
// decimals and roll is always zero.
func Orient(point, center Point3D) (Orientation, error) {
	d := center.Vec3().Sub(point.Vec3())
	distance := d.Len()
	if distance == 0 {
		return Orientation{}, fmt.Errorf("%w: camera at %s coincides with center", errs.ErrDomain, point)
	}

	yaw := mgl64.RadToDeg(math.Atan2(d.Z(), d.X())) - 90
	pitch := mgl64.RadToDeg(math.Asin(d.Y() / distance))

	return Orientation{
		Yaw:   roundTo(yaw, 2),
		Pitch: roundTo(pitch, 2),
		Roll:  0,
	}, nil
}
