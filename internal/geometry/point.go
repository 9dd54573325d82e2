package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ivlev/orbitpath/internal/errs"
)

// Point3D is a world position in block coordinates.
type Point3D struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
	Z float64 `yaml:"z" toml:"z"`
}

// Vec3 returns the point as an mgl64 vector.
func (p Point3D) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

// FromVec3 converts an mgl64 vector back into a point.
func FromVec3(v mgl64.Vec3) Point3D {
	return Point3D{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Array returns the point as the [x, y, z] triple used on the wire.
func (p Point3D) Array() [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

func (p Point3D) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Orientation is a camera rotation in degrees.
type Orientation struct {
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
	Roll  float64 `yaml:"roll"`
}

// Array returns the orientation as the [yaw, pitch, roll] triple used on the wire.
func (o Orientation) Array() [3]float64 {
	return [3]float64{o.Yaw, o.Pitch, o.Roll}
}

// Rounding selects how generated circle coordinates are rounded.
type Rounding string

const (
	// RoundInteger snaps coordinates to whole blocks.
	RoundInteger Rounding = "integer"
	// RoundDecimal keeps four decimal places, which gives a smoother circle.
	RoundDecimal Rounding = "decimal"
	// RoundExact leaves coordinates untouched.
	RoundExact Rounding = "exact"
)

// DefaultRounding is the policy used when none is configured.
const DefaultRounding = RoundInteger

// ParseRounding resolves a policy name. The empty string selects DefaultRounding.
func ParseRounding(name string) (Rounding, error) {
	switch Rounding(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultRounding, nil
	case RoundInteger, "int":
		return RoundInteger, nil
	case RoundDecimal, "4dp":
		return RoundDecimal, nil
	case RoundExact, "none":
		return RoundExact, nil
	default:
		return "", fmt.Errorf("%w: unknown rounding policy %q", errs.ErrInvalidArgument, name)
	}
}

// Apply rounds v according to the policy.
func (r Rounding) Apply(v float64) float64 {
	switch r {
	case RoundDecimal:
		return roundTo(v, 4)
	case RoundExact:
		return v
	default:
		return roundTo(v, 0)
	}
}

// roundTo rounds to the given number of decimals, halves to even.
// Negative zero is folded into zero so it never shows up as "-0" in output.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	r := math.RoundToEven(v*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}
