// Package replay converts path tables into ReplayMod camera path documents.
//
// A document maps a path name to two timelines. The first drives the replay
// clock with a linear timestamp track. The second carries the camera
// keyframes and is interpolated with a centripetal Catmull-Rom spline.
package replay

import (
	"encoding/json"
	"fmt"
)

const (
	PropertyTimestamp = "timestamp"
	PropertyRotation  = "camera:rotation"
	PropertyPosition  = "camera:position"

	InterpolatorLinear     = "linear"
	InterpolatorCatmullRom = "catmull-rom-spline"

	// CatmullRomAlpha selects the centripetal variant of the spline.
	CatmullRomAlpha = 0.5

	// Replay clock values the timestamp track runs between.
	TimestampStart = 1000
	TimestampEnd   = 2000
)

// Document is the top-level paths object, keyed by path name.
type Document map[string][]Timeline

// Timeline is one keyframe track with its segment map and interpolators.
type Timeline struct {
	Keyframes     []Keyframe     `json:"keyframes"`
	Segments      []int          `json:"segments"`
	Interpolators []Interpolator `json:"interpolators"`
}

// Keyframe is a point in time carrying property values.
type Keyframe struct {
	Time       int        `json:"time"`
	Properties Properties `json:"properties"`
}

// Properties holds the values a keyframe sets. Field order fixes the order
// of keys in the output.
type Properties struct {
	Timestamp *int        `json:"timestamp,omitempty"`
	Rotation  *[3]float64 `json:"camera:rotation,omitempty"`
	Position  *[3]float64 `json:"camera:position,omitempty"`
}

// Interpolator binds an interpolation type to the properties it drives.
type Interpolator struct {
	Type       InterpolatorType `json:"type"`
	Properties []string         `json:"properties"`
}

// InterpolatorType is written as a bare string when it has no parameters and
// as an object otherwise.
type InterpolatorType struct {
	Name  string
	Alpha *float64
}

func (t InterpolatorType) MarshalJSON() ([]byte, error) {
	if t.Alpha == nil {
		return json.Marshal(t.Name)
	}
	return json.Marshal(struct {
		Type  string  `json:"type"`
		Alpha float64 `json:"alpha"`
	}{t.Name, *t.Alpha})
}

func (t *InterpolatorType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*t = InterpolatorType{Name: name}
		return nil
	}

	var obj struct {
		Type  string   `json:"type"`
		Alpha *float64 `json:"alpha"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("interpolator type: %w", err)
	}
	*t = InterpolatorType{Name: obj.Type, Alpha: obj.Alpha}
	return nil
}

// Linear returns the parameterless linear interpolator type.
func Linear() InterpolatorType {
	return InterpolatorType{Name: InterpolatorLinear}
}

// CatmullRom returns a Catmull-Rom spline type with the given alpha.
func CatmullRom(alpha float64) InterpolatorType {
	return InterpolatorType{Name: InterpolatorCatmullRom, Alpha: &alpha}
}
