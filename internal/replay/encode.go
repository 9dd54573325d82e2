package replay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/ivlev/orbitpath/internal/director"
	"github.com/ivlev/orbitpath/internal/errs"
)

const indent = "   "

// NewDocument lays out a path as a document with a single entry under the
// path's name. Every number is checked before anything is built, so a
// non-finite coordinate yields an error instead of a partial document.
func NewDocument(path *director.Path) (Document, error) {
	if err := checkFinite(path); err != nil {
		return nil, err
	}

	start, end := TimestampStart, TimestampEnd
	clock := Timeline{
		Keyframes: []Keyframe{
			{Time: 0, Properties: Properties{Timestamp: &start}},
			{Time: path.Duration, Properties: Properties{Timestamp: &end}},
		},
		Segments: []int{0},
		Interpolators: []Interpolator{
			{Type: Linear(), Properties: []string{PropertyTimestamp}},
		},
	}

	camera := Timeline{
		Keyframes: make([]Keyframe, 0, len(path.Rows)),
		Segments:  make([]int, len(path.Rows)),
		Interpolators: []Interpolator{
			{
				Type:       CatmullRom(CatmullRomAlpha),
				Properties: []string{PropertyRotation, PropertyPosition},
			},
		},
	}
	for _, row := range path.Rows {
		rot := row.Rotation.Array()
		pos := row.Position.Array()
		camera.Keyframes = append(camera.Keyframes, Keyframe{
			Time:       row.Time,
			Properties: Properties{Rotation: &rot, Position: &pos},
		})
	}

	return Document{path.Name: {clock, camera}}, nil
}

// Encode renders a path as document JSON indented by three spaces.
func Encode(path *director.Path) ([]byte, error) {
	doc, err := NewDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Marshal()
}

// Marshal renders the document as JSON indented by three spaces, without a
// trailing newline.
func (d Document) Marshal() ([]byte, error) {
	return marshal(d)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) {
			return nil, fmt.Errorf("%w: %v", errs.ErrEncoding, err)
		}
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func checkFinite(path *director.Path) error {
	for i, row := range path.Rows {
		pos, rot := row.Position.Array(), row.Rotation.Array()
		for _, v := range append(pos[:], rot[:]...) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: path %q row %d: non-finite value %v", errs.ErrEncoding, path.Name, i, v)
			}
		}
	}
	return nil
}
