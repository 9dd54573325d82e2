package director

import "github.com/ivlev/orbitpath/internal/geometry"

// Path is an ordered camera trajectory. Row order is playback order.
type Path struct {
	Name     string `yaml:"name"`
	Duration int    `yaml:"duration_ms"` // length of one revolution in ms
	Rows     []Row  `yaml:"rows"`
}

// Row is a single camera keyframe.
type Row struct {
	Time     int                  `yaml:"time"` // ms offset from path start
	Position geometry.Point3D     `yaml:"position"`
	Rotation geometry.Orientation `yaml:"rotation"`
}

// End returns the time of the last row, or 0 for an empty path.
func (p *Path) End() int {
	if len(p.Rows) == 0 {
		return 0
	}
	return p.Rows[len(p.Rows)-1].Time
}
