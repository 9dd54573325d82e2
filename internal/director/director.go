package director

import (
	"fmt"
	"math"

	"github.com/ivlev/orbitpath/internal/config"
	"github.com/ivlev/orbitpath/internal/errs"
	"github.com/ivlev/orbitpath/internal/geometry"
)

// BuildPath generates the orbit described by cfg, faces every point at the
// center and stamps each row with its time.
//
// Rows i in [0, count) get round(i*duration/count), halves to even. A closed loop adds the
// first point again at the full duration. ExtraCount trailing rows then
// repeat the first rows of the table, each one interval after the last.
func BuildPath(cfg config.Path, rounding geometry.Rounding) (*Path, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	points, err := geometry.GenerateCircle(cfg.Center, cfg.Radius, cfg.Count, rounding)
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", cfg.Name, err)
	}
	if cfg.CloseLoop {
		points = geometry.CloseLoop(points)
	}

	if cfg.ExtraCount > len(points) {
		return nil, fmt.Errorf("%w: path %q: %d extra rows requested, only %d available",
			errs.ErrConfigurationExhausted, cfg.Name, cfg.ExtraCount, len(points))
	}

	interval := float64(cfg.DurationMs) / float64(cfg.Count)
	rows := make([]Row, 0, len(points)+cfg.ExtraCount)

	for i, pt := range points {
		rot, err := geometry.Orient(pt, cfg.Center)
		if err != nil {
			return nil, fmt.Errorf("path %q row %d: %w", cfg.Name, i, err)
		}
		rows = append(rows, Row{
			Time:     int(math.RoundToEven(float64(i) * interval)),
			Position: pt,
			Rotation: rot,
		})
	}

	rows = appendExtraRows(rows, cfg.ExtraCount, interval)

	return &Path{
		Name:     cfg.Name,
		Duration: cfg.DurationMs,
		Rows:     rows,
	}, nil
}

// appendExtraRows repeats the first n rows after the end of the table. Times
// advance by interval from a running cursor so rounding does not drift, and
// each row is kept at least 1 ms after its predecessor.
func appendExtraRows(rows []Row, n int, interval float64) []Row {
	if n == 0 {
		return rows
	}

	// continue the exact grid rather than the rounded last value
	cursor := float64(len(rows)-1) * interval

	for i := 0; i < n; i++ {
		cursor += interval
		t := int(math.RoundToEven(cursor))
		if prev := rows[len(rows)-1].Time; t <= prev {
			t = prev + 1
		}
		extra := rows[i]
		extra.Time = t
		rows = append(rows, extra)
	}
	return rows
}
