// Package terrain provides the analytic height field, the path classifier and
// the ground mesh built from them.
package terrain

import "github.com/Faultbox/wildmere/pkg/math"

// Sample is the terrain surface at one (x, z) location.
type Sample struct {
	Elevation float32
	Normal    math.Vec3
}

// GroundStats reports how many ground cells were built and how many were path.
type GroundStats struct {
	Cells     int `yaml:"cells" json:"cells"`
	PathCells int `yaml:"path_cells" json:"path_cells"`
}
