package terrain

import (
	"github.com/trailforge/terravista/internal/dem"
	"github.com/trailforge/terravista/internal/track"
	"github.com/trailforge/terravista/pkg/math"
)

// ProjectTrack drapes track samples onto the terrain: each point takes the
// nearest grid cell's height (clamped at the edges) rather than the GPS
// elevation, then is lifted above the surface so the line stays visible.
// Sample coordinates must share the grid's world frame; for geographic
// grids that is (lon, lat) degrees. lift is in scene units.
func ProjectTrack(grid *dem.Grid, frame Frame, samples []track.Sample, lift float32) []math.Vec3 {
	points := make([]math.Vec3, len(samples))
	for i, s := range samples {
		h := grid.SampleWorld(s.Lon, s.Lat)
		p := frame.Project(s.Lon, s.Lat, h)
		p.Z += lift
		points[i] = p
	}
	return points
}
