package enhance

import (
	"math"

	"github.com/paulmach/osm"
)

// EarthRadius in meters, shared by the planar approximation below.
const EarthRadius = 6371000.0

const degToRad = math.Pi / 180.0

// Projector flattens lat/lon into a local planar frame in meters. The
// frame is anchored at the first node of the document and scaled by the
// same uniform factor applied to the generated terrain mesh, so placed
// objects line up with it.
//
// The projection is a plain equirectangular approximation. It is only
// meant for map extracts that are tiny compared to the Earth's radius;
// there is no datum handling and no high-latitude correction.
type Projector struct {
	RefLat float64
	RefLon float64
	Scale  float64

	hasRef bool
}

// NewProjector anchors a projector at the first node of the document.
// A document without nodes yields a projector that treats every queried
// point as its own reference.
func NewProjector(doc *osm.OSM, scale float64) *Projector {
	proj := Projector{Scale: scale}

	if doc != nil && len(doc.Nodes) > 0 {
		proj.RefLat = doc.Nodes[0].Lat
		proj.RefLon = doc.Nodes[0].Lon
		proj.hasRef = true
	}

	return &proj
}

// Project converts lat/lon into local x/y meters relative to the reference.
func (p *Projector) Project(lat, lon float64) (float64, float64) {
	refLat, refLon := p.RefLat, p.RefLon
	if !p.hasRef {
		// degenerate single-feature document, the point is its own origin
		refLat, refLon = lat, lon
	}

	x := EarthRadius * (lon - refLon) * degToRad * p.Scale * math.Cos(lat*degToRad)
	y := EarthRadius * (lat - refLat) * degToRad * p.Scale

	return x, y
}

// PolygonArea flattens the vertices and measures the enclosed area in
// square meters with the shoelace formula. Fewer than three vertices is
// no polygon and measures zero.
func (p *Projector) PolygonArea(vertices []FeaturePoint) float64 {
	n := len(vertices)
	if n < 3 {
		return 0
	}

	flat := make([][2]float64, n)
	for i, v := range vertices {
		x, y := p.Project(v.Lat, v.Lon)
		flat[i] = [2]float64{x, y}
	}

	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += flat[i][0] * flat[j][1]
		area -= flat[j][0] * flat[i][1]
	}

	return math.Abs(area) / 2.0
}
