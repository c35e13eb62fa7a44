package enhance

import (
	"github.com/golang/geo/s2"
	geo "github.com/paulmach/go.geo"
	"github.com/paulmach/orb"
)

// MaxPlanarExtent is how far, corner to corner, an extract can stretch
// before the flat-earth frame of the Projector visibly drifts from the
// generated mesh. Beyond this the run still proceeds, it just warns.
const MaxPlanarExtent = 50000.0

// Summary ... what one extraction pass found, for console reporting
type Summary struct {
	BenchCount int
	TreeCount  int
	WoodCount  int
	WoodAreaM2 float64

	// geographic identification of the extract
	Center    *FeaturePoint
	DiagonalM float64
	S2Tokens  []string

	SkippedRefs   int
	DiscardedWays int
}

// Summarize condenses an extracted feature set for reporting.
func Summarize(f *Features) Summary {
	s := Summary{
		BenchCount:    len(f.Benches),
		TreeCount:     len(f.Trees),
		WoodCount:     len(f.Woods),
		WoodAreaM2:    f.TotalWoodArea(),
		SkippedRefs:   f.SkippedRefs,
		DiscardedWays: f.DiscardedWays,
	}

	if f.Bound != nil {
		c := f.Bound.Center()
		s.Center = &FeaturePoint{Lat: c.Lat(), Lon: c.Lon()}
		s.DiagonalM = boundDiagonal(*f.Bound)
		s.S2Tokens = s2Covering(*f.Bound)
	}

	return s
}

// ExceedsPlanarExtent reports whether the extract is too wide for the
// equirectangular approximation to stay honest.
func (s Summary) ExceedsPlanarExtent() bool {
	return s.DiagonalM > MaxPlanarExtent
}

// boundDiagonal measures the great-circle distance between the bound
// corners in meters
func boundDiagonal(b orb.Bound) float64 {
	lo := geo.NewPoint(b.Min.Lon(), b.Min.Lat())
	hi := geo.NewPoint(b.Max.Lon(), b.Max.Lat())
	return lo.GeoDistanceFrom(hi, true)
}

// s2Covering finds the s2 hash keys that represent the geographic
// coverage of the extract's bound
func s2Covering(b orb.Bound) []string {
	var s2hash []string

	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(b.Min.Lat(), b.Min.Lon()))
	rect = rect.AddPoint(s2.LatLngFromDegrees(b.Max.Lat(), b.Max.Lon()))

	for _, cellid := range rect.CellUnionBound() {
		token := cellid.ToToken()
		if len(token) > 8 {
			runes := []rune(token)
			token = string(runes[0:8])
		}

		s2hash = append(s2hash, token)
	}

	return s2hash
}
