package enhance

import (
	"encoding/json"
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"
)

// FeatureCollection converts an extracted feature set into GeoJSON so a
// run can be inspected in ordinary GIS tooling. Benches and trees become
// point features, woods become polygons with their measured footprint.
func FeatureCollection(f *Features) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, bench := range f.Benches {
		feat := geojson.NewPointFeature([]float64{bench.Lon, bench.Lat})
		feat.SetProperty("styletype", "bench")
		fc.AddFeature(feat)
	}

	for _, tree := range f.Trees {
		feat := geojson.NewPointFeature([]float64{tree.Lon, tree.Lat})
		feat.SetProperty("styletype", "tree")
		feat.SetProperty("species", tree.Species.String())
		feat.SetProperty("height", tree.Height)
		fc.AddFeature(feat)
	}

	for _, wood := range f.Woods {
		ring := make([][]float64, 0, len(wood.Vertices)+1)
		for _, v := range wood.Vertices {
			ring = append(ring, []float64{v.Lon, v.Lat})
		}
		// geojson rings close back on the first coordinate
		ring = append(ring, []float64{wood.Vertices[0].Lon, wood.Vertices[0].Lat})

		feat := geojson.NewPolygonFeature([][][]float64{ring})
		feat.SetProperty("styletype", "wood")
		feat.SetProperty("species", wood.Species.String())
		feat.SetProperty("area", wood.AreaM2)
		fc.AddFeature(feat)
	}

	return fc
}

// WriteGeoJSON marshals the feature set to a GeoJSON file.
func WriteGeoJSON(path string, f *Features) error {
	raw, err := json.Marshal(FeatureCollection(f))
	if err != nil {
		return fmt.Errorf("[WriteGeoJSON] in pkg [enhance] encountered: %v", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("[WriteGeoJSON] in pkg [enhance] encountered: %v", err)
	}

	return nil
}
