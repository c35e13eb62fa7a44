package enhance

import (
	"fmt"
	"math"
	"math/rand"
)

// Catalog ... the three proxy models placements can reference
type Catalog struct {
	Bench      string `json:"bench" yaml:"bench"`
	Deciduous  string `json:"deciduous" yaml:"deciduous"`
	Coniferous string `json:"coniferous" yaml:"coniferous"`
}

// DefaultCatalog returns the stock simulator models.
func DefaultCatalog() Catalog {
	return Catalog{
		Bench:      "model://FoodCourtBenchLong",
		Deciduous:  "model://Tree",
		Coniferous: "model://PineTree",
	}
}

// TreeModel picks the proxy model for a leaf class. Mixed resolves to
// deciduous; callers that alternate species do so before asking.
func (c Catalog) TreeModel(s Species) string {
	if s == Coniferous {
		return c.Coniferous
	}
	return c.Deciduous
}

// Placement ... one static proxy object to splice into the scene
type Placement struct {
	Name   string
	URI    string
	X      float64
	Y      float64
	Scale  float64
	Static bool
}

const (
	// woods above this footprint get a procedural stand of trees
	largeWoodArea = 5000.0

	// cap on synthesized trees per wood, one per 500 m2 up to this
	maxWoodTrees = 20

	woodGridCell  = 10.0
	woodJitter    = 5.0
	woodScaleLow  = 0.8
	woodScaleHigh = 1.3
)

// Centroid is the unweighted mean of the polygon's vertices.
func (w WoodPolygon) Centroid() FeaturePoint {
	var lat, lon float64
	for _, v := range w.Vertices {
		lat += v.Lat
		lon += v.Lon
	}
	n := float64(len(w.Vertices))
	return FeaturePoint{Lat: lat / n, Lon: lon / n}
}

// SynthesizeWood turns one wood polygon into proxy tree placements.
// Small woods get a single representative tree at the centroid. Large
// woods get a capped stand arranged on a jittered grid around it; a full
// per-tree fill would bury the simulation in collision objects without
// making the backdrop any more useful.
//
// The index is 1-based and only feeds placement naming.
func SynthesizeWood(index int, w WoodPolygon, proj *Projector, rng *rand.Rand, cat Catalog) []Placement {
	c := w.Centroid()
	cx, cy := proj.Project(c.Lat, c.Lon)

	if w.AreaM2 <= largeWoodArea {
		species := Deciduous
		if w.Species == Coniferous {
			species = Coniferous
		}
		scale := math.Min(2.0, math.Max(1.0, w.AreaM2/1000.0))

		return []Placement{{
			Name:   fmt.Sprintf("wood_%d", index),
			URI:    cat.TreeModel(species),
			X:      cx,
			Y:      cy,
			Scale:  scale,
			Static: true,
		}}
	}

	count := maxWoodTrees
	if n := int(w.AreaM2 / 500.0); n < count {
		count = n
	}
	gridSize := int(math.Sqrt(float64(count)))

	placements := make([]Placement, 0, count)
	for j := 0; j < count; j++ {
		row := j / gridSize
		col := j % gridSize

		offsetX := (float64(row) - float64(gridSize)/2) * woodGridCell
		offsetY := (float64(col) - float64(gridSize)/2) * woodGridCell

		jitterX := rng.Float64()*2*woodJitter - woodJitter
		jitterY := rng.Float64()*2*woodJitter - woodJitter

		species := w.Species
		if w.Species == Mixed {
			// alternate by index rather than sampling a ratio
			if j%2 == 0 {
				species = Deciduous
			} else {
				species = Coniferous
			}
		}

		placements = append(placements, Placement{
			Name:   fmt.Sprintf("tree_wood_%d_%d", index, j+1),
			URI:    cat.TreeModel(species),
			X:      cx + offsetX + jitterX,
			Y:      cy + offsetY + jitterY,
			Scale:  woodScaleLow + rng.Float64()*(woodScaleHigh-woodScaleLow),
			Static: true,
		})
	}

	return placements
}

// BuildPlacements lays out every extracted feature in the local frame:
// benches first, then individual trees, then the per-wood placements.
func BuildPlacements(f *Features, proj *Projector, rng *rand.Rand, cat Catalog) []Placement {
	var placements []Placement

	for i, bench := range f.Benches {
		x, y := proj.Project(bench.Lat, bench.Lon)
		placements = append(placements, Placement{
			Name:   fmt.Sprintf("bench_%d", i+1),
			URI:    cat.Bench,
			X:      x,
			Y:      y,
			Scale:  1.0,
			Static: true,
		})
	}

	for i, tree := range f.Trees {
		x, y := proj.Project(tree.Lat, tree.Lon)
		placements = append(placements, Placement{
			Name: fmt.Sprintf("tree_%d", i+1),
			URI:  cat.TreeModel(tree.Species),
			X:    x,
			Y:    y,
			// proxy models are authored at the 5 m default height
			Scale:  tree.Height / defaultTreeHeight,
			Static: true,
		})
	}

	for i, wood := range f.Woods {
		placements = append(placements, SynthesizeWood(i+1, wood, proj, rng, cat)...)
	}

	return placements
}
