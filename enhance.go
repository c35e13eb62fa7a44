// Package enhance patches simulator world files generated from
// OpenStreetMap extracts with the nature features the mesh conversion
// leaves behind: benches, individual trees, and proxy stands for wooded
// areas. One pass reads the OSM document, flattens coordinates into the
// world's local frame, synthesizes placements, and splices them into the
// world file before its closing tag.
package enhance

import (
	"fmt"
	"math/rand"
	"os"
	"time"
)

// Options ... knobs for one enhancement run
type Options struct {
	// Scale must match the uniform factor applied to the terrain mesh
	// by the upstream conversion, otherwise placements drift off it.
	Scale float64

	// Catalog overrides the stock proxy models. Zero value means stock.
	Catalog Catalog

	// Rand drives placement jitter and sizing inside large woods. Nil
	// means a time-seeded source; tests inject a fixed seed.
	Rand *rand.Rand

	// GeoJSONPath, when set, additionally exports the extracted feature
	// set as GeoJSON for inspection.
	GeoJSONPath string
}

// Result ... outcome of one enhancement run
type Result struct {
	Summary Summary

	// Placed is how many proxy objects went into the world file.
	Placed int

	// Patched is false for the benign no-feature case.
	Patched bool
}

// Enhance reads the OSM document, extracts nature features, and patches
// the world file with proxy placements. A document with no recognized
// features is a no-op, not an error. The world file is backed up to a
// .bak sibling before it is overwritten.
func Enhance(osmPath, worldPath string, opts Options) (*Result, error) {
	if opts.Scale == 0 {
		opts.Scale = 1.0
	}
	if opts.Catalog == (Catalog{}) {
		opts.Catalog = DefaultCatalog()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if _, err := os.Stat(worldPath); err != nil {
		return nil, fmt.Errorf("world file not found: %s", worldPath)
	}

	contents, err := os.Open(osmPath)
	if err != nil {
		return nil, fmt.Errorf("[Enhance] in pkg [enhance] encountered: %v", err)
	}
	defer contents.Close()

	doc, err := ParseOSM(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to extract features: %v", err)
	}

	proj := NewProjector(doc, opts.Scale)
	features := ExtractFeatures(doc, proj)

	res := Result{Summary: Summarize(features)}

	if features.Empty() {
		return &res, nil
	}

	if opts.GeoJSONPath != "" {
		if err := WriteGeoJSON(opts.GeoJSONPath, features); err != nil {
			return &res, err
		}
	}

	placements := BuildPlacements(features, proj, rng, opts.Catalog)

	if err := PatchWorld(worldPath, RenderPlacements(placements)); err != nil {
		return &res, err
	}

	res.Placed = len(placements)
	res.Patched = true

	return &res, nil
}
