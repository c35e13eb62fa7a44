package enhance

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Species ... the leaf class of a tree or wooded area
type Species int

const (
	Deciduous Species = iota
	Coniferous
	Mixed
)

func (s Species) String() string {
	return [...]string{"deciduous", "coniferous", "mixed"}[s]
}

// FeaturePoint ... a single lat/lon feature (bench or tree position)
type FeaturePoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// TreePoint ... an individual tree with its leaf class and mapped height
type TreePoint struct {
	FeaturePoint
	Species Species `json:"species" yaml:"species"`
	Height  float64 `json:"height" yaml:"height"`
}

// WoodPolygon ... a closed wood/forest outline with its estimated footprint
type WoodPolygon struct {
	Vertices []FeaturePoint `json:"vertices" yaml:"vertices"`
	Species  Species        `json:"species" yaml:"species"`
	AreaM2   float64        `json:"area" yaml:"area"`
}

// Features ... everything pulled out of one OSM document in a single pass
type Features struct {
	Benches []FeaturePoint
	Trees   []TreePoint
	Woods   []WoodPolygon

	// Bound grows with every feature coordinate seen, in lon/lat order.
	// Nil when the document held no features at all.
	Bound *orb.Bound

	// counts of degenerate data tolerated during extraction
	SkippedRefs   int
	DiscardedWays int
}

const defaultTreeHeight = 5.0

// Empty reports whether extraction found nothing to place.
func (f *Features) Empty() bool {
	return len(f.Benches) == 0 && len(f.Trees) == 0 && len(f.Woods) == 0
}

// TotalWoodArea sums the footprint of every retained wood in square meters.
func (f *Features) TotalWoodArea() float64 {
	var total float64
	for _, w := range f.Woods {
		total += w.AreaM2
	}
	return total
}

// ParseOSM decodes an OSM XML document from the reader.
func ParseOSM(contents io.Reader) (*osm.OSM, error) {
	raw, err := io.ReadAll(contents)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, errors.New("no data in document")
	}

	var doc osm.OSM
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// ExtractFeatures scans every node and way of the document and classifies
// them into benches, individual trees and wood polygons. Wood areas are
// flattened with the projector and measured with the shoelace formula.
func ExtractFeatures(doc *osm.OSM, proj *Projector) *Features {
	var out Features

	// one-time node index, ways resolve their nd refs against this
	// instead of re-scanning the whole document per reference
	index := make(map[osm.NodeID]FeaturePoint, len(doc.Nodes))

	for _, node := range doc.Nodes {
		pt := FeaturePoint{Lat: node.Lat, Lon: node.Lon}
		index[node.ID] = pt

		if node.Tags.Find("amenity") == "bench" {
			out.Benches = append(out.Benches, pt)
			out.extend(pt)
		}

		if node.Tags.Find("natural") == "tree" {
			tree := TreePoint{FeaturePoint: pt, Species: Deciduous, Height: defaultTreeHeight}

			if node.Tags.Find("leaf_type") == "needleleaved" {
				tree.Species = Coniferous
			}
			if v := node.Tags.Find("height"); v != "" {
				h, err := strconv.ParseFloat(v, 64)
				if err != nil {
					// mapped height is junk, keep the default
					h = defaultTreeHeight
				}
				tree.Height = h
			}

			out.Trees = append(out.Trees, tree)
			out.extend(pt)
		}
	}

	for _, way := range doc.Ways {
		isWood, species := classifyWood(way.Tags)
		if !isWood {
			continue
		}

		var vertices []FeaturePoint
		for _, nd := range way.Nodes {
			pt, ok := index[nd.ID]
			if !ok {
				// unresolvable ref, build the polygon from what remains
				out.SkippedRefs++
				continue
			}
			vertices = append(vertices, pt)
		}

		if len(vertices) < 3 {
			out.DiscardedWays++
			continue
		}

		wood := WoodPolygon{
			Vertices: vertices,
			Species:  species,
			AreaM2:   proj.PolygonArea(vertices),
		}
		out.Woods = append(out.Woods, wood)
		for _, v := range vertices {
			out.extend(v)
		}
	}

	return &out
}

// classifyWood decides whether the way's tags mark a wood/forest and
// which leaf class it carries. Unlabelled woods default to mixed.
func classifyWood(tags osm.Tags) (bool, Species) {
	isWood := false
	species := Mixed

	for _, tag := range tags {
		if (tag.Key == "natural" && tag.Value == "wood") ||
			(tag.Key == "landuse" && tag.Value == "forest") {
			isWood = true
		}

		if tag.Key == "wood" || tag.Key == "leaf_type" {
			switch tag.Value {
			case "deciduous", "broadleaved":
				species = Deciduous
			case "coniferous", "needleleaved":
				species = Coniferous
			case "mixed":
				species = Mixed
			}
		}
	}

	return isWood, species
}

// extend grows the feature bound with another coordinate
func (f *Features) extend(pt FeaturePoint) {
	p := orb.Point{pt.Lon, pt.Lat}
	if f.Bound == nil {
		f.Bound = &orb.Bound{Min: p, Max: p}
		return
	}
	b := f.Bound.Extend(p)
	f.Bound = &b
}
