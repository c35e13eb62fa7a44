package enhance

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/paulmach/osm"
)

func fixedRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func centeredProjector() *Projector {
	return NewProjector(testDoc(&osm.Node{ID: 1, Lat: 45.0, Lon: 9.0}), 1.0)
}

// woodOfArea builds a polygon around (45, 9) with AreaM2 set directly;
// the synthesizer trusts the measured area, not the vertex geometry
func woodOfArea(area float64, species Species) WoodPolygon {
	return WoodPolygon{
		Vertices: []FeaturePoint{
			{Lat: 44.9995, Lon: 8.9995},
			{Lat: 45.0005, Lon: 8.9995},
			{Lat: 45.0005, Lon: 9.0005},
			{Lat: 44.9995, Lon: 9.0005},
		},
		Species: species,
		AreaM2:  area,
	}
}

func TestSmallWoodSinglePlacement(t *testing.T) {
	proj := centeredProjector()
	cat := DefaultCatalog()

	cases := []struct {
		area      float64
		wantScale float64
	}{
		{400, 1.0},
		{1500, 1.5},
		{5000, 2.0},
	}

	for _, c := range cases {
		placements := SynthesizeWood(1, woodOfArea(c.area, Coniferous), proj, fixedRand(), cat)

		if len(placements) != 1 {
			t.Fatalf("area %v: expected a single placement, got %d", c.area, len(placements))
		}
		p := placements[0]
		if p.Name != "wood_1" {
			t.Errorf("area %v: bad name %q", c.area, p.Name)
		}
		if p.URI != cat.Coniferous {
			t.Errorf("area %v: expected coniferous model, got %q", c.area, p.URI)
		}
		if math.Abs(p.Scale-c.wantScale) > 1e-9 {
			t.Errorf("area %v: scale %v, want %v", c.area, p.Scale, c.wantScale)
		}
		if p.Scale < 1.0 || p.Scale > 2.0 {
			t.Errorf("area %v: scale %v outside [1, 2]", c.area, p.Scale)
		}
	}
}

func TestSmallWoodMixedUsesDeciduous(t *testing.T) {
	cat := DefaultCatalog()
	placements := SynthesizeWood(1, woodOfArea(900, Mixed), centeredProjector(), fixedRand(), cat)

	if len(placements) != 1 || placements[0].URI != cat.Deciduous {
		t.Errorf("mixed small wood should use the deciduous model, got %+v", placements)
	}
}

func TestLargeWoodPlacementCount(t *testing.T) {
	proj := centeredProjector()
	cat := DefaultCatalog()

	cases := []struct {
		area float64
		want int
	}{
		{6400, 12},
		{9999, 19},
		{12100, 20},
		{1e6, 20},
	}

	for _, c := range cases {
		placements := SynthesizeWood(1, woodOfArea(c.area, Deciduous), proj, fixedRand(), cat)
		if len(placements) != c.want {
			t.Errorf("area %v: got %d placements, want %d", c.area, len(placements), c.want)
		}
		if len(placements) > 20 {
			t.Errorf("area %v: placement cap of 20 violated", c.area)
		}
	}
}

func TestLargeWoodJitterAndScaleBounds(t *testing.T) {
	proj := centeredProjector()
	wood := woodOfArea(12100, Deciduous)

	c := wood.Centroid()
	cx, cy := proj.Project(c.Lat, c.Lon)

	placements := SynthesizeWood(1, wood, proj, fixedRand(), DefaultCatalog())

	// 20 trees on a 4-wide grid: at most 2.5 cells from center plus jitter
	maxOffset := 3*woodGridCell + woodJitter

	for _, p := range placements {
		if math.Abs(p.X-cx) > maxOffset || math.Abs(p.Y-cy) > maxOffset {
			t.Errorf("%s placed too far from centroid: (%v, %v)", p.Name, p.X-cx, p.Y-cy)
		}
		if p.Scale < woodScaleLow || p.Scale > woodScaleHigh {
			t.Errorf("%s scale %v outside [%v, %v]", p.Name, p.Scale, woodScaleLow, woodScaleHigh)
		}
		if !p.Static {
			t.Errorf("%s must be static", p.Name)
		}
	}
}

func TestLargeWoodMixedAlternation(t *testing.T) {
	cat := DefaultCatalog()
	placements := SynthesizeWood(1, woodOfArea(12100, Mixed), centeredProjector(), fixedRand(), cat)

	for j, p := range placements {
		want := cat.Deciduous
		if j%2 == 1 {
			want = cat.Coniferous
		}
		if p.URI != want {
			t.Errorf("placement %d: got %q, want %q", j, p.URI, want)
		}
	}
}

func TestLargeWoodNaming(t *testing.T) {
	placements := SynthesizeWood(3, woodOfArea(12100, Deciduous), centeredProjector(), fixedRand(), DefaultCatalog())

	if placements[0].Name != "tree_wood_3_1" {
		t.Errorf("got %q", placements[0].Name)
	}
	if placements[len(placements)-1].Name != "tree_wood_3_20" {
		t.Errorf("got %q", placements[len(placements)-1].Name)
	}
}

func TestBuildPlacementsOrderAndNames(t *testing.T) {
	features := parseFixture(t, "nature.osm")
	doc := testDoc(&osm.Node{ID: 1, Lat: 45.0, Lon: 9.0})
	proj := NewProjector(doc, 1.0)

	placements := BuildPlacements(features, proj, fixedRand(), DefaultCatalog())

	if len(placements) == 0 {
		t.Fatalf("expected placements")
	}

	// benches first, then trees, then wood output
	if placements[0].Name != "bench_1" {
		t.Errorf("first placement should be bench_1, got %q", placements[0].Name)
	}
	if placements[1].Name != "tree_1" {
		t.Errorf("second placement should be tree_1, got %q", placements[1].Name)
	}

	seen := make(map[string]bool)
	for _, p := range placements {
		if seen[p.Name] {
			t.Errorf("duplicate placement name %q", p.Name)
		}
		seen[p.Name] = true

		if p.Scale <= 0 {
			t.Errorf("%s has non-positive scale %v", p.Name, p.Scale)
		}
		if !strings.HasPrefix(p.URI, "model://") {
			t.Errorf("%s has unexpected model uri %q", p.Name, p.URI)
		}
	}
}

func TestBuildPlacementsTreeScale(t *testing.T) {
	features := parseFixture(t, "nature.osm")
	proj := NewProjector(testDoc(&osm.Node{ID: 1, Lat: 45.0, Lon: 9.0}), 1.0)

	placements := BuildPlacements(features, proj, fixedRand(), DefaultCatalog())

	var tree2 *Placement
	for i := range placements {
		if placements[i].Name == "tree_2" {
			tree2 = &placements[i]
		}
	}
	if tree2 == nil {
		t.Fatalf("tree_2 not placed")
	}

	// 12.5 m mapped height against the 5 m default model
	if math.Abs(tree2.Scale-2.5) > 1e-9 {
		t.Errorf("tree_2 scale %v, want 2.5", tree2.Scale)
	}
	if tree2.URI != DefaultCatalog().Coniferous {
		t.Errorf("tree_2 should be coniferous, got %q", tree2.URI)
	}
}
