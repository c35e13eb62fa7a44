package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/godeepar/enhance"
	"github.com/godeepar/enhance/config"
	"github.com/godeepar/enhance/console"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: enhance [flags] <osm_file> <world_file>\n\n")
	fmt.Fprintf(os.Stderr, "Patches a simulator world generated from an OSM extract with the\n")
	fmt.Fprintf(os.Stderr, "nature features the mesh conversion leaves out.\n\n")
	flag.PrintDefaults()
}

func main() {
	scale := flag.Float64("scale", 1.0, "uniform scale factor, must match the mesh conversion")
	seed := flag.Int64("seed", 0, "fixed seed for placement randomness (0 = time-seeded)")
	cfgPath := flag.String("config", "", "optional YAML run descriptor")
	geojsonPath := flag.String("geojson", "", "also export extracted features as GeoJSON here")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	osmFile := flag.Arg(0)
	worldFile := flag.Arg(1)

	run := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			console.Error("%v", err)
			os.Exit(2)
		}
		run = loaded
	}

	// explicit flags win over the descriptor
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scale":
			run.Scale = *scale
		case "seed":
			run.Seed = *seed
		case "geojson":
			run.GeoJSON = *geojsonPath
		}
	})

	opts := enhance.Options{
		Scale:       run.Scale,
		Catalog:     run.Models,
		GeoJSONPath: run.GeoJSON,
	}
	if run.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(run.Seed))
	}

	console.Info("Input: %s", osmFile)
	console.Info("Output world: %s", worldFile)
	console.Info("Scanning OSM file for nature features...")

	res, err := enhance.Enhance(osmFile, worldFile, opts)
	if err != nil {
		console.Error("%v", err)
		os.Exit(3)
	}

	report(res)

	if !res.Patched {
		console.Warn("No nature features found to add")
		return
	}

	console.Success("Enhanced world file with %d nature features (backup saved as %s.bak)",
		res.Placed, worldFile)
}

func report(res *enhance.Result) {
	s := res.Summary

	console.Success("Found %d benches, %d individual trees, and %d wooded areas (%.1f m²)",
		s.BenchCount, s.TreeCount, s.WoodCount, s.WoodAreaM2)

	if s.SkippedRefs > 0 || s.DiscardedWays > 0 {
		console.Warn("Skipped %d unresolvable node refs, discarded %d degenerate wood ways",
			s.SkippedRefs, s.DiscardedWays)
	}

	if s.Center != nil {
		console.Info("Extract center %.5f, %.5f covered by s2 %v",
			s.Center.Lat, s.Center.Lon, s.S2Tokens)
	}

	if s.ExceedsPlanarExtent() {
		console.Warn("Extract spans %.1f km, planar placement will drift from the mesh",
			s.DiagonalM/1000.0)
	}
}
