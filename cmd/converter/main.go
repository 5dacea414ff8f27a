package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"map-editor/internal/converter/mapper"
	"map-editor/internal/editor/engine"
	"map-editor/internal/editor/export"
)

// ============================================================
// Converter CLI
// ============================================================

// Переводит SVG-план в документ карты без запуска редактора:
//
//	converter -in plan.svg -floor 1 -address "Lenina 1" > map.geojson
func main() {
	in := flag.String("in", "", "SVG plan path (stdin if empty)")
	floor := flag.Float64("floor", 1, "floor number for the imported plan")
	scale := flag.Float64("scale", mapper.DefaultPixelsPerMeter, "plan pixels per meter")
	address := flag.String("address", "", "building address for the document")
	azimuth := flag.Float64("azimuth", 0, "building azimuth in degrees")
	flag.Parse()

	src := os.Stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			log.Fatalf("open plan: %v", err)
		}
		defer f.Close()
		src = f
	}

	plan, err := mapper.New(*scale).Convert(src)
	if err != nil {
		log.Fatalf("convert: %v", err)
	}

	st := engine.New(engine.DefaultOptions())
	report := st.Import(*floor, plan.Walls, plan.Doors)
	log.Printf("[CONVERT] floor %g: %d walls added, %d skipped; %d doors added, %d skipped",
		report.Floor, report.WallsAdded, report.WallsSkipped, report.DoorsAdded, report.DoorsSkipped)

	st.Global.Address = *address
	st.Global.Azimuth = *azimuth

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export.ToGeoJSON(st.Floors, st.Global)); err != nil {
		log.Fatalf("encode: %v", err)
	}
}
