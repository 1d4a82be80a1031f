// Command objtri loads a Wavefront OBJ file, triangulates every face
// and writes the result as binary STL and/or a flat-shaded WebP
// preview. With no output flags it just reports the triangle count.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/chazu/objtri/pkg/export"
	"github.com/chazu/objtri/pkg/obj"
	"github.com/chazu/objtri/pkg/preview"
	"github.com/chazu/objtri/pkg/triangulate"
)

// config mirrors the output flags; a JSON file can preset values and
// non-empty flags override it.
type config struct {
	STL         string `json:"stl"`
	WebP        string `json:"webp"`
	Size        int    `json:"size"`
	Supersample int    `json:"supersample"`
}

func main() {
	configFile := flag.String("config", "", "path to a JSON config file")
	stlOut := flag.String("stl", "", "write binary STL to this path")
	webpOut := flag.String("webp", "", "write a WebP preview to this path")
	size := flag.Int("size", 0, "preview edge length in pixels (default 256)")
	supersample := flag.Int("supersample", 0, "preview supersampling factor (default 2)")
	yaw := flag.Float64("yaw", 0.6, "preview yaw in radians")
	pitch := flag.Float64("pitch", 0.35, "preview pitch in radians")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: objtri [flags] input.obj")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	var cfg config
	if *configFile != "" {
		data, err := os.ReadFile(*configFile)
		if err != nil {
			log.Fatalf("read config: %v", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("parse config %s: %v", *configFile, err)
		}
	}
	if *stlOut != "" {
		cfg.STL = *stlOut
	}
	if *webpOut != "" {
		cfg.WebP = *webpOut
	}
	if *size > 0 {
		cfg.Size = *size
	}
	if *supersample > 0 {
		cfg.Supersample = *supersample
	}

	start := time.Now()
	scene, err := obj.Load(input)
	if err != nil {
		log.Fatal(err)
	}

	tris, err := triangulate.Scene(scene)
	if err != nil {
		log.Fatalf("triangulate %s: %v", input, err)
	}
	log.Printf("%s: %d objects, %d triangles in %v",
		input, len(scene.Objects), len(tris), time.Since(start).Round(time.Millisecond))

	if cfg.STL != "" {
		if err := export.STL(scene, tris, cfg.STL); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", cfg.STL)
	}

	if cfg.WebP != "" {
		img := preview.Render(scene, tris, preview.Options{
			Size:        cfg.Size,
			Supersample: cfg.Supersample,
			Yaw:         *yaw,
			Pitch:       *pitch,
		})
		f, err := os.Create(cfg.WebP)
		if err != nil {
			log.Fatal(err)
		}
		if err := preview.WriteWebP(f, img); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", cfg.WebP)
	}
}
