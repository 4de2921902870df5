package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"jcuts/pkg/api"
	"jcuts/pkg/cfg"
	"jcuts/pkg/compare"
	"jcuts/pkg/export"
	"jcuts/pkg/geometry"
	"jcuts/pkg/paper"
	"jcuts/pkg/shape"
	"jcuts/pkg/svgpath"
	"jcuts/pkg/symmetry"
)

const usage = `usage: %s [-v] command [flags] args

commands:
  cut -edges N -radius R [-cx X -cy Y] strokes.txt   apply strokes, one SVG path per line
  expand shape.json                                  write the unfolded artwork as SVG
  gcode shape.json                                   write a plotter program for the artwork
  preview shape.json                                 write a PNG silhouette of the artwork
  diff a.json b.json                                 print the similarity of two shapes
  map -cx X -cy Y -radius R shape.json               replay a shape on another paper
  serve [-addr :8080]                                serve cutting sessions over HTTP
`

func main() {
	verbose := flag.Bool("v", false, "log cutting details to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		paper.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	command, args := flag.Arg(0), flag.Args()[1:]
	switch command {
	case "cut":
		cut(args)
	case "expand":
		expand(args)
	case "gcode":
		gcode(args)
	case "preview":
		preview(args)
	case "diff":
		diff(args)
	case "map":
		mapShape(args)
	case "serve":
		serve(args, *verbose)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// files parses a subcommand's flags and returns its n file arguments.
func files(fs *flag.FlagSet, args []string, n int) []string {
	fs.Parse(args)
	if fs.NArg() != n {
		log.Fatalf("%s: expected %d file arguments, got %d", fs.Name(), n, fs.NArg())
	}
	return fs.Args()
}

func readShape(filename string) shape.Shape {
	f, err := os.Open(filename)
	if err != nil {
		log.Fatalf("file read error: %s", err)
	}
	defer f.Close()
	s, err := shape.Decode(f)
	if err != nil {
		log.Fatalf("%s: %s", filename, err)
	}
	if err := s.Validate(cfg.MinEdgeCount, cfg.MaxEdgeCount); err != nil {
		log.Fatalf("%s: %s", filename, err)
	}
	return s
}

func writeShape(s shape.Shape) {
	if err := s.Encode(os.Stdout); err != nil {
		log.Fatalf("write error: %s", err)
	}
}

func cut(args []string) {
	fs := flag.NewFlagSet("cut", flag.ExitOnError)
	edges := fs.Int("edges", 6, "number of symmetric wedges")
	radius := fs.Float64("radius", 100, "paper radius")
	cx := fs.Float64("cx", 0, "paper center x")
	cy := fs.Float64("cy", 0, "paper center y")
	fs.Float64Var(&cfg.SimplifyDeviation, "simplify", cfg.SimplifyDeviation, "stroke jitter tolerance")
	filename := files(fs, args, 1)[0]

	center := geometry.Point{X: *cx, Y: *cy}
	if err := paper.ValidateBase(*edges, center, *radius); err != nil {
		log.Fatalf("invalid paper: %s", err)
	}
	p := paper.New(*edges, center, *radius)

	f, err := os.Open(filename)
	if err != nil {
		log.Fatalf("file read error: %s", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		stroke, err := svgpath.ParsePolyline(text)
		if err != nil {
			log.Fatalf("%s:%d: %s", filename, line, err)
		}
		if _, err := p.Cut(stroke); err != nil {
			log.Printf("%s:%d: stroke skipped: %s", filename, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("file read error: %s", err)
	}
	writeShape(p.Serialize())
}

func expand(args []string) {
	fs := flag.NewFlagSet("expand", flag.ExitOnError)
	s := readShape(files(fs, args, 1)[0])

	size := 2 * s.Base.Radius
	outXML, err := export.Artwork(symmetry.ExpandShape(s), size, size).Marshal()
	if err != nil {
		log.Fatalf("marshal error: %s", err)
	}
	fmt.Println(string(outXML))
}

func gcode(args []string) {
	fs := flag.NewFlagSet("gcode", flag.ExitOnError)
	fs.Float64Var(&cfg.PlotterFeedRate, "feed", cfg.PlotterFeedRate, "cut feed rate, mm/min")
	fs.Float64Var(&cfg.PlotterCutZ, "depth", cfg.PlotterCutZ, "pen down Z, mm")
	s := readShape(files(fs, args, 1)[0])

	loops := export.SortLoops(symmetry.ExpandShape(s), geometry.Point{})
	w := bufio.NewWriter(os.Stdout)
	if err := export.GCode(w, loops); err != nil {
		log.Fatalf("write error: %s", err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("write error: %s", err)
	}
}

func preview(args []string) {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	fs.Float64Var(&cfg.RasterScale, "scale", cfg.RasterScale, "pixels per unit")
	s := readShape(files(fs, args, 1)[0])

	if err := export.Preview(os.Stdout, symmetry.ExpandShape(s)); err != nil {
		log.Fatalf("write error: %s", err)
	}
}

func diff(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	fs.Float64Var(&cfg.CompareRadius, "resolution", cfg.CompareRadius, "pixels per paper radius")
	names := files(fs, args, 2)

	a, b := readShape(names[0]), readShape(names[1])
	fmt.Printf("%.4f\n", compare.DiffShape(a, b))
}

func mapShape(args []string) {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	radius := fs.Float64("radius", 100, "new paper radius")
	cx := fs.Float64("cx", 0, "new paper center x")
	cy := fs.Float64("cy", 0, "new paper center y")
	s := readShape(files(fs, args, 1)[0])

	to := shape.Basis{Center: geometry.Point{X: *cx, Y: *cy}, Radius: *radius}
	if err := to.Validate(); err != nil {
		log.Fatalf("invalid basis: %s", err)
	}
	writeShape(s.MapTo(to))
}

func serve(args []string, verbose bool) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "listen address")
	files(fs, args, 0)

	r := api.NewRouter(api.NewStore(), verbose)
	log.Printf("Server running at %s", *addr)
	if err := r.Run(*addr); err != nil {
		log.Fatalf("server error: %s", err)
	}
}
