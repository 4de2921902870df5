package export

import (
	"fmt"
	"io"

	"jcuts/pkg/cfg"
	"jcuts/pkg/geometry"
)

// gcodeWriter keeps the first write error so the program can be written without
// checking every line.
type gcodeWriter struct {
	w   io.Writer
	err error
}

func (g *gcodeWriter) printf(format string, args ...interface{}) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
}

// GCode writes a plotter program that cuts each loop in the given order, returning
// to the loop's start point. Y is flipped, since plotters count Y upwards.
func GCode(w io.Writer, loops []geometry.Polyline) error {
	g := &gcodeWriter{w: w}

	g.printf("G21 (metric)\n")
	g.printf("G90 (absolute mode)\n")
	g.printf("G92 X0.00 Y0.00 Z0.00 (you are here)\n")
	g.printf("G0 F%0.2f (travel feed rate)\n", cfg.PlotterTravelRate)
	g.printf("G1 F%0.2f (cut feed rate)\n", cfg.PlotterFeedRate)
	g.printf("M3 (start cutter)\n")
	g.printf("G0 Z%0.2f F%0.2f (pen up)\n", cfg.PlotterPenUpZ, cfg.PlotterZFeedRate)

	last := geometry.Point{}
	for i, loop := range loops {
		if len(loop) < 2 {
			continue
		}
		g.printf("\n(loop %d, %d points)\n", i, len(loop))
		start := loop[0]
		if start.Distance(last) > cfg.PlotterMinTravel {
			g.printf("G0 X%0.2f Y%0.2f\n", start.X, flipY(start.Y))
		}
		g.printf("G1 Z%0.2f F%0.2f (pen down)\n", cfg.PlotterCutZ, cfg.PlotterZFeedRate)
		for _, p := range loop[1:] {
			g.printf("G1 X%0.2f Y%0.2f F%0.2f\n", p.X, flipY(p.Y), cfg.PlotterFeedRate)
		}
		g.printf("G1 X%0.2f Y%0.2f F%0.2f\n", start.X, flipY(start.Y), cfg.PlotterFeedRate)
		g.printf("G0 Z%0.2f F%0.2f (pen up)\n", cfg.PlotterPenUpZ, cfg.PlotterZFeedRate)
		last = start
	}

	g.printf("\n(end of job)\n")
	g.printf("G0 Z%0.2f (pen up)\n", cfg.PlotterPenUpZ)
	g.printf("M5 (stop cutter)\n")
	g.printf("G0 X0.00 Y0.00 F%0.2f (go home)\n", cfg.PlotterTravelRate)
	return g.err
}

func flipY(y float64) float64 {
	if y == 0 {
		return 0
	}
	return -y
}
