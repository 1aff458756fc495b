package config

import (
	"flag"
	"log"
	"os"
)

var (
	HTTPAddr            string  = ":8080" // web UI and JSON API
	RPCAddr             string  = ":3410" // net/rpc endpoint for terminal clients
	PlotWidth           int     = 800     // rendered plot size in pixels
	PlotHeight          int     = 600
	MaxExpressionLength int     = 512    // characters accepted in an expression field
	QuadraturePoints    int     = 100000 // trapezoid subintervals for numeric definite integrals
	ZeroTolerance       float64 = 1e-12  // |denominator| below which a trig ratio is undefined
)

func Load() {
	if err := load(flag.CommandLine, os.Args[1:]); err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}
}

func load(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&HTTPAddr, "http", HTTPAddr, "HTTP listen address")
	fs.StringVar(&RPCAddr, "rpc", RPCAddr, "RPC listen address")
	fs.IntVar(&PlotWidth, "plot-width", PlotWidth, "plot width in pixels")
	fs.IntVar(&PlotHeight, "plot-height", PlotHeight, "plot height in pixels")
	fs.IntVar(&MaxExpressionLength, "max-expr", MaxExpressionLength, "maximum expression length")
	fs.IntVar(&QuadraturePoints, "quad-points", QuadraturePoints, "subintervals for numeric integration")
	fs.Float64Var(&ZeroTolerance, "zero-tol", ZeroTolerance, "zero tolerance for trigonometric denominators")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if PlotWidth <= 0 || PlotHeight <= 0 {
		PlotWidth, PlotHeight = 800, 600
	}
	if QuadraturePoints < 2 {
		QuadraturePoints = 100000
	}
	if ZeroTolerance < 0 {
		ZeroTolerance = 1e-12
	}

	log.Printf("Config loaded. HTTP [%s] RPC [%s] Plot [%dx%d] MaxExpr [%d] QuadPoints [%d] ZeroTol [%g]",
		HTTPAddr, RPCAddr, PlotWidth, PlotHeight, MaxExpressionLength, QuadraturePoints, ZeroTolerance)
	return nil
}
