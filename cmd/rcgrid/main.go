package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/IzzyIllari/exclurad/src/dataset"
	"github.com/IzzyIllari/exclurad/src/gridgen"
)

func main() {
	var (
		outDir   string
		wList    string
		q2List   string
		costList string
		ebeam    float64
		channel  int
		target   int
		nrad     int
		exe      string
		timeout  time.Duration
		logLevel string
	)
	flag.StringVar(&outDir, "out", "grid", "Output directory for input files and run artifacts")
	flag.StringVar(&wList, "w", "", "Comma-separated W values in GeV (e.g. 1.6,1.65,1.7)")
	flag.StringVar(&q2List, "q2", "", "Comma-separated Q2 values in GeV^2")
	flag.StringVar(&costList, "costh", "", "Comma-separated cos(theta*) values in [-1,1]")
	flag.Float64Var(&ebeam, "ebeam", gridgen.DefaultRunParams.BeamEnergy, "Beam energy in GeV")
	flag.IntVar(&channel, "channel", gridgen.DefaultRunParams.Channel, "Reaction channel id")
	flag.IntVar(&target, "target", gridgen.DefaultRunParams.Target, "Target id")
	flag.IntVar(&nrad, "nrad", gridgen.DefaultRunParams.NRad, "Radiative integration points")
	flag.StringVar(&exe, "exe", "", "Simulation executable; when set, run it over every generated input")
	flag.DurationVar(&timeout, "timeout", 0, "Per-run time limit (0 = none)")
	flag.StringVar(&logLevel, "loglevel", "info", "Log level: debug, info, warn, error")
	flag.Parse()
	dataset.SetLogLevel(logLevel)

	ws, err := parseFloatList(wList)
	if err != nil {
		fatalf("-w: %v", err)
	}
	q2s, err := parseFloatList(q2List)
	if err != nil {
		fatalf("-q2: %v", err)
	}
	costs, err := parseFloatList(costList)
	if err != nil {
		fatalf("-costh: %v", err)
	}

	spec := gridgen.GridSpec{
		WValues:   ws,
		Q2Values:  q2s,
		CosValues: costs,
		OutDir:    outDir,
		Params: gridgen.RunParams{
			BeamEnergy: ebeam,
			Channel:    channel,
			Target:     target,
			NRad:       nrad,
		},
	}
	files, err := gridgen.Generate(spec)
	if err != nil {
		fatalf("generate: %v", err)
	}
	fmt.Printf("Wrote %d input files to %s\n", len(files), outDir)

	if exe == "" {
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runner := gridgen.Runner{Exe: exe, WorkDir: outDir, Timeout: timeout}
	results, err := runner.RunAll(ctx)
	if err != nil {
		fatalf("run: %v", err)
	}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	fmt.Printf("Ran %d inputs, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// parseFloatList splits a comma-separated list of numbers.
func parseFloatList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("at least one value is required")
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value %q", p)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one value is required")
	}
	return out, nil
}

func fatalf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", a...)
	os.Exit(1)
}
