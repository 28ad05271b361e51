// wpnsolve solves an Othello position's game-theoretic value (WIN, LOSE or
// DRAW, from Black's perspective) via parallel Weak Proof Number search.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/herohde/wpnsolver/pkg/posfile"
	"github.com/herohde/wpnsolver/pkg/ttable"
	"github.com/herohde/wpnsolver/pkg/worker"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

var (
	ttSizeMB     = flag.Uint64("tt-mb", 256, "Transposition table capacity in MiB")
	ttStripes    = flag.Int("tt-stripes", ttable.DefaultStripeCount, "Power-of-two count of lock stripes guarding the transposition table")
	verbose      = flag.Bool("v", false, "Report additional diagnostics")
	printVersion = flag.Bool("version", false, "Print version and exit")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: wpnsolve <position-file> <thread-count> <time-limit-seconds> [-v]

wpnsolve solves an Othello endgame position's game value by parallel
Weak Proof Number search against a shared lock-striped transposition table.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	// Flags may also follow the three positional arguments, e.g. a trailing -v.
	args := flag.Args()
	if len(args) > 3 {
		_ = flag.CommandLine.Parse(args[3:])
		args = append(args[:3:3], flag.Args()...)
	}

	if *printVersion {
		fmt.Println(version)
		return
	}

	if len(args) != 3 {
		flag.Usage()
		logw.Exitf(ctx, "Expected exactly 3 positional arguments, got %v", len(args))
	}

	pos, err := posfile.ParseFile(args[0])
	if err != nil {
		logw.Exitf(ctx, "Invalid position file %v: %v", args[0], err)
	}

	threads, err := parsePositiveInt(args[1])
	if err != nil {
		logw.Exitf(ctx, "Invalid thread count %q: %v", args[1], err)
	}

	seconds, err := parsePositiveFloat(args[2])
	if err != nil {
		logw.Exitf(ctx, "Invalid time limit %q: %v", args[2], err)
	}

	if *verbose {
		logw.Infof(ctx, "wpnsolve %v: threads=%v time_limit=%vs tt=%vMiB position=%v", version, threads, seconds, *ttSizeMB, pos)
	}

	tt := ttable.New(ctx, *ttSizeMB, *ttStripes)

	start := time.Now()
	deadline := start.Add(time.Duration(seconds * float64(time.Second)))
	result := worker.Run(ctx, pos, threads, deadline, tt)
	elapsed := time.Since(start)

	nps := float64(0)
	if elapsed > 0 {
		nps = float64(result.Nodes) / elapsed.Seconds()
	}

	fmt.Printf("Total: %v nodes in %.3f sec (%.0f NPS)\n", result.Nodes, elapsed.Seconds(), nps)
	fmt.Printf("Result: %v\n", result.Outcome)
	fmt.Printf("TT hits: %v, TT stores: %v\n", result.Hits, result.Stores)

	if *verbose {
		fmt.Printf("Threads: %v\n", threads)
		fmt.Printf("Position: %v\n", pos)
		fmt.Printf("TT capacity: %v MiB (%v)\n", *ttSizeMB, tt)
		fmt.Printf("TT hit rate: %.2f%%\n", tt.HitRate()*100)
	}

	if result.Outcome == othellopn.Unknown {
		os.Exit(1)
	}
}

func parsePositiveInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be positive, got %v", v)
	}
	return v, nil
}

func parsePositiveFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be positive, got %v", v)
	}
	return v, nil
}
