// deeppnsolve runs the sequential Deep-PN reference variant (pkg/deeppn)
// against a single position. Historical/experimental interest only: the
// parallel wpnsolve binary is the supported solver.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/herohde/wpnsolver/pkg/deeppn"
	"github.com/herohde/wpnsolver/pkg/othellopn"
	"github.com/herohde/wpnsolver/pkg/posfile"
	"github.com/seekerror/logw"
)

var r = flag.Uint64("r", deeppn.DefaultR, "Deep-PN depth-gating constant; R=1 degenerates to plain proof-number search")

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: deeppnsolve [-r N] <position-file>

deeppnsolve runs the sequential Deep-PN reference variant, single-threaded
and without a shared transposition table. Kept for historical comparison
against the parallel WPN core; not production-supported.

Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		logw.Exitf(ctx, "Expected exactly 1 positional argument, got %v", len(args))
	}

	pos, err := posfile.ParseFile(args[0])
	if err != nil {
		logw.Exitf(ctx, "Invalid position file %v: %v", args[0], err)
	}

	solver := deeppn.NewSolver(othellopn.ProofNumber(*r))

	start := time.Now()
	outcome := solver.Solve(ctx, pos)
	elapsed := time.Since(start)

	fmt.Printf("Total: %v nodes in %.3f sec\n", solver.Nodes(), elapsed.Seconds())
	fmt.Printf("Result: %v\n", outcome)

	if outcome == othellopn.Unknown {
		os.Exit(1)
	}
}
