// Command seqclass is the CLI front end around the classifier core: it
// loads a serialized ecurve and substitution matrix and drives
// classification, calibration, and index diagnostics. None of the
// search-and-score engine lives here; this file and its siblings are
// thin collaborators that wire flags to the classify, storage, seqio,
// and idmap packages.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "classify":
		err = runClassify(os.Args[2:])
	case "calibrate":
		err = runCalibrate(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "seqclass: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "seqclass: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: seqclass <command> [flags]

commands:
  classify   classify FASTA sequences against a built index
  calibrate  fit per-class score thresholds from a labeled holdout set
  stats      report index diagnostics (bucket sizes, EDGE fraction, memory)
`)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs
}
