package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"

	"github.com/coregx/seqclass/ecurve"
	"github.com/coregx/seqclass/storage"
)

// runStats reports ecurve build diagnostics (suffix count, bucket
// distribution, EDGE fraction) alongside host capacity (logical cores,
// total memory), the latter grounded in the same diagnostic line the
// reference eutils PrintStats collaborator emits.
func runStats(args []string) error {
	fs := newFlagSet("stats")
	var cfg indexConfig
	cfg.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	li, err := cfg.load()
	if err != nil {
		return err
	}
	defer li.closer()

	if li.fwd != nil {
		printEcurveStats("forward", li.fwd)
	}
	if li.rev != nil {
		printEcurveStats("reverse", li.rev)
	}

	fmt.Fprintf(os.Stderr, "Thrd %d\n", runtime.NumCPU())
	if cpuid.CPU.LogicalCores > 0 {
		fmt.Fprintf(os.Stderr, "Core %d\n", cpuid.CPU.LogicalCores)
	}
	fmt.Fprintf(os.Stderr, "Mmry %d GiB\n", memory.TotalMemory()/(1024*1024*1024))
	return nil
}

func printEcurveStats(label string, e *ecurve.Ecurve) {
	s := storage.Stat(e)
	fmt.Printf("%s: suffixes=%d prefixes=%d populated=%d edge=%d avg_bucket=%.2f max_bucket=%d\n",
		label, s.SuffixCount, s.NumPrefixes, s.PopulatedBuckets, s.EdgeBuckets, s.AvgBucketSize, s.MaxBucketSize)
}
