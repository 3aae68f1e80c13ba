package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/coregx/seqclass/classify"
	"github.com/coregx/seqclass/idmap"
	"github.com/coregx/seqclass/seqio"
)

// runCalibrate classifies a labeled holdout set concurrently, one
// goroutine per CPU, and reports a per-class score-threshold
// recommendation: the lowest score among correctly classified members of
// each class, below which a call on an unseen sequence becomes
// ambiguous. This fits score thresholds; it never touches the index
// itself.
func runCalibrate(args []string) error {
	fs := newFlagSet("calibrate")
	var cfg indexConfig
	cfg.register(fs)
	fastaPath := fs.String("holdout", "", "labeled holdout FASTA (.gz accepted); header format: <label> <anything>")
	workers := fs.Int("workers", runtime.NumCPU(), "number of concurrent classify workers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fastaPath == "" {
		return fmt.Errorf("calibrate: -holdout is required")
	}

	li, err := cfg.load()
	if err != nil {
		return err
	}
	defer li.closer()
	clf := classify.New(li.mat, li.fwd, li.rev, nil)
	labels := idmap.New()

	raw, err := os.Open(*fastaPath)
	if err != nil {
		return fmt.Errorf("opening holdout: %w", err)
	}
	stream, reader, err := seqio.Open(*fastaPath, raw)
	if err != nil {
		return err
	}
	defer stream.Close()

	type sample struct {
		label string
		seq   string
	}
	jobs := make(chan sample, *workers)
	type outcome struct {
		label   string
		cls     int
		score   float64
		correct bool
	}
	results := make(chan outcome, *workers)

	var labelsMu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r := clf.ClassifyProtein(j.seq)
				labelsMu.Lock()
				wantCls := labels.Intern(j.label)
				labelsMu.Unlock()
				results <- outcome{label: j.label, cls: r.Class, score: r.Score, correct: r.Class == wantCls}
			}
		}()
	}

	go func() {
		for {
			rec, ok, err := reader.Next()
			if err != nil || !ok {
				break
			}
			fields := strings.SplitN(rec.Header, " ", 2)
			jobs <- sample{label: fields[0], seq: rec.Seq}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	byLabel := make(map[string][]float64)
	total, wrong := 0, 0
	for o := range results {
		total++
		if o.correct {
			byLabel[o.label] = append(byLabel[o.label], o.score)
		} else {
			wrong++
		}
	}

	names := make([]string, 0, len(byLabel))
	for name := range byLabel {
		names = append(names, name)
	}
	sort.Strings(names)

	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	for _, name := range names {
		scores := byLabel[name]
		sort.Float64s(scores)
		threshold := scores[0]
		ok.Printf("%-20s", name)
		fmt.Printf(" threshold=%g (n=%d)\n", threshold, len(scores))
	}
	if wrong > 0 {
		bad.Printf("%d/%d holdout sequences misclassified\n", wrong, total)
	}
	return nil
}
