package main

import (
	"fmt"
	"os"

	"github.com/coregx/seqclass/classify"
	"github.com/coregx/seqclass/idmap"
	"github.com/coregx/seqclass/internal/idset"
	"github.com/coregx/seqclass/seqio"
)

func runClassify(args []string) error {
	fs := newFlagSet("classify")
	var cfg indexConfig
	cfg.register(fs)
	fastaPath := fs.String("query", "", "query FASTA path (.gz accepted)")
	idmapPath := fs.String("idmap", "", "optional id-map file translating class ids back to labels")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fastaPath == "" {
		return fmt.Errorf("classify: -query is required")
	}

	li, err := cfg.load()
	if err != nil {
		return err
	}
	defer li.closer()

	clf := classify.New(li.mat, li.fwd, li.rev, nil)

	var labels *idmap.Map
	if *idmapPath != "" {
		f, err := os.Open(*idmapPath)
		if err != nil {
			return fmt.Errorf("opening idmap: %w", err)
		}
		defer f.Close()
		labels, err = idmap.Read(f)
		if err != nil {
			return fmt.Errorf("reading idmap: %w", err)
		}
	}

	raw, err := os.Open(*fastaPath)
	if err != nil {
		return fmt.Errorf("opening query: %w", err)
	}
	stream, reader, err := seqio.Open(*fastaPath, raw)
	if err != nil {
		return err
	}
	defer stream.Close()

	// seen tracks the distinct classes this run has hit, reported as a
	// summary line at the end. Its capacity is only known once an id-map
	// is loaded, so it is skipped otherwise.
	var seen *idset.Set
	if labels != nil {
		seen = idset.New(labels.Len())
	}

	for {
		rec, ok, err := reader.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		result := clf.ClassifyProtein(rec.Seq)
		printResult(rec.Header, result, labels)
		if seen != nil && result.Class >= 0 && result.Class < labels.Len() {
			seen.Insert(uint32(result.Class))
		}
	}
	if seen != nil {
		fmt.Fprintf(os.Stderr, "distinct classes observed: %d/%d\n", seen.Len(), labels.Len())
	}
	return nil
}

func printResult(header string, result classify.Result, labels *idmap.Map) {
	label := fmt.Sprintf("%d", result.Class)
	if labels != nil {
		if l, err := labels.Label(result.Class); err == nil {
			label = l
		}
	}
	fmt.Printf("%s\t%s\t%g\n", header, label, result.Score)
}
