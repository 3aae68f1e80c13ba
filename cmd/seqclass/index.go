package main

import (
	"fmt"
	"os"

	"github.com/coregx/seqclass/ecurve"
	"github.com/coregx/seqclass/kmer"
	"github.com/coregx/seqclass/storage"
	"github.com/coregx/seqclass/substmat"
)

// indexConfig captures the flags every index-consuming subcommand shares:
// which ecurve files to load, under what word geometry, against which
// substitution matrix.
type indexConfig struct {
	fwdPath  string
	revPath  string
	matPath  string
	format   string // "plain", "binary", or "mmap"
	alphabet string
	p, s     int
}

func (c *indexConfig) register(fs interface {
	StringVar(*string, string, string, string)
	IntVar(*int, string, int, string)
}) {
	fs.StringVar(&c.fwdPath, "fwd", "", "forward-strand ecurve path")
	fs.StringVar(&c.revPath, "rev", "", "reverse-strand ecurve path (optional)")
	fs.StringVar(&c.matPath, "mat", "", "substitution matrix path")
	fs.StringVar(&c.format, "format", "plain", "ecurve format: plain, binary, or mmap")
	fs.StringVar(&c.alphabet, "alphabet", "", "alphabet string (required for every format)")
	fs.IntVar(&c.p, "p", kmer.ReferenceP, "prefix length in aminos")
	fs.IntVar(&c.s, "s", kmer.ReferenceS, "suffix length in aminos")
}

type loadedIndex struct {
	fwd    *ecurve.Ecurve
	rev    *ecurve.Ecurve
	mat    *substmat.Mat
	closer func() error
}

func (c *indexConfig) load() (*loadedIndex, error) {
	if c.fwdPath == "" && c.revPath == "" {
		return nil, fmt.Errorf("at least one of -fwd or -rev is required")
	}

	if c.alphabet == "" {
		return nil, fmt.Errorf("-alphabet is required (the coder's packing width depends on its size)")
	}
	coder, err := kmer.NewCoder(len(c.alphabet), c.p, c.s)
	if err != nil {
		return nil, fmt.Errorf("building coder: %w", err)
	}

	li := &loadedIndex{closer: func() error { return nil }}

	loadOne := func(path string) (*ecurve.Ecurve, error) {
		switch c.format {
		case "plain":
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return storage.ReadPlain(f, coder)
		case "binary":
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return storage.ReadBinary(f, coder, len(c.alphabet))
		case "mmap":
			m, e, err := storage.MapEcurve(path, coder, len(c.alphabet))
			if err != nil {
				return nil, err
			}
			prev := li.closer
			li.closer = func() error {
				if err := prev(); err != nil {
					return err
				}
				return m.Close()
			}
			return e, nil
		default:
			return nil, fmt.Errorf("unknown format %q", c.format)
		}
	}

	if c.fwdPath != "" {
		e, err := loadOne(c.fwdPath)
		if err != nil {
			return nil, fmt.Errorf("loading forward ecurve %s: %w", c.fwdPath, err)
		}
		li.fwd = e
	}
	if c.revPath != "" {
		e, err := loadOne(c.revPath)
		if err != nil {
			return nil, fmt.Errorf("loading reverse ecurve %s: %w", c.revPath, err)
		}
		li.rev = e
	}

	if c.matPath != "" {
		f, err := os.Open(c.matPath)
		if err != nil {
			return nil, fmt.Errorf("opening matrix %s: %w", c.matPath, err)
		}
		defer f.Close()
		m, err := substmat.Load(f, c.s, len(c.alphabet))
		if err != nil {
			return nil, fmt.Errorf("loading matrix %s: %w", c.matPath, err)
		}
		li.mat = m
	}

	return li, nil
}
