// Package storage implements the ecurve serialization formats: plain
// text, binary, and a memory-mapped reader, per the on-disk layouts the
// reference tool's storage.c produces and consumes.
package storage

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coregx/seqclass/alphabet"
	"github.com/coregx/seqclass/ecurve"
	"github.com/coregx/seqclass/errs"
	"github.com/coregx/seqclass/kmer"
)

// WritePlain serializes e to w in the plain-text format: a header line
// naming the alphabet and suffix count, then one block per populated
// prefix (its P-character string and bucket size, followed by one line
// per suffix giving the S-character suffix string and class). Empty and
// EDGE prefixes are omitted entirely, matching the reference encoder.
func WritePlain(w io.Writer, e *ecurve.Ecurve) error {
	bw := bufio.NewWriter(w)
	alpha := e.Alphabet()
	coder := e.Coder()

	if _, err := fmt.Fprintf(bw, ">> alphabet: %s, suffixes: %d\n", alpha.String(), e.SuffixCount()); err != nil {
		return fmt.Errorf("storage: %w: %v", errs.ErrIO, err)
	}

	for _, bucket := range e.Populated() {
		ps, err := coder.String(kmer.Word{Prefix: bucket.Prefix}, alpha)
		if err != nil {
			return fmt.Errorf("storage: %w: %v", errs.ErrInvalid, err)
		}
		ps = ps[:coder.P()]
		if _, err := fmt.Fprintf(bw, ">%s %d\n", ps, len(bucket.Suffixes)); err != nil {
			return fmt.Errorf("storage: %w: %v", errs.ErrIO, err)
		}
		for i, suf := range bucket.Suffixes {
			ss, err := coder.String(kmer.Word{Suffix: suf}, alpha)
			if err != nil {
				return fmt.Errorf("storage: %w: %v", errs.ErrInvalid, err)
			}
			ss = ss[coder.P():]
			if _, err := fmt.Fprintf(bw, "%s %d\n", ss, bucket.Classes[i]); err != nil {
				return fmt.Errorf("storage: %w: %v", errs.ErrIO, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("storage: %w: %v", errs.ErrIO, err)
	}
	return nil
}

// ReadPlain parses the plain-text format produced by WritePlain and
// rebuilds an Ecurve via ecurve.Build. coder supplies the (P, S)
// dimensions to pack string fields with; the alphabet itself is read
// straight from the header.
func ReadPlain(r io.Reader, coder kmer.Coder) (*ecurve.Ecurve, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024), 1<<20)

	var alpha alphabet.Alphabet
	var suffixCount int
	var entries []ecurve.Entry

	line, ok, err := nextLine(sc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("storage: %w: empty plain-text stream", errs.ErrInvalid)
	}
	alpha, suffixCount, err = parseHeader(line)
	if err != nil {
		return nil, err
	}

	for len(entries) < suffixCount {
		line, ok, err = nextLine(sc)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("storage: %w: truncated stream, expected %d suffixes, got %d", errs.ErrInvalid, suffixCount, len(entries))
		}
		prefixStr, count, err := parsePrefixLine(line)
		if err != nil {
			return nil, err
		}
		prefixVal, err := coder.PackPrefix(prefixStr, alpha)
		if err != nil {
			return nil, fmt.Errorf("storage: %w: bad prefix string %q: %v", errs.ErrInvalid, prefixStr, err)
		}
		for i := 0; i < count; i++ {
			line, ok, err = nextLine(sc)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, fmt.Errorf("storage: %w: truncated suffix block", errs.ErrInvalid)
			}
			suffixStr, class, err := parseSuffixLine(line)
			if err != nil {
				return nil, err
			}
			suffixVal, err := coder.PackSuffix(suffixStr, alpha)
			if err != nil {
				return nil, fmt.Errorf("storage: %w: bad suffix string %q: %v", errs.ErrInvalid, suffixStr, err)
			}
			entries = append(entries, ecurve.Entry{Prefix: prefixVal, Suffix: suffixVal, Class: class})
		}
	}

	return ecurve.Build(alpha, coder, entries)
}

func nextLine(sc *bufio.Scanner) (string, bool, error) {
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		return line, true, nil
	}
	if err := sc.Err(); err != nil {
		return "", false, fmt.Errorf("storage: %w: %v", errs.ErrIO, err)
	}
	return "", false, nil
}

func parseHeader(line string) (alphabet.Alphabet, int, error) {
	const prefix = ">> alphabet: "
	const mid = ", suffixes: "
	if !strings.HasPrefix(line, prefix) {
		return alphabet.Alphabet{}, 0, fmt.Errorf("storage: %w: invalid header %q", errs.ErrInvalid, line)
	}
	rest := line[len(prefix):]
	sep := strings.Index(rest, mid)
	if sep < 0 {
		return alphabet.Alphabet{}, 0, fmt.Errorf("storage: %w: invalid header %q", errs.ErrInvalid, line)
	}
	alphaStr := rest[:sep]
	n, err := strconv.Atoi(rest[sep+len(mid):])
	if err != nil {
		return alphabet.Alphabet{}, 0, fmt.Errorf("storage: %w: invalid suffix count in header %q", errs.ErrInvalid, line)
	}
	alpha, err := alphabet.New(alphaStr)
	if err != nil {
		return alphabet.Alphabet{}, 0, fmt.Errorf("storage: %w: invalid header alphabet: %v", errs.ErrInvalid, err)
	}
	return alpha, n, nil
}

func parsePrefixLine(line string) (string, int, error) {
	if len(line) < 1 || line[0] != '>' {
		return "", 0, fmt.Errorf("storage: %w: expected prefix line, got %q", errs.ErrInvalid, line)
	}
	fields := strings.Fields(line[1:])
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("storage: %w: malformed prefix line %q", errs.ErrInvalid, line)
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("storage: %w: malformed prefix count in %q", errs.ErrInvalid, line)
	}
	return fields[0], count, nil
}

func parseSuffixLine(line string) (string, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("storage: %w: malformed suffix line %q", errs.ErrInvalid, line)
	}
	class, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", 0, fmt.Errorf("storage: %w: malformed class in %q", errs.ErrInvalid, line)
	}
	return fields[0], class, nil
}
