// Package seqio implements the FASTA sequence I/O collaborator: parsing
// records off a stream and, for .gz inputs, decompressing in parallel the
// way the reference tool's rchive collaborator does for cached archives.
package seqio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/pgzip"

	"github.com/coregx/seqclass/errs"
)

// Record is one parsed FASTA entry: its header line (without the leading
// '>') and its sequence with all line breaks removed.
type Record struct {
	Header string
	Seq    string
}

// Reader yields successive Records from an underlying stream.
type Reader struct {
	sc      *bufio.Scanner
	pending string
	done    bool
}

// NewReader wraps r as a FASTA Reader. r must already be decompressed;
// use Open for a path that may be gzip-compressed.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64<<20)
	return &Reader{sc: sc}
}

// Open opens path for FASTA reading, transparently decompressing it in
// parallel via pgzip if the name ends in .gz. The caller must Close the
// returned io.ReadCloser once done with the Reader built from it.
func Open(path string, raw io.ReadCloser) (io.ReadCloser, *Reader, error) {
	if !strings.HasSuffix(path, ".gz") {
		return raw, NewReader(raw), nil
	}
	zr, err := pgzip.NewReader(raw)
	if err != nil {
		raw.Close()
		return nil, nil, fmt.Errorf("seqio: %w: %v", errs.ErrIO, err)
	}
	return &gzipReadCloser{Reader: zr, raw: raw}, NewReader(zr), nil
}

type gzipReadCloser struct {
	*pgzip.Reader
	raw io.ReadCloser
}

func (g *gzipReadCloser) Close() error {
	err1 := g.Reader.Close()
	err2 := g.raw.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// Next returns the next Record, or ok == false at end of stream.
func (r *Reader) Next() (Record, bool, error) {
	if r.done {
		return Record{}, false, nil
	}

	var header string
	if r.pending != "" {
		header = r.pending
		r.pending = ""
	} else {
		for r.sc.Scan() {
			line := r.sc.Text()
			if strings.HasPrefix(line, ">") {
				header = line[1:]
				break
			}
		}
		if header == "" {
			r.done = true
			if err := r.sc.Err(); err != nil {
				return Record{}, false, fmt.Errorf("seqio: %w: %v", errs.ErrIO, err)
			}
			return Record{}, false, nil
		}
	}

	var seq strings.Builder
	for r.sc.Scan() {
		line := r.sc.Text()
		if strings.HasPrefix(line, ">") {
			r.pending = line[1:]
			return Record{Header: header, Seq: seq.String()}, true, nil
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	r.done = true
	if err := r.sc.Err(); err != nil {
		return Record{}, false, fmt.Errorf("seqio: %w: %v", errs.ErrIO, err)
	}
	return Record{Header: header, Seq: seq.String()}, true, nil
}

// WriteRecord appends one FASTA record to w, wrapping the sequence at 70
// characters per line as conventional.
func WriteRecord(w io.Writer, rec Record) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, ">%s\n", rec.Header); err != nil {
		return fmt.Errorf("seqio: %w: %v", errs.ErrIO, err)
	}
	const wrap = 70
	for i := 0; i < len(rec.Seq); i += wrap {
		end := i + wrap
		if end > len(rec.Seq) {
			end = len(rec.Seq)
		}
		if _, err := fmt.Fprintln(bw, rec.Seq[i:end]); err != nil {
			return fmt.Errorf("seqio: %w: %v", errs.ErrIO, err)
		}
	}
	return bw.Flush()
}
