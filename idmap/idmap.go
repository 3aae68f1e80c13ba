// Package idmap implements the id-map collaborator: a bijection between
// the string labels a labeled dataset or index build uses for classes
// (accession numbers, family names) and the small non-negative integer
// class codes the classifier core operates on. The core never touches
// this package directly; it is wired in by cmd/seqclass and the
// calibrate tool to translate results back to human-readable labels.
package idmap

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/coregx/seqclass/errs"
)

// Map is a two-way string label <-> class id mapping. The zero value is
// an empty, usable Map.
type Map struct {
	toClass map[string]int
	toLabel []string
}

// New returns an empty Map.
func New() *Map {
	return &Map{toClass: make(map[string]int)}
}

// Intern returns label's class id, assigning it the next unused id the
// first time label is seen.
func (m *Map) Intern(label string) int {
	if cls, ok := m.toClass[label]; ok {
		return cls
	}
	if m.toClass == nil {
		m.toClass = make(map[string]int)
	}
	cls := len(m.toLabel)
	m.toClass[label] = cls
	m.toLabel = append(m.toLabel, label)
	return cls
}

// Class returns label's class id and whether label is known.
func (m *Map) Class(label string) (int, bool) {
	cls, ok := m.toClass[label]
	return cls, ok
}

// Label returns the label for cls. It fails with errs.ErrInvalid if cls
// is out of range.
func (m *Map) Label(cls int) (string, error) {
	if cls < 0 || cls >= len(m.toLabel) {
		return "", fmt.Errorf("idmap: %w: class %d has no label", errs.ErrInvalid, cls)
	}
	return m.toLabel[cls], nil
}

// Len returns the number of distinct labels interned.
func (m *Map) Len() int { return len(m.toLabel) }

// Write serializes the map as one label per line, in class-id order (line
// N holds the label for class N).
func (m *Map) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, label := range m.toLabel {
		if _, err := fmt.Fprintln(bw, label); err != nil {
			return fmt.Errorf("idmap: %w: %v", errs.ErrIO, err)
		}
	}
	return bw.Flush()
}

// Read loads a Map previously written by Write.
func Read(r io.Reader) (*Map, error) {
	m := New()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		m.Intern(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("idmap: %w: %v", errs.ErrIO, err)
	}
	return m, nil
}
