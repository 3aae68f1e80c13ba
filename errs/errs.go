// Package errs defines the error kinds shared across the classifier core,
// mirroring the sentinel-error idiom used throughout the nfa and dfa
// packages (see nfa/error.go: ErrInvalidState, ErrInvalidPattern, ...).
package errs

import "errors"

var (
	// ErrInvalid marks malformed input: a bad alphabet string, a query
	// shorter than a k-mer, a corrupt file header, or an unknown amino
	// passed to a word constructor.
	ErrInvalid = errors.New("invalid input")

	// ErrOutOfMemory marks an allocation failure while building or
	// loading an index.
	ErrOutOfMemory = errors.New("out of memory")

	// ErrIO marks a stream or file error surfaced by a storage
	// collaborator (plain, binary, or mmap codec).
	ErrIO = errors.New("i/o error")

	// ErrEmpty is returned internally by Ecurve.Lookup when the index
	// holds zero suffixes. Classifier callers convert it to a -Inf score
	// rather than surfacing it as an error.
	ErrEmpty = errors.New("empty index")
)
