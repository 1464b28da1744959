// Package solver defines the core's view of external SAT/#SAT tooling as
// opaque string-in/string-out contracts (SPEC_FULL.md §6 "External solver
// interfaces"), plus two concrete implementations: ExecAdapter (shells out
// to local binaries, original_source/src/util/exec.rs) and GiniAdapter (an
// in-process SAT solver, go-tony/schema/formula_builder.go).
package solver

import "errors"

// Counter computes the number of satisfying assignments of a DIMACS CNF
// document, returned as a decimal string (arbitrary precision, hence
// string rather than int64).
type Counter interface {
	Count(dimacs string) (string, error)
}

// Satisfier finds one satisfying assignment of a DIMACS CNF document, or
// reports that none exists.
type Satisfier interface {
	// Satisfy returns the signed literal for every variable in a
	// satisfying assignment (positive if true, negative if false), or
	// ErrUnsat if the formula has none.
	Satisfy(dimacs string) ([]int, error)
}

// Converter performs format conversion between feature-model dialects via
// an external tool (e.g. FeatureIDE's io.jar), used by assert_count to
// re-derive an expected model count from a formula's original file.
type Converter interface {
	Convert(contents, inFormat, outFormat string) (string, error)
}

// ErrUnsat is returned by Satisfy when the input CNF has no satisfying
// assignment.
var ErrUnsat = errors.New("solver: formula is unsatisfiable")
