package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ekuiter/clausy-go/internal/rtconfig"
)

// fakeCounter/fakeSatisfier stand in for solver.Counter/solver.Satisfier so
// dispatch can be exercised without any external binary or the embedded
// gini solver.
type fakeCounter struct{ result string }

func (f fakeCounter) Count(string) (string, error) { return f.result, nil }

type fakeSatisfier struct{ lits []int }

func (f fakeSatisfier) Satisfy(string) ([]int, error) { return f.lits, nil }

func TestDriverRunsDefaultPipelineOnASingleFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.model")
	if err := os.WriteFile(path, []byte("and(A, not(B))\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := newDriver(rtconfig.Default(), "", "", "", false)
	if err := d.run([]string{path}); err != nil {
		t.Fatalf("run returned an error: %v", err)
	}
	if d.clauses == nil {
		t.Fatalf("default pipeline did not populate d.clauses via to_clauses")
	}
}

func TestDriverLoadParsesModelFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.model")
	if err := os.WriteFile(path, []byte("A\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := newDriver(rtconfig.Default(), "", "", "", false)
	if err := d.dispatch([]string{path}); err != nil {
		t.Fatalf("dispatch(load) returned an error: %v", err)
	}
	if len(d.formulas) != 1 {
		t.Fatalf("len(d.formulas) = %d, want 1", len(d.formulas))
	}
}

func TestDriverCountUsesConfiguredCounter(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.model")
	if err := os.WriteFile(path, []byte("A\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := newDriver(rtconfig.Default(), "", "", "", false)
	d.counter = fakeCounter{result: "2"}
	if err := d.run([]string{path, "to_cnf_dist", "to_clauses", "count"}); err != nil {
		t.Fatalf("run returned an error: %v", err)
	}
}

func TestDriverSatisfyUsesConfiguredSatisfier(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.model")
	if err := os.WriteFile(path, []byte("A\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := newDriver(rtconfig.Default(), "", "", "", false)
	d.satisfier = fakeSatisfier{lits: []int{1}}
	if err := d.run([]string{path, "to_cnf_dist", "to_clauses", "satisfy"}); err != nil {
		t.Fatalf("run returned an error: %v", err)
	}
}

func TestDriverCountDiffRequiresTwoFormulas(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "f.model")
	if err := os.WriteFile(path, []byte("A\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := newDriver(rtconfig.Default(), "", "", "", false)
	if err := d.dispatch([]string{path}); err != nil {
		t.Fatalf("dispatch(load) returned an error: %v", err)
	}
	err := d.dispatch([]string{"count_diff", "csv"})
	if err == nil || !strings.Contains(err.Error(), "exactly two") {
		t.Fatalf("count_diff with one parsed formula error = %v, want a \"exactly two\" error", err)
	}
}
