package solver

import (
	"errors"
	"testing"
)

func TestGiniAdapterSatisfiesSimpleClause(t *testing.T) {
	t.Parallel()
	dimacs := "c 1 A\nc 2 B\np cnf 2 1\n1 2 0\n"
	lits, err := GiniAdapter{}.Satisfy(dimacs)
	if err != nil {
		t.Fatalf("Satisfy returned an error: %v", err)
	}
	if len(lits) != 2 {
		t.Fatalf("Satisfy returned %d literals, want 2", len(lits))
	}
	if lits[0] != 1 && lits[0] != -1 {
		t.Fatalf("Satisfy literal for variable 1 is %d, want +-1", lits[0])
	}
	if lits[0] < 0 && lits[1] < 0 {
		t.Fatalf("Satisfy returned an assignment falsifying (A|B): %v", lits)
	}
}

func TestGiniAdapterReportsUnsat(t *testing.T) {
	t.Parallel()
	dimacs := "p cnf 1 2\n1 0\n-1 0\n"
	_, err := GiniAdapter{}.Satisfy(dimacs)
	if !errors.Is(err, ErrUnsat) {
		t.Fatalf("Satisfy(A & !A) error = %v, want ErrUnsat", err)
	}
}
