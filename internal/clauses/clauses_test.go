package clauses

import (
	"testing"

	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/expr"
	"github.com/ekuiter/clausy-go/internal/formula"
	"github.com/ekuiter/clausy-go/internal/vars"
)

func TestExtractFromConjunctionOfClauses(t *testing.T) {
	t.Parallel()
	a := arena.New()
	idA, vA := a.InternVarNamed("A")
	idB, vB := a.InternVarNamed("B")
	idC, vC := a.InternVarNamed("C")
	notB := a.Intern(expr.MakeNot(idB))

	clause1 := a.Intern(expr.MakeOr([]expr.ID{idA, notB}))
	clause2 := a.Intern(expr.MakeOr([]expr.ID{idB, idC}))
	root := a.Intern(expr.MakeAnd([]expr.ID{clause1, clause2}))

	subVars := map[vars.ID]struct{}{vA: {}, vB: {}, vC: {}}
	cnf := Extract(formula.New(subVars, root, nil), a)

	if len(cnf.Clauses) != 2 {
		t.Fatalf("Extract found %d clauses, want 2", len(cnf.Clauses))
	}
	for _, clause := range cnf.Clauses {
		if len(clause) != 2 {
			t.Fatalf("clause %v has %d literals, want 2", clause, len(clause))
		}
	}
}

func TestExtractFromSingleLiteralRoot(t *testing.T) {
	t.Parallel()
	a := arena.New()
	idA, vA := a.InternVarNamed("A")
	subVars := map[vars.ID]struct{}{vA: {}}

	cnf := Extract(formula.New(subVars, idA, nil), a)
	if len(cnf.Clauses) != 1 || len(cnf.Clauses[0]) != 1 || cnf.Clauses[0][0] != int32(vA) {
		t.Fatalf("Extract(Var(A)) = %v, want a single unit clause [A]", cnf.Clauses)
	}
}

func TestExtractPanicsOnNonCNFShape(t *testing.T) {
	t.Parallel()
	a := arena.New()
	idA, vA := a.InternVarNamed("A")
	idB, vB := a.InternVarNamed("B")
	idC, vC := a.InternVarNamed("C")
	// And(A, And(B,C)) -- a nested And under the top-level And is not a
	// valid CNF shape (ToCNFDist/ToCNFTseitin never produce one).
	nestedAnd := a.Intern(expr.MakeAnd([]expr.ID{idB, idC}))
	root := a.Intern(expr.MakeAnd([]expr.ID{idA, nestedAnd}))
	subVars := map[vars.ID]struct{}{vA: {}, vB: {}, vC: {}}

	defer func() {
		if recover() == nil {
			t.Fatalf("Extract did not panic on a non-CNF shape")
		}
	}()
	Extract(formula.New(subVars, root, nil), a)
}
