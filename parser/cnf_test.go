package parser

import (
	"testing"

	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/expr"
)

func TestCNFParsesNamedAndAuxVariables(t *testing.T) {
	t.Parallel()
	a := arena.New()
	src := "c 1 A\nc 2 B\np cnf 3 2\n1 -2 0\n2 3 0\n"
	f, err := CNF{}.ParseInto("t.cnf", src, a)
	if err != nil {
		t.Fatalf("ParseInto returned an error: %v", err)
	}
	if len(f.SubVarIDs) != 3 {
		t.Fatalf("SubVarIDs = %v, want 3 (A, B, and one unnamed aux)", f.SubVarIDs)
	}
	root := a.Node(f.RootID)
	if root.Kind != expr.KindAnd || len(root.Children) != 2 {
		t.Fatalf("root = %+v, want a 2-clause And", root)
	}
	for _, c := range root.Children {
		clause := a.Node(c)
		if clause.Kind != expr.KindOr || len(clause.Children) != 2 {
			t.Fatalf("clause %+v is not a 2-literal Or", clause)
		}
	}

	aID, ok := a.Vars.LookupNamed("A")
	if !ok {
		t.Fatalf("variable A was not interned under its comment name")
	}
	if _, ok := f.SubVarIDs[aID]; !ok {
		t.Fatalf("SubVarIDs does not include A's variable id")
	}
}

func TestCNFRejectsHeaderClauseCountMismatch(t *testing.T) {
	t.Parallel()
	a := arena.New()
	src := "p cnf 2 2\n1 2 0\n"
	_, err := CNF{}.ParseInto("t.cnf", src, a)
	if err == nil {
		t.Fatalf("ParseInto accepted a file with fewer clauses than its header declares")
	}
}

func TestCNFRejectsMalformedHeader(t *testing.T) {
	t.Parallel()
	a := arena.New()
	_, err := CNF{}.ParseInto("t.cnf", "p cnf notanumber 1\n1 0\n", a)
	if err == nil {
		t.Fatalf("ParseInto accepted a non-numeric variable count in the header")
	}
}

func TestCNFRejectsOutOfRangeLiteral(t *testing.T) {
	t.Parallel()
	a := arena.New()
	_, err := CNF{}.ParseInto("t.cnf", "p cnf 1 1\n5 0\n", a)
	if err == nil {
		t.Fatalf("ParseInto accepted a literal referencing a variable outside the header's range")
	}
}
