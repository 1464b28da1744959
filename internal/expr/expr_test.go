package expr

import (
	"testing"

	"github.com/ekuiter/clausy-go/internal/vars"
)

func TestEqualDistinguishesKindsAndOperands(t *testing.T) {
	t.Parallel()
	a := MakeVar(1)
	b := MakeVar(2)
	if a.Equal(b) {
		t.Fatalf("distinct variables compared equal")
	}
	n := MakeNot(0)
	if a.Equal(n) {
		t.Fatalf("a Var and a Not compared equal")
	}
	and1 := MakeAnd([]ID{0, 1})
	and2 := MakeAnd([]ID{1, 0})
	if and1.Equal(and2) {
		t.Fatalf("And with differently-ordered children compared equal; Equal assumes pre-sorted input")
	}
}

func TestHashIsStableForIdenticalNodes(t *testing.T) {
	t.Parallel()
	a := MakeAnd([]ID{1, 2, 3})
	b := MakeAnd([]ID{1, 2, 3})
	if a.Hash() != b.Hash() {
		t.Fatalf("identical nodes hashed differently: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Hash() != a.Hash() {
		t.Fatalf("Hash is not deterministic across calls")
	}
}

func TestChildIDs(t *testing.T) {
	t.Parallel()
	if got := MakeVar(1).ChildIDs(); got != nil {
		t.Fatalf("Var.ChildIDs() = %v, want nil", got)
	}
	if got := MakeNot(5).ChildIDs(); len(got) != 1 || got[0] != 5 {
		t.Fatalf("Not(5).ChildIDs() = %v, want [5]", got)
	}
	if got := MakeAnd([]ID{1, 2}).ChildIDs(); len(got) != 2 {
		t.Fatalf("And(1,2).ChildIDs() = %v, want [1 2]", got)
	}
}

func TestSortKeyOrdersOperandBeforeItsNegation(t *testing.T) {
	t.Parallel()
	// exprs[0] = Var(_), exprs[1] = Not(0): SortKey(1) should equal SortKey(0)+1,
	// so a canonical sort places x immediately before Not(x).
	exprs := []Expr{MakeVar(vars.ID(9)), MakeNot(0)}
	if got, want := SortKey(exprs, 1), SortKey(exprs, 0)+1; got != want {
		t.Fatalf("SortKey(Not(x)) = %d, want SortKey(x)+1 = %d", got, want)
	}
}

func TestSortChildrenOrdersBySortKey(t *testing.T) {
	t.Parallel()
	exprs := []Expr{MakeVar(1), MakeVar(2), MakeVar(3)}
	ids := []ID{2, 0, 1}
	SortChildren(exprs, ids)
	for i := 1; i < len(ids); i++ {
		if SortKey(exprs, ids[i-1]) > SortKey(exprs, ids[i]) {
			t.Fatalf("SortChildren left ids out of order: %v", ids)
		}
	}
}
