package arena

import (
	"testing"

	"github.com/ekuiter/clausy-go/internal/expr"
)

func newNamedVars(a *Arena, names ...string) map[string]expr.ID {
	out := make(map[string]expr.ID, len(names))
	for _, n := range names {
		id, _ := a.InternVarNamed(n)
		out[n] = id
	}
	return out
}

func TestInternHashConsesIdenticalStructure(t *testing.T) {
	t.Parallel()
	a := New()
	v := newNamedVars(a, "A", "B")
	and1 := a.Intern(expr.MakeAnd([]expr.ID{v["A"], v["B"]}))
	and2 := a.Intern(expr.MakeAnd([]expr.ID{v["A"], v["B"]}))
	if and1 != and2 {
		t.Fatalf("Intern(And(A,B)) twice gave different ids %d and %d", and1, and2)
	}
}

func TestInternSortsAndDedupesChildren(t *testing.T) {
	t.Parallel()
	a := New()
	v := newNamedVars(a, "A", "B")
	forward := a.Intern(expr.MakeAnd([]expr.ID{v["A"], v["B"]}))
	backward := a.Intern(expr.MakeAnd([]expr.ID{v["B"], v["A"]}))
	if forward != backward {
		t.Fatalf("And(A,B) and And(B,A) interned to different ids: %d, %d", forward, backward)
	}
	dup := a.Intern(expr.MakeAnd([]expr.ID{v["A"], v["A"], v["B"]}))
	if dup != forward {
		t.Fatalf("And(A,A,B) did not dedupe to the same id as And(A,B)")
	}
}

func TestInternCollapsesComplementaryPair(t *testing.T) {
	t.Parallel()
	a := New()
	v := newNamedVars(a, "A")
	notA := a.Intern(expr.MakeNot(v["A"]))
	and := a.Intern(expr.MakeAnd([]expr.ID{v["A"], notA}))
	if a.Node(and).Kind != expr.KindOr || len(a.Node(and).Children) != 0 {
		t.Fatalf("And(A, Not(A)) = %+v, want the empty Or (false)", a.Node(and))
	}
}

func TestPostorderFlattensNestedAnd(t *testing.T) {
	t.Parallel()
	a := New()
	v := newNamedVars(a, "A", "B", "C")
	inner := a.Intern(expr.MakeAnd([]expr.ID{v["A"], v["B"]}))
	outer := a.Intern(expr.MakeAnd([]expr.ID{inner, v["C"]}))

	a.Postorder(&outer, CanonVisitor)

	node := a.Node(outer)
	if node.Kind != expr.KindAnd || len(node.Children) != 3 {
		t.Fatalf("after canon, root = %+v, want a 3-child And", node)
	}
}

func TestNNFPushesNegationThroughAnd(t *testing.T) {
	t.Parallel()
	a := New()
	v := newNamedVars(a, "A", "B")
	and := a.Intern(expr.MakeAnd([]expr.ID{v["A"], v["B"]}))
	root := a.Intern(expr.MakeNot(and))

	a.PrePostorder(&root, NNFVisitor, CanonVisitor)

	node := a.Node(root)
	if node.Kind != expr.KindOr {
		t.Fatalf("Not(And(A,B)) in NNF = %+v, want an Or", node)
	}
	for _, c := range node.Children {
		if a.Node(c).Kind != expr.KindNot {
			t.Fatalf("NNF child %+v is not a negated literal", a.Node(c))
		}
	}
}

func TestCNFDistDistributesOrOverAnd(t *testing.T) {
	t.Parallel()
	a := New()
	v := newNamedVars(a, "A", "B", "C")
	and := a.Intern(expr.MakeAnd([]expr.ID{v["A"], v["B"]}))
	root := a.Intern(expr.MakeOr([]expr.ID{and, v["C"]})) // (A&B)|C

	a.PrePostorder(&root, NNFVisitor, CNFDistVisitor)

	node := a.Node(root)
	if node.Kind != expr.KindAnd || len(node.Children) != 2 {
		t.Fatalf("(A&B)|C distributed = %+v, want a 2-clause And", node)
	}
	for _, c := range node.Children {
		clause := a.Node(c)
		if clause.Kind != expr.KindOr || len(clause.Children) != 2 {
			t.Fatalf("distributed clause %+v is not a 2-literal Or", clause)
		}
	}
}

func TestTseitinReplacesCompoundNodeWithLiteral(t *testing.T) {
	t.Parallel()
	a := New()
	v := newNamedVars(a, "A", "B")
	and := a.Intern(expr.MakeAnd([]expr.ID{v["A"], v["B"]}))
	root := and

	newVars, newClauses := a.RunTseitin(&root)

	if len(newVars) != 1 {
		t.Fatalf("Tseitin on a single And introduced %d aux vars, want 1", len(newVars))
	}
	if a.Node(root).Kind != expr.KindVar {
		t.Fatalf("Tseitin root = %+v, want a Var literal", a.Node(root))
	}
	// v <=> A&B needs 1 "v -> A" + 1 "v -> B" + 1 "A&B -> v" = 3 clauses.
	if len(newClauses) != 3 {
		t.Fatalf("Tseitin produced %d definitional clauses, want 3", len(newClauses))
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	t.Parallel()
	a := New()
	v := newNamedVars(a, "A", "B", "C")
	inner := a.Intern(expr.MakeAnd([]expr.ID{v["A"], v["B"]}))
	root := a.Intern(expr.MakeAnd([]expr.ID{inner, v["C"]}))

	a.Postorder(&root, CanonVisitor)
	first := root
	a.Postorder(&root, CanonVisitor)
	if root != first {
		t.Fatalf("re-canonicalizing an already-canonical root changed its id: %d -> %d", first, root)
	}
}

func TestSimplifyDoubleNegationElimination(t *testing.T) {
	t.Parallel()
	a := New()
	v := newNamedVars(a, "A")
	notA := a.Intern(expr.MakeNot(v["A"]))
	notNotA := a.Intern(expr.MakeNot(notA))
	if notNotA != v["A"] {
		t.Fatalf("Not(Not(A)) interned to %d, want A's own id %d", notNotA, v["A"])
	}
}
