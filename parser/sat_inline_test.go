package parser

import (
	"testing"

	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/expr"
	"github.com/ekuiter/clausy-go/internal/vars"
)

func TestSatInlineCombinesReferencesWithNegation(t *testing.T) {
	t.Parallel()
	a := arena.New()
	idA, vA := a.InternVarNamed("A")
	idB, vB := a.InternVarNamed("B")
	refs := []Ref{
		{Root: idA, SubVarIDs: map[vars.ID]struct{}{vA: {}}},
		{Root: idB, SubVarIDs: map[vars.ID]struct{}{vB: {}}},
	}

	f, err := SatInline{Refs: refs}.ParseInto("t.sat", "and(1, -2)", a)
	if err != nil {
		t.Fatalf("ParseInto returned an error: %v", err)
	}
	if len(f.SubVarIDs) != 2 {
		t.Fatalf("SubVarIDs = %v, want 2 (A and B)", f.SubVarIDs)
	}
	root := a.Node(f.RootID)
	if root.Kind != expr.KindAnd || len(root.Children) != 2 {
		t.Fatalf("root = %+v, want And(A, Not(B))", root)
	}
}

func TestSatInlineRejectsOutOfRangeReference(t *testing.T) {
	t.Parallel()
	a := arena.New()
	idA, vA := a.InternVarNamed("A")
	refs := []Ref{{Root: idA, SubVarIDs: map[vars.ID]struct{}{vA: {}}}}

	_, err := SatInline{Refs: refs}.ParseInto("t.sat", "2", a)
	if err == nil {
		t.Fatalf("ParseInto accepted a reference beyond len(Refs)")
	}
}

func TestSatInlineAddBackboneVarsPadsExclusiveVariables(t *testing.T) {
	t.Parallel()
	a := arena.New()
	idA, vA := a.InternVarNamed("A")
	// B is named in the arena (e.g. by a sibling formula) but not mentioned
	// by this reference's own SubVarIDs, so AddBackboneVars should conjoin
	// in Not(B) to align this reference onto the full variable universe.
	_, vB := a.InternVarNamed("B")
	refs := []Ref{{Root: idA, SubVarIDs: map[vars.ID]struct{}{vA: {}}}}

	f, err := SatInline{Refs: refs, AddBackboneVars: true}.ParseInto("t.sat", "1", a)
	if err != nil {
		t.Fatalf("ParseInto returned an error: %v", err)
	}
	root := a.Node(f.RootID)
	if root.Kind != expr.KindAnd || len(root.Children) != 2 {
		t.Fatalf("root = %+v, want And(A, Not(B)) from backbone padding", root)
	}
	if _, ok := f.SubVarIDs[vB]; !ok {
		t.Fatalf("SubVarIDs = %v, want it to include the backbone-padded variable B, since the root now references it", f.SubVarIDs)
	}
	if _, ok := f.SubVarIDs[vA]; !ok {
		t.Fatalf("SubVarIDs = %v, want it to still include A", f.SubVarIDs)
	}
}
