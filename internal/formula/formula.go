// Package formula implements the formula handle: a lightweight view
// {SubVarIDs, RootID, Provenance} into an arena, and the rewrite entry
// points invoked on it (SPEC_FULL.md §4.8).
package formula

import (
	"fmt"
	"strings"

	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/expr"
	"github.com/ekuiter/clausy-go/internal/vars"
)

// Provenance records where a formula came from, for diagnostics
// (assert_count needs the original file to re-derive an expected count).
type Provenance struct {
	Path      string
	Extension string
}

// Formula is a view into an Arena: the set of variables considered in
// scope for this formula's universe of solutions (SubVarIDs, possibly a
// superset of the variables actually appearing below RootID), and the root
// expression id of its syntax tree. Cheap to copy; must not outlive the
// Arena it indexes into.
type Formula struct {
	SubVarIDs  map[vars.ID]struct{}
	RootID     expr.ID
	Provenance *Provenance
}

// New constructs a Formula from an explicit sub-variable set and root.
func New(subVarIDs map[vars.ID]struct{}, root expr.ID, prov *Provenance) *Formula {
	return &Formula{SubVarIDs: subVarIDs, RootID: root, Provenance: prov}
}

// Clone returns a value copy of f (a fresh SubVarIDs map, same RootID and
// Provenance pointer); cheap, since Formula owns no arena nodes itself.
func (f *Formula) Clone() *Formula {
	sub := make(map[vars.ID]struct{}, len(f.SubVarIDs))
	for id := range f.SubVarIDs {
		sub[id] = struct{}{}
	}
	return &Formula{SubVarIDs: sub, RootID: f.RootID, Provenance: f.Provenance}
}

// SubVars returns the variable ids in f's universe (f.SubVarIDs), in no
// particular order; a's variable table is not consulted.
func (f *Formula) SubVars(a *arena.Arena) []vars.ID {
	out := make([]vars.ID, 0, len(f.SubVarIDs))
	for id := range f.SubVarIDs {
		out = append(out, id)
	}
	return out
}

// SubExprs returns the ids of every sub-expression of f, in preorder. If f
// is in canonical form, each id appears exactly once.
func (f *Formula) SubExprs(a *arena.Arena) []expr.ID {
	var out []expr.ID
	root := f.RootID
	a.Preorder(&root, func(a *arena.Arena, id expr.ID) {
		out = append(out, id)
	})
	f.RootID = root
	return out
}

// AssertCanon panics unless every sub-expression's stored id equals its own
// canonical id — i.e. unless structural sharing holds throughout f. A
// debug-only check (SPEC_FULL.md §4.8), meant to be run after a command
// when rtconfig.Config.DebugAssert is set.
func (f *Formula) AssertCanon(a *arena.Arena) {
	root := f.RootID
	a.Preorder(&root, func(a *arena.Arena, id expr.ID) {
		if a.CanonicalID(id) != id {
			arena.Bugf("formula: structural sharing violated at expression %d", id)
		}
	})
	f.RootID = root
}

// ToCanon transforms f into canonical form in place (SPEC_FULL.md §4.6
// "Canonicalize"): structural sharing; no And under And, Or under Or, Not
// under Not; children of And/Or sorted and deduplicated; unary nodes
// collapsed.
func (f *Formula) ToCanon(a *arena.Arena) {
	a.Postorder(&f.RootID, arena.CanonVisitor)
}

// ToNNF transforms f into negation normal form in place (SPEC_FULL.md §4.6
// "NNF"): every Not node's child becomes a Var.
func (f *Formula) ToNNF(a *arena.Arena) {
	a.PrePostorder(&f.RootID, arena.NNFVisitor, arena.CanonVisitor)
}

// ToCNFDist transforms f into distributive CNF in place (SPEC_FULL.md §4.6
// "Distributive CNF"): first to NNF, then Or is exhaustively distributed
// over And. Worst-case exponential in output size; no cutoff.
func (f *Formula) ToCNFDist(a *arena.Arena) {
	a.PrePostorder(&f.RootID, arena.NNFVisitor, arena.CNFDistVisitor)
}

// ToCNFTseitin transforms f into an equisatisfiable Tseitin CNF in place
// (SPEC_FULL.md §4.6 "Tseitin CNF"): every non-empty And/Or sub-expression
// is abbreviated by a fresh auxiliary variable, with definitional clauses
// conjoined onto the root. f.SubVarIDs is extended with the introduced
// auxiliary variables. Assumes f is already in canonical form to minimize
// the number of auxiliary variables introduced.
func (f *Formula) ToCNFTseitin(a *arena.Arena) {
	newVars, newClauses := a.RunTseitin(&f.RootID)
	for _, v := range newVars {
		f.SubVarIDs[v] = struct{}{}
	}
	children := append([]expr.ID{f.RootID}, newClauses...)
	f.RootID = a.Intern(expr.MakeAnd(children))
}

// RemoveConstraints returns a new formula containing only the top-level
// conjuncts of f (which must be in proto-CNF, i.e. a conjunction of
// constraints — see SPEC_FULL.md §4.8) whose sub-DAG does not mention any
// variable in ids. Panics if f's root is not an And expression.
func (f *Formula) RemoveConstraints(ids map[vars.ID]struct{}, a *arena.Arena) *Formula {
	node := a.Node(f.RootID)
	if node.Kind != expr.KindAnd {
		arena.Bugf("formula: RemoveConstraints requires a conjunctive root, got %v", node.Kind)
	}
	kept := make([]expr.ID, 0, len(node.Children))
	for _, c := range node.Children {
		if !containsVar(a, c, ids) {
			kept = append(kept, c)
		}
	}
	root := a.Intern(expr.MakeAnd(kept))
	return f.Clone().withRoot(root)
}

func (f *Formula) withRoot(root expr.ID) *Formula {
	f.RootID = root
	return f
}

// containsVar reports whether the sub-DAG rooted at id references any
// variable in ids.
func containsVar(a *arena.Arena, id expr.ID, ids map[vars.ID]struct{}) bool {
	var found bool
	visited := make(map[expr.ID]bool)
	var walk func(expr.ID)
	walk = func(id expr.ID) {
		if found || visited[id] {
			return
		}
		visited[id] = true
		node := a.Node(id)
		if node.Kind == expr.KindVar {
			if _, ok := ids[node.Var]; ok {
				found = true
			}
			return
		}
		for _, c := range node.ChildIDs() {
			walk(c)
		}
	}
	walk(id)
	return found
}

// String renders f for diagnostics (used by the `print`/`print_sub_exprs`
// driver verbs). printIDs, if true, appends "@<id>" to every node.
func (f *Formula) String(a *arena.Arena, printIDs bool, auxPrefix string) string {
	var sb strings.Builder
	formatExpr(&sb, a, f.RootID, printIDs, auxPrefix)
	return sb.String()
}

func formatExpr(sb *strings.Builder, a *arena.Arena, id expr.ID, printIDs bool, auxPrefix string) {
	suffix := ""
	if printIDs {
		suffix = fmt.Sprintf("@%d", id)
	}
	node := a.Node(id)
	switch node.Kind {
	case expr.KindVar:
		v, ok := a.Vars.Lookup(node.Var)
		if !ok {
			arena.Bugf("formula: unknown variable id %d", node.Var)
		}
		sb.WriteString(v.String(auxPrefix))
		sb.WriteString(suffix)
	case expr.KindNot:
		sb.WriteString("Not")
		sb.WriteString(suffix)
		sb.WriteByte('(')
		formatExpr(sb, a, node.Child, printIDs, auxPrefix)
		sb.WriteByte(')')
	default:
		kind := "And"
		if node.Kind == expr.KindOr {
			kind = "Or"
		}
		sb.WriteString(kind)
		sb.WriteString(suffix)
		sb.WriteByte('(')
		for i, c := range node.Children {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatExpr(sb, a, c, printIDs, auxPrefix)
		}
		sb.WriteByte(')')
	}
}
