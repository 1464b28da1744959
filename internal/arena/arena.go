// Package arena implements the shared, hash-consed DAG that represents many
// formulas at once (SPEC_FULL.md §4). It owns all variables and expressions,
// provides hash-consed insertion with in-place mutation, and the traversal
// primitives rewrite passes are built from.
//
// An Arena is not safe for concurrent use: SPEC_FULL.md §5 specifies a
// single-threaded execution model with no reentrancy and no cancellation, so
// Arena deliberately carries no synchronization of its own.
package arena

import (
	"fmt"

	"github.com/ekuiter/clausy-go/internal/expr"
	"github.com/ekuiter/clausy-go/internal/vars"
)

// Arena owns all expressions and variables created during a session.
type Arena struct {
	Vars *vars.Table

	exprs    []expr.Expr          // exprs[id] -> node; append-only, mutable in place
	exprsInv map[uint64][]expr.ID // hash(node) -> candidate ids; never shrinks

	// scratch buffers used by the Tseitin rewrite to stash auxiliary
	// variables and definitional clauses produced outside the current
	// traversal. Non-nil only while a Tseitin pass is running.
	scratchVars  *[]vars.ID
	scratchExprs *[]expr.ID
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{
		Vars:     vars.New(),
		exprsInv: make(map[uint64][]expr.ID),
	}
}

// Bugf panics with a formatted message. Per SPEC_FULL.md §7, every arena
// operation either succeeds or indicates a bug in a rewrite or its caller —
// there is no recoverable error path inside the core.
func Bugf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// Node returns the expression currently stored at id. Panics if id is out
// of range, which can only happen if a caller holds a stale or foreign id.
func (a *Arena) Node(id expr.ID) expr.Expr {
	if int(id) < 0 || int(id) >= len(a.exprs) {
		Bugf("arena: expression id %d out of range (len=%d)", id, len(a.exprs))
	}
	return a.exprs[id]
}

// Len returns the number of expressions ever created in this arena.
func (a *Arena) Len() int { return len(a.exprs) }

// lookup returns the canonical id for node — the first id in the node's
// hash bucket whose stored expression equals it (SPEC_FULL.md §3, invariant
// 3) — or false if no such id exists yet.
func (a *Arena) lookup(node expr.Expr) (expr.ID, bool) {
	for _, id := range a.exprsInv[node.Hash()] {
		if a.exprs[id].Equal(node) {
			return id, true
		}
	}
	return 0, false
}

// append adds node as a brand new expression and indexes it, returning its
// (necessarily canonical, since nothing equal existed) id.
func (a *Arena) append(node expr.Expr) expr.ID {
	id := expr.ID(len(a.exprs))
	a.exprs = append(a.exprs, node)
	h := node.Hash()
	a.exprsInv[h] = append(a.exprsInv[h], id)
	return id
}

// invalidate re-indexes the (freshly mutated) expression at id under its
// current hash, without removing whatever stale bucket entries point to it
// under a prior hash. Both true collisions and stale entries are filtered
// at lookup time by Equal (SPEC_FULL.md §4.4 step 5).
func (a *Arena) invalidate(id expr.ID) {
	h := a.exprs[id].Hash()
	a.exprsInv[h] = append(a.exprsInv[h], id)
}

// Intern inserts node into the arena, applying local simplification first,
// and returns its canonical id: an existing equal node's id if one exists,
// otherwise a freshly appended id (SPEC_FULL.md §4.1).
func (a *Arena) Intern(node expr.Expr) expr.ID {
	node = a.Simplify(node)
	if id, ok := a.lookup(node); ok {
		return id
	}
	return a.append(node)
}

// InternVarNamed looks up or creates a Named(name) variable, then interns
// its Var expression. Returns both ids since callers frequently need both.
func (a *Arena) InternVarNamed(name string) (expr.ID, vars.ID) {
	varID := a.Vars.InternNamed(name)
	return a.Intern(expr.MakeVar(varID)), varID
}

// NewAuxVar creates and returns a fresh auxiliary variable id, with no
// corresponding expression interned yet. Exposed for rewrites (Tseitin) and
// for parsers that must materialize unnamed placeholders (e.g. DIMACS
// variable-number gaps).
func (a *Arena) NewAuxVar() vars.ID {
	return a.Vars.NewAux()
}

// NewAuxVarExpr creates a fresh auxiliary variable and interns its Var
// expression in one step.
func (a *Arena) NewAuxVarExpr() (vars.ID, expr.ID) {
	v := a.NewAuxVar()
	return v, a.Intern(expr.MakeVar(v))
}

// CanonicalID returns the canonical id for whatever node is currently
// stored at id — i.e. re-resolves id through the reverse index. Used to
// repair a formula's root after a postorder traversal has canonicalized
// every proper sub-expression but could not repair the root itself (it has
// no parent to do so via SetNode).
func (a *Arena) CanonicalID(id expr.ID) expr.ID {
	canon, ok := a.lookup(a.exprs[id])
	if !ok {
		Bugf("arena: no canonical id for expression at %d (%+v)", id, a.exprs[id])
	}
	return canon
}

// beginScratch activates the Tseitin scratch buffers, returning a function
// that deactivates them and returns their final contents.
func (a *Arena) beginScratch() func() ([]vars.ID, []expr.ID) {
	vs := make([]vars.ID, 0)
	es := make([]expr.ID, 0)
	a.scratchVars = &vs
	a.scratchExprs = &es
	return func() ([]vars.ID, []expr.ID) {
		a.scratchVars = nil
		a.scratchExprs = nil
		return vs, es
	}
}

func (a *Arena) pushScratchVar(v vars.ID) {
	if a.scratchVars == nil {
		Bugf("arena: pushScratchVar called outside a Tseitin pass")
	}
	*a.scratchVars = append(*a.scratchVars, v)
}

func (a *Arena) pushScratchExprs(ids ...expr.ID) {
	if a.scratchExprs == nil {
		Bugf("arena: pushScratchExprs called outside a Tseitin pass")
	}
	*a.scratchExprs = append(*a.scratchExprs, ids...)
}
