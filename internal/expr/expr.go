// Package expr defines the tagged expression variant stored in an arena:
// Var, Not, And, and Or nodes referencing each other by ExprID.
package expr

import (
	"hash/maphash"
	"sort"

	"github.com/ekuiter/clausy-go/internal/vars"
)

// ID identifies an expression within an arena. IDs are assigned in a
// strictly increasing sequence and are never recycled.
type ID int

// Kind discriminates the four expression shapes. Kept as a one-word tag
// read on every traversal step (design note, SPEC_FULL.md §4).
type Kind uint8

const (
	KindVar Kind = iota
	KindNot
	KindAnd
	KindOr
)

// Expr is a node in the shared formula DAG. Only one of Var/Child/Children
// is meaningful, selected by Kind:
//
//	KindVar:           Var
//	KindNot:           Child
//	KindAnd, KindOr:   Children
//
// Children of And/Or are order-insensitive semantically; Simplify (in
// package arena) establishes a canonical sorted, deduplicated order.
type Expr struct {
	Kind     Kind
	Var      vars.ID
	Child    ID
	Children []ID
}

// MakeVar constructs a Var(v) leaf.
func MakeVar(v vars.ID) Expr { return Expr{Kind: KindVar, Var: v} }

// MakeNot constructs a Not(child) node.
func MakeNot(child ID) Expr { return Expr{Kind: KindNot, Child: child} }

// MakeAnd constructs an And(children) node. The slice is not copied; callers
// must not alias it afterwards.
func MakeAnd(children []ID) Expr { return Expr{Kind: KindAnd, Children: children} }

// MakeOr constructs an Or(children) node.
func MakeOr(children []ID) Expr { return Expr{Kind: KindOr, Children: children} }

// ChildIDs returns the expression IDs that are direct children of e. Var
// leaves have none.
func (e Expr) ChildIDs() []ID {
	switch e.Kind {
	case KindVar:
		return nil
	case KindNot:
		return []ID{e.Child}
	default:
		return e.Children
	}
}

// Equal reports whether e and o denote the identical node shape (same kind,
// same variable/child/children in the same order). Used by the arena to
// resolve hash-bucket collisions; And/Or children must already be in
// canonical (sorted, deduped) order for this to agree with the "same
// sub-expression" definition in SPEC_FULL.md §3.
func (e Expr) Equal(o Expr) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case KindVar:
		return e.Var == o.Var
	case KindNot:
		return e.Child == o.Child
	default:
		if len(e.Children) != len(o.Children) {
			return false
		}
		for i := range e.Children {
			if e.Children[i] != o.Children[i] {
				return false
			}
		}
		return true
	}
}

var seed = maphash.MakeSeed()

// Hash computes a hash of e suitable for bucketing in the arena's reverse
// index. Distinct nodes may collide; callers must always verify with Equal.
func (e Expr) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(e.Kind))
	switch e.Kind {
	case KindVar:
		writeInt(&h, int64(e.Var))
	case KindNot:
		writeInt(&h, int64(e.Child))
	default:
		for _, c := range e.Children {
			writeInt(&h, int64(c))
		}
	}
	return h.Sum64()
}

func writeInt(h *maphash.Hash, v int64) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	h.Write(buf[:])
}

// SortKey returns the key used to order And/Or children: a Not(x) sorts
// adjacent-but-after its operand x, via key = 2*x (for x) or 2*x+1 (for
// Not(x)). This implements commutativity and sets up adjacency for
// complementary-pair detection (SPEC_FULL.md §4.2).
func SortKey(exprs []Expr, id ID) int {
	if int(id) < len(exprs) && exprs[id].Kind == KindNot {
		return 2*int(exprs[id].Child) + 1
	}
	return 2 * int(id)
}

// SortChildren sorts ids in place by SortKey.
func SortChildren(exprs []Expr, ids []ID) {
	sort.Slice(ids, func(i, j int) bool {
		return SortKey(exprs, ids[i]) < SortKey(exprs, ids[j])
	})
}
