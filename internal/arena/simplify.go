package arena

import "github.com/ekuiter/clausy-go/internal/expr"

// Simplify applies the local simplification rules of SPEC_FULL.md §4.2 to
// node, returning an equivalent (usually smaller) node. Applied once, not
// to a fixed point; never allocates child expressions (it only rearranges
// or drops ids already present in node). Called by Intern on every
// insertion and by SetNode on every mutation.
func (a *Arena) Simplify(node expr.Expr) expr.Expr {
	switch node.Kind {
	case expr.KindVar:
		return node
	case expr.KindNot:
		// Double-negation: Not(Not(x)) -> x.
		if child := a.exprs[node.Child]; child.Kind == expr.KindNot {
			return a.exprs[child.Child]
		}
		return node
	case expr.KindAnd:
		return a.simplifyNary(node, expr.KindAnd)
	case expr.KindOr:
		return a.simplifyNary(node, expr.KindOr)
	default:
		Bugf("arena: Simplify: unknown expression kind %d", node.Kind)
		panic("unreachable")
	}
}

// simplifyNary implements sort+dedupe, unary collapse, and complementary
// pair annihilation for And/Or nodes. own is the node's own kind;
// dual is the kind a complementary pair collapses to (And -> Or([]),
// Or -> And([])).
func (a *Arena) simplifyNary(node expr.Expr, own expr.Kind) expr.Expr {
	children := append([]expr.ID(nil), node.Children...)
	expr.SortChildren(a.exprs, children)
	children = dedupAdjacent(children)

	if len(children) == 1 {
		return a.exprs[children[0]]
	}

	if hasComplementaryPair(a.exprs, children) {
		dual := expr.KindOr
		if own == expr.KindOr {
			dual = expr.KindAnd
		}
		if dual == expr.KindAnd {
			return expr.MakeAnd(nil)
		}
		return expr.MakeOr(nil)
	}

	node.Children = children
	return node
}

func dedupAdjacent(ids []expr.ID) []expr.ID {
	if len(ids) == 0 {
		return ids
	}
	out := ids[:1]
	for _, id := range ids[1:] {
		if id != out[len(out)-1] {
			out = append(out, id)
		}
	}
	return out
}

// hasComplementaryPair reports whether, after sorting by expr.SortKey, any
// adjacent pair (x, Not(x)) occurs among children.
func hasComplementaryPair(exprs []expr.Expr, children []expr.ID) bool {
	for i := 0; i+1 < len(children); i++ {
		a, b := children[i], children[i+1]
		if exprs[a].Kind == expr.KindNot {
			continue
		}
		nb := exprs[b]
		if nb.Kind == expr.KindNot && nb.Child == a {
			return true
		}
	}
	return false
}
