package arena

import "github.com/ekuiter/clausy-go/internal/expr"

// Flatten splices any direct And child of an And node (respectively Or
// under Or) into the parent's own child list, in place. Like Simplify,
// this reuses existing child ids without allocating new expressions, but it
// is only ever safe to call from SetNode (SPEC_FULL.md §4.3), since it
// interacts with in-place mutation: calling it from Intern could silently
// absorb a not-yet-canonicalized child.
func (a *Arena) Flatten(node expr.Expr) expr.Expr {
	switch node.Kind {
	case expr.KindAnd:
		node.Children = spliceSameKind(a.exprs, node.Children, expr.KindAnd)
	case expr.KindOr:
		node.Children = spliceSameKind(a.exprs, node.Children, expr.KindOr)
	}
	return node
}

func spliceSameKind(exprs []expr.Expr, children []expr.ID, kind expr.Kind) []expr.ID {
	out := make([]expr.ID, 0, len(children))
	for _, id := range children {
		if exprs[id].Kind == kind {
			out = append(out, exprs[id].Children...)
		} else {
			out = append(out, id)
		}
	}
	return out
}
