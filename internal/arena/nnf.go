package arena

import "github.com/ekuiter/clausy-go/internal/expr"

// NNFVisitor pushes a single negation down one level by De Morgan's laws
// (SPEC_FULL.md §4.6 "NNF"). Must be driven as the preorder half of
// PrePostorder, paired with CanonVisitor (ToNNF) or CNFDistVisitor
// (ToCNFDist) as the postorder half: preorder
// visits parents before children, which is required for pushdown to see
// the original (not-yet-rewritten) shape of each Not's child.
func NNFVisitor(a *Arena, id expr.ID) {
	node := a.exprs[id]
	if node.Kind != expr.KindNot {
		return
	}
	child := a.exprs[node.Child]
	switch child.Kind {
	case expr.KindVar:
		// A negated literal; nothing to push further.
	case expr.KindNot:
		// Double negation should already have been eliminated by Simplify,
		// but handle it defensively: Not(Not(x)) -> x.
		a.SetNode(id, a.exprs[child.Child])
	case expr.KindAnd:
		a.SetNode(id, expr.MakeOr(negateAll(a, child.Children)))
	case expr.KindOr:
		a.SetNode(id, expr.MakeAnd(negateAll(a, child.Children)))
	}
}

// negateAll interns Not(id) for each id in ids, returning the new ids.
func negateAll(a *Arena, ids []expr.ID) []expr.ID {
	out := make([]expr.ID, len(ids))
	for i, id := range ids {
		out[i] = a.Intern(expr.MakeNot(id))
	}
	return out
}
