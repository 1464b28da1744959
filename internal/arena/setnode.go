package arena

import "github.com/ekuiter/clausy-go/internal/expr"

// SetNode replaces the expression stored at id with newNode, the only
// mechanism that can temporarily violate hash-consing — and the mechanism
// responsible for re-establishing it (SPEC_FULL.md §4.4). It:
//
//  1. is a no-op if exprs[id] is a Var (leaves are never rewritten);
//  2. canonicalizes every child id of newNode, repairing violations left
//     behind by earlier SetNode calls in the same traversal;
//  3. flattens, then simplifies newNode;
//  4. overwrites exprs[id];
//  5. invalidates id under its new hash.
//
// Because step 2 repairs children, SetNode only preserves structural
// sharing across a full postorder traversal (children visited before
// parents); a preorder traversal must follow up with CanonicalID on the
// root once finished, same as every traversal primitive in this package
// does automatically.
func (a *Arena) SetNode(id expr.ID, newNode expr.Expr) {
	if a.exprs[id].Kind == expr.KindVar {
		return
	}

	switch newNode.Kind {
	case expr.KindVar:
		// nothing to canonicalize
	case expr.KindNot:
		newNode.Child = a.CanonicalID(newNode.Child)
	case expr.KindAnd, expr.KindOr:
		children := append([]expr.ID(nil), newNode.Children...)
		for i, c := range children {
			children[i] = a.CanonicalID(c)
		}
		newNode.Children = children
	default:
		Bugf("arena: SetNode: unknown expression kind %d", newNode.Kind)
	}

	newNode = a.Flatten(newNode)
	newNode = a.Simplify(newNode)

	a.exprs[id] = newNode
	a.invalidate(id)
}
