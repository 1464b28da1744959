package arena

import "github.com/ekuiter/clausy-go/internal/expr"

// CanonVisitor re-establishes canonical form for the node at id by passing
// it back through SetNode (SPEC_FULL.md §4.6 "Canonicalize"). Must be
// driven by Postorder: children need to already be canonical before a
// parent's own canonicalization can repair sharing all the way up.
func CanonVisitor(a *Arena, id expr.ID) {
	a.SetNode(id, a.exprs[id])
}
