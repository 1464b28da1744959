package arena

import "github.com/ekuiter/clausy-go/internal/expr"

// Visitor is a rewrite callback invoked once per reachable node during a
// traversal. Visitors may mutate the arena via Intern, SetNode, and
// variable/expression creation; they receive the arena itself (not a
// separate id parameter list) so they can look up children as needed.
type Visitor func(a *Arena, id expr.ID)

// Preorder walks every node reachable from *root, visiting each node before
// its children are pushed, each node at most once. Consumes child lists
// right-to-left for locality (SPEC_FULL.md §4.5). Use for top-down rewrites
// like De Morgan pushdown, where structural sharing is only preserved if
// children are not yet mutated when the parent is visited. Resets *root to
// its canonical id once the walk completes.
func (a *Arena) Preorder(root *expr.ID, visit Visitor) {
	remaining := []expr.ID{*root}
	visited := make(map[expr.ID]bool)
	for len(remaining) > 0 {
		id := remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
		if visited[id] {
			continue
		}
		visit(a, id)
		remaining = append(remaining, a.exprs[id].ChildIDs()...)
		visited[id] = true
	}
	*root = a.CanonicalID(*root)
}

// Postorder walks every node reachable from *root bottom-up: a node is
// visited only after all of its children have been visited. Use for
// canonicalization, distributive CNF, and Tseitin, which require children
// already in their final shape. SetNode repairs structural sharing on the
// way up; the root is repaired explicitly once the walk completes.
func (a *Arena) Postorder(root *expr.ID, visit Visitor) {
	remaining := []expr.ID{*root}
	seen := make(map[expr.ID]bool)
	visited := make(map[expr.ID]bool)
	for len(remaining) > 0 {
		id := remaining[len(remaining)-1]
		children := a.exprs[id].ChildIDs()
		if len(children) > 0 && !seen[id] && !visited[id] {
			seen[id] = true
			remaining = append(remaining, children...)
		} else {
			if !visited[id] {
				visit(a, id)
				visited[id] = true
				delete(seen, id)
			}
			remaining = remaining[:len(remaining)-1]
		}
	}
	*root = a.CanonicalID(*root)
}

// PrePostorder combines a preorder and a postorder visitor in a single
// walk: each interior node is visited twice (pre, then post), but each leaf
// (Var) only once (post). Use for NNF-then-canonicalize and
// NNF-then-distribute, where the preorder pass pushes negations down and
// the postorder pass repairs canonical form / distributes on the way back
// up. Resets *root once the walk completes.
func (a *Arena) PrePostorder(root *expr.ID, pre, post Visitor) {
	remaining := []expr.ID{*root}
	seen := make(map[expr.ID]bool)
	visited := make(map[expr.ID]bool)
	for len(remaining) > 0 {
		id := remaining[len(remaining)-1]
		children := a.exprs[id].ChildIDs()
		if len(children) > 0 && !seen[id] && !visited[id] {
			seen[id] = true
			pre(a, id)
			remaining = append(remaining, a.exprs[id].ChildIDs()...)
		} else {
			if !visited[id] {
				post(a, id)
				visited[id] = true
				delete(seen, id)
			}
			remaining = remaining[:len(remaining)-1]
		}
	}
	*root = a.CanonicalID(*root)
}
