package arena

import "github.com/ekuiter/clausy-go/internal/expr"

// CNFDistVisitor multiplies Or out over And, assuming its input is already
// in NNF (SPEC_FULL.md §4.6 "Distributive CNF"). Must be driven as the
// postorder half of PrePostorder, paired with NNFVisitor as the preorder
// half: children need to already be distributed CNF before a parent Or can
// multiply them out. And nodes are passed back through SetNode, which
// splices in the clauses of any child that distribution has turned into an
// And, so the result stays a flat conjunction of clauses.
//
// Worst-case output size is exponential in the number of nested
// disjunctions of conjunctions; there is no cutoff (Tseitin is the escape
// valve for formulas where this matters).
func CNFDistVisitor(a *Arena, id expr.ID) {
	node := a.exprs[id]
	switch node.Kind {
	case expr.KindVar, expr.KindNot:
		return
	case expr.KindAnd:
		a.SetNode(id, a.exprs[id])
		return
	case expr.KindOr:
		clauses := distribute(a, node.Children)
		clauseIDs := make([]expr.ID, len(clauses))
		for i, clause := range clauses {
			clauseIDs[i] = a.Intern(expr.MakeOr(clause))
		}
		a.SetNode(id, expr.MakeAnd(clauseIDs))
	}
}

// distribute computes the cross-product of clauses implied by an Or whose
// children are children. Each child contributes a list of "alternatives":
// its own children if it's an And (each alternative extends a partial
// clause independently, realizing Or(And(a,b), c) = And(Or(a,c), Or(b,c)));
// otherwise the singleton [child] (a Var, Not(Var), or already-CNF Or).
func distribute(a *Arena, children []expr.ID) [][]expr.ID {
	clauses := [][]expr.ID{{}}
	for _, child := range children {
		alternatives := alternativesFor(a, child)
		next := make([][]expr.ID, 0, len(clauses)*len(alternatives))
		for _, partial := range clauses {
			for _, alt := range alternatives {
				next = append(next, extendClause(a, partial, alt))
			}
		}
		clauses = next
	}
	return clauses
}

func alternativesFor(a *Arena, child expr.ID) []expr.ID {
	node := a.exprs[child]
	if node.Kind == expr.KindAnd {
		return node.Children
	}
	return []expr.ID{child}
}

// extendClause appends alt's literals to partial: if alt is itself an Or
// (already-distributed sub-clause), its children are spliced in; otherwise
// alt is appended as a single literal.
func extendClause(a *Arena, partial []expr.ID, alt expr.ID) []expr.ID {
	out := append([]expr.ID(nil), partial...)
	node := a.exprs[alt]
	if node.Kind == expr.KindOr {
		return append(out, node.Children...)
	}
	return append(out, alt)
}
