package arena

import (
	"github.com/ekuiter/clausy-go/internal/expr"
	"github.com/ekuiter/clausy-go/internal/vars"
)

// TseitinVisitor replaces each non-empty And/Or node encountered postorder
// with a fresh auxiliary variable, emitting definitional clauses that
// capture v <=> op(children) into the arena's scratch buffers
// (SPEC_FULL.md §4.6 "Tseitin CNF"). The scratch buffers must be armed
// (via the unexported beginScratch) before this visitor is driven with
// Postorder; RunTseitin does both, and its caller (formula.ToCNFTseitin)
// folds the collected clauses and variables into the formula afterwards.
//
// Assumes canonical input to minimize the number of auxiliary variables
// introduced; Var and Not nodes are left unchanged.
func TseitinVisitor(a *Arena, id expr.ID) {
	node := a.exprs[id]
	switch node.Kind {
	case expr.KindVar, expr.KindNot:
		return
	case expr.KindAnd:
		if len(node.Children) == 0 {
			return
		}
		v := a.defAnd(node.Children)
		a.SetNode(id, expr.MakeVar(v))
	case expr.KindOr:
		if len(node.Children) == 0 {
			return
		}
		v := a.defOr(node.Children)
		a.SetNode(id, expr.MakeVar(v))
	}
}

// defAnd allocates a fresh auxiliary variable v for And(children) and
// emits the clauses defining v <=> AND(children):
//
//	for each child c: Or(¬v, c)      (v  -> c)
//	Or(v, ¬c1, ¬c2, ...)             (AND(c) -> v)
func (a *Arena) defAnd(children []expr.ID) vars.ID {
	v := a.NewAuxVar()
	eV := a.Intern(expr.MakeVar(v))
	eNV := a.Intern(expr.MakeNot(eV))

	clauses := make([]expr.ID, 0, len(children)+1)
	for _, c := range children {
		clauses = append(clauses, a.Intern(expr.MakeOr([]expr.ID{eNV, c})))
	}
	impliesV := append([]expr.ID{eV}, negateAll(a, children)...)
	clauses = append(clauses, a.Intern(expr.MakeOr(impliesV)))

	a.pushScratchVar(v)
	a.pushScratchExprs(clauses...)
	return v
}

// defOr allocates a fresh auxiliary variable v for Or(children) and emits
// the clauses defining v <=> OR(children):
//
//	Or(¬v, c1, c2, ...)              (v -> OR(c))
//	for each child c: Or(v, ¬c)      (c -> v)
func (a *Arena) defOr(children []expr.ID) vars.ID {
	v := a.NewAuxVar()
	eV := a.Intern(expr.MakeVar(v))
	eNV := a.Intern(expr.MakeNot(eV))

	vImplies := append([]expr.ID{eNV}, children...)
	clauses := make([]expr.ID, 0, len(children)+1)
	clauses = append(clauses, a.Intern(expr.MakeOr(vImplies)))
	for _, c := range children {
		clauses = append(clauses, a.Intern(expr.MakeOr([]expr.ID{eV, a.Intern(expr.MakeNot(c))})))
	}

	a.pushScratchVar(v)
	a.pushScratchExprs(clauses...)
	return v
}

// RunTseitin drives a Postorder Tseitin pass over *root, collecting the
// auxiliary variables and definitional clauses it produced, and returns
// them so the caller (formula.ToCNFTseitin) can fold them into the
// formula's sub-variables and root.
func (a *Arena) RunTseitin(root *expr.ID) (newVars []vars.ID, newClauses []expr.ID) {
	end := a.beginScratch()
	a.Postorder(root, TseitinVisitor)
	return end()
}
