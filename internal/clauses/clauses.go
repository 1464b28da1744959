// Package clauses extracts the clause representation of a CNF formula — a
// flat list of signed-literal clauses plus the variable table they index
// into — from its arena DAG (SPEC_FULL.md §4.7), grounded on
// original_source/src/core/cnf.rs's get_clauses/Display.
package clauses

import (
	"fmt"

	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/expr"
	"github.com/ekuiter/clausy-go/internal/formula"
	"github.com/ekuiter/clausy-go/internal/vars"
)

// CNF is the clause representation of a formula already known to be in
// conjunctive normal form (ToCNFDist or ToCNFTseitin). A clause is a slice
// of literals: a variable's own ID for a positive occurrence, its negation
// for a negative one. Literal 0 never occurs (vars.ID 0 is reserved).
type CNF struct {
	Clauses [][]int32
	Vars    *vars.Table
}

// Extract reads f's root as a CNF shape and returns its clause list. f's
// root must be one of: a single literal (Var or Not(Var)), a disjunction of
// literals, or a conjunction whose every conjunct is itself a literal or a
// disjunction of literals — i.e. exactly the shape ToCNFDist/ToCNFTseitin
// produce. Panics (via arena.Bugf) on any other shape.
func Extract(f *formula.Formula, a *arena.Arena) *CNF {
	var out [][]int32
	root := a.Node(f.RootID)
	switch root.Kind {
	case expr.KindVar, expr.KindNot:
		out = append(out, literalClause(a, f.RootID))
	case expr.KindOr:
		out = append(out, literalsOf(a, root.Children))
	case expr.KindAnd:
		for _, childID := range root.Children {
			child := a.Node(childID)
			switch child.Kind {
			case expr.KindVar, expr.KindNot:
				out = append(out, literalClause(a, childID))
			case expr.KindOr:
				out = append(out, literalsOf(a, child.Children))
			default:
				arena.Bugf("clauses: expected a literal or Or expression under the root And, got %v", child.Kind)
			}
		}
	}
	cnf := &CNF{Clauses: out, Vars: a.Vars}
	cnf.assertValid()
	return cnf
}

func literalsOf(a *arena.Arena, ids []expr.ID) []int32 {
	lits := make([]int32, len(ids))
	for i, id := range ids {
		lits[i] = literal(a, id)
	}
	return lits
}

func literalClause(a *arena.Arena, id expr.ID) []int32 {
	return []int32{literal(a, id)}
}

// literal resolves a Var or Not(Var) expression to a signed literal.
func literal(a *arena.Arena, id expr.ID) int32 {
	node := a.Node(id)
	switch node.Kind {
	case expr.KindVar:
		return int32(node.Var)
	case expr.KindNot:
		child := a.Node(node.Child)
		if child.Kind != expr.KindVar {
			arena.Bugf("clauses: expected a variable below Not, got %v", child.Kind)
		}
		return -int32(child.Var)
	default:
		arena.Bugf("clauses: expected a Var or Not literal, got %v", node.Kind)
		return 0
	}
}

// assertValid panics unless this CNF has at least one variable and one
// clause, every clause is non-empty, every literal is non-zero, and every
// literal references a variable present in Vars.
func (c *CNF) assertValid() {
	if c.Vars.Len() == 0 || len(c.Clauses) == 0 {
		arena.Bugf("clauses: CNF is invalid: %d variables, %d clauses", c.Vars.Len(), len(c.Clauses))
	}
	for _, clause := range c.Clauses {
		if len(clause) == 0 {
			arena.Bugf("clauses: empty clause is not allowed")
		}
		for _, lit := range clause {
			if lit == 0 {
				arena.Bugf("clauses: literal 0 is not allowed")
			}
			id := vars.ID(lit)
			if id < 0 {
				id = -id
			}
			if _, ok := c.Vars.Lookup(id); !ok {
				arena.Bugf("clauses: variable %d not found", id)
			}
		}
	}
}

// String renders a human-readable rendering of the clause list, each clause
// as a parenthesized disjunction, mainly useful for debugging; DIMACS
// rendering lives in package emit.
func (c *CNF) String() string {
	out := ""
	for i, clause := range c.Clauses {
		if i > 0 {
			out += " & "
		}
		out += "("
		for j, lit := range clause {
			if j > 0 {
				out += " | "
			}
			out += fmt.Sprintf("%d", lit)
		}
		out += ")"
	}
	return out
}
