package solver

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// GiniAdapter satisfies Satisfier in-process using the embedded go-air/gini
// SAT solver, rather than shelling out. Grounded on
// go-tony/schema/formula_builder.go's use of gini.New/g.Add/g.Assume/
// g.Solve to check schema satisfiability; here the clauses come from a
// parsed DIMACS document instead of a schema IR.
//
// gini has no #SAT mode, so GiniAdapter implements only Satisfier; Counter
// and Converter still need ExecAdapter's external tools.
type GiniAdapter struct{}

// Satisfy loads dimacs into a fresh gini instance and solves it.
func (GiniAdapter) Satisfy(dimacs string) ([]int, error) {
	g := gini.New()
	numVars, err := loadDimacs(g, dimacs)
	if err != nil {
		return nil, err
	}
	if g.Solve() != 1 {
		return nil, ErrUnsat
	}
	lits := make([]int, 0, numVars)
	for i := 1; i <= numVars; i++ {
		lit := z.Var(i).Pos()
		if g.Value(lit) {
			lits = append(lits, i)
		} else {
			lits = append(lits, -i)
		}
	}
	return lits, nil
}

// loadDimacs reads a DIMACS CNF document (comment lines starting "c", a "p
// cnf <vars> <clauses>" header, then signed-integer clauses terminated by
// 0) and adds its clauses to g, returning the declared variable count.
func loadDimacs(g *gini.Gini, dimacs string) (numVars int, err error) {
	scanner := bufio.NewScanner(strings.NewReader(dimacs))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "p" {
			numVars, err = strconv.Atoi(fields[2])
			if err != nil {
				return 0, err
			}
			continue
		}
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return 0, err
			}
			if n == 0 {
				g.Add(0)
				continue
			}
			v := n
			if v < 0 {
				v = -v
			}
			lit := z.Var(v).Pos()
			if n < 0 {
				lit = lit.Not()
			}
			g.Add(lit)
		}
	}
	return numVars, nil
}
