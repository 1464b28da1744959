// Package emit renders a clause list as DIMACS CNF text (SPEC_FULL.md §4.7),
// grounded on original_source/src/core/cnf.rs's Display impl.
package emit

import (
	"fmt"
	"strings"

	"github.com/ekuiter/clausy-go/internal/clauses"
	"github.com/ekuiter/clausy-go/internal/rtconfig"
	"github.com/ekuiter/clausy-go/internal/vars"
)

// DIMACS renders c as a DIMACS CNF document: one "c <id> <name>" comment
// line per variable (aux variables only if cfg.EmitAuxVars), a "p cnf
// <vars> <clauses>" header, then one clause per line terminated by "0".
func DIMACS(c *clauses.CNF, cfg rtconfig.Config) string {
	var sb strings.Builder
	for _, id := range c.Vars.IDs() {
		v, ok := c.Vars.Lookup(id)
		if !ok {
			continue
		}
		if v.Kind == vars.Aux && !cfg.EmitAuxVars {
			continue
		}
		fmt.Fprintf(&sb, "c %d %s\n", id, v.String(cfg.AuxPrefix))
	}
	fmt.Fprintf(&sb, "p cnf %d %d\n", c.Vars.Len(), len(c.Clauses))
	for _, clause := range c.Clauses {
		for _, lit := range clause {
			fmt.Fprintf(&sb, "%d ", lit)
		}
		sb.WriteString("0\n")
	}
	return sb.String()
}
