package parser

import (
	"strconv"
	"strings"

	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/expr"
	"github.com/ekuiter/clausy-go/internal/formula"
	"github.com/ekuiter/clausy-go/internal/vars"
)

// CNF parses DIMACS .cnf files (SPEC_FULL.md §6): "c <id> <name>" comment
// lines mapping numeric variable ids to names, a "p cnf <vars> <clauses>"
// header, and clauses of signed integers terminated by 0. Variable ids with
// no comment line become aux variables. Grounded on
// original_source/src/parser/cnf.rs.
type CNF struct{}

func (CNF) ParseInto(path, contents string, a *arena.Arena) (*formula.Formula, error) {
	doc := NewPosDoc(contents)
	names := make(map[int]string)
	subVars := make(map[vars.ID]struct{})

	lines := strings.Split(contents, "\n")
	offset := 0
	lineOffsets := make([]int, len(lines))
	for i, line := range lines {
		lineOffsets[i] = offset
		offset += len(line) + 1
	}

	idx := 0
	pos := func() Pos {
		if idx < len(lineOffsets) {
			return doc.Pos(lineOffsets[idx])
		}
		return doc.Pos(len(contents))
	}

	skipBlank := func() {
		for idx < len(lines) && strings.TrimSpace(lines[idx]) == "" {
			idx++
		}
	}

	skipBlank()
	for idx < len(lines) {
		line := strings.TrimSpace(lines[idx])
		if !strings.HasPrefix(line, "c ") && line != "c" {
			break
		}
		fields := strings.Fields(strings.TrimPrefix(line, "c"))
		if len(fields) >= 2 {
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, errAt(pos(), "malformed comment line: %q", line)
			}
			names[n] = strings.Join(fields[1:], " ")
		}
		idx++
	}

	skipBlank()
	if idx >= len(lines) {
		return nil, errAt(pos(), "missing DIMACS header line")
	}
	header := strings.Fields(strings.TrimSpace(lines[idx]))
	if len(header) != 4 || header[0] != "p" || header[1] != "cnf" {
		return nil, errAt(pos(), "expected header %q, got %q", "p cnf <vars> <clauses>", lines[idx])
	}
	numVars, err := strconv.Atoi(header[2])
	if err != nil {
		return nil, errAt(pos(), "malformed variable count %q", header[2])
	}
	numClauses, err := strconv.Atoi(header[3])
	if err != nil {
		return nil, errAt(pos(), "malformed clause count %q", header[3])
	}
	idx++

	// exprOf[i] is the Var(i) expression id for DIMACS variable i.
	exprOf := make([]expr.ID, numVars+1)
	for i := 1; i <= numVars; i++ {
		if name, ok := names[i]; ok {
			id, varID := a.InternVarNamed(name)
			subVars[varID] = struct{}{}
			exprOf[i] = id
			delete(names, i)
		} else {
			varID, id := a.NewAuxVarExpr()
			subVars[varID] = struct{}{}
			exprOf[i] = id
		}
	}
	if len(names) != 0 {
		return nil, errAt(pos(), "comment lines named %d variables outside the header's range of 1..=%d", len(names), numVars)
	}

	var children []expr.ID
	for ; idx < len(lines); idx++ {
		line := strings.TrimSpace(lines[idx])
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		var clause []expr.ID
		for _, f := range fields {
			lit, err := strconv.Atoi(f)
			if err != nil {
				return nil, errAt(pos(), "malformed literal %q", f)
			}
			if lit == 0 {
				break
			}
			v := lit
			if v < 0 {
				v = -v
			}
			if v > numVars {
				return nil, errAt(pos(), "literal %d references unknown variable", lit)
			}
			if lit < 0 {
				clause = append(clause, a.Intern(expr.MakeNot(exprOf[v])))
			} else {
				clause = append(clause, exprOf[v])
			}
		}
		children = append(children, a.Intern(expr.MakeOr(clause)))
	}
	if len(children) != numClauses {
		return nil, errAt(pos(), "header declared %d clauses, found %d", numClauses, len(children))
	}

	root := a.Intern(expr.MakeAnd(children))
	return formula.New(subVars, root, &formula.Provenance{Path: path, Extension: "cnf"}), nil
}
