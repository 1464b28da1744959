package parser

import (
	"strconv"

	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/expr"
	"github.com/ekuiter/clausy-go/internal/formula"
	"github.com/ekuiter/clausy-go/internal/vars"
)

// Ref is a previously parsed formula, addressable by a 1-based index from a
// SatInline composition (mirroring original_source/src/parser/sat_inline.rs's
// Vec<(Id, HashSet<VarId>)>).
type Ref struct {
	Root      expr.ID
	SubVarIDs map[vars.ID]struct{}
}

// SatInline parses the inline .sat-like composition language (SPEC_FULL.md
// §6): identifiers are 1-based references to previously parsed formulas
// (Refs), "-" negates a reference, and and(...)/or(...)/not(...) combine
// them. If AddBackboneVars is set, each reference is conjoined with the
// negation of every named variable in the arena that the reference's own
// sub-variables don't mention, aligning formulas parsed against differing
// variable sets so their model counts become directly comparable (used by
// package diffcount). Grounded on
// original_source/src/parser/sat_inline.rs's parse_pair/Rule::var case.
type SatInline struct {
	Refs            []Ref
	AddBackboneVars bool
}

func (s SatInline) ParseInto(path, contents string, a *arena.Arena) (*formula.Formula, error) {
	doc := NewPosDoc(contents)
	subVars := make(map[vars.ID]struct{})
	p := &exprParser{doc: doc, src: contents, a: a, subVars: subVars}
	p.parseLeaf = func(p *exprParser) (expr.ID, error) {
		return s.parseRefLeaf(p)
	}

	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return formula.New(subVars, root, &formula.Provenance{Path: path, Extension: "sat"}), nil
}

func (s SatInline) parseRefLeaf(p *exprParser) (expr.ID, error) {
	negate := false
	if p.peek() == '-' {
		negate = true
		p.pos++
	}
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errf("expected a reference number, 'and(...)', 'or(...)', or 'not(...)'")
	}
	n, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errf("malformed reference number %q", p.src[start:p.pos])
	}
	if n < 1 || n > len(s.Refs) {
		return 0, p.errf("reference %d out of range (1..=%d)", n, len(s.Refs))
	}
	ref := s.Refs[n-1]
	root := ref.Root

	if s.AddBackboneVars {
		conjuncts := []expr.ID{root}
		for _, id := range p.a.Vars.IDs() {
			v, ok := p.a.Vars.Lookup(id)
			if !ok || v.Kind != vars.Named {
				continue
			}
			if _, ok := ref.SubVarIDs[id]; ok {
				continue
			}
			conjuncts = append(conjuncts, p.a.Intern(expr.MakeNot(p.a.Intern(expr.MakeVar(id)))))
			p.subVars[id] = struct{}{}
		}
		root = p.a.Intern(expr.MakeAnd(conjuncts))
	}

	for id := range ref.SubVarIDs {
		p.subVars[id] = struct{}{}
	}
	if negate {
		return p.a.Intern(expr.MakeNot(root)), nil
	}
	return root, nil
}
