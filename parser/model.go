package parser

import (
	"strings"

	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/expr"
	"github.com/ekuiter/clausy-go/internal/formula"
	"github.com/ekuiter/clausy-go/internal/vars"
)

// Model parses KConfigReader .model files (SPEC_FULL.md §6): line-oriented,
// each line a propositional expression over and(...), or(...), not(...),
// and bare variable names; the formula is the conjunction of all lines.
// Grounded on original_source/src/parser/model.rs's parse_into/parse_pair,
// reimplemented as a small hand-rolled recursive-descent parser in place of
// the original's pest grammar (SPEC_FULL.md §6 scopes concrete grammars to
// parser adapters, which are free to implement their own tokenizer).
type Model struct{}

func (Model) ParseInto(path, contents string, a *arena.Arena) (*formula.Formula, error) {
	doc := NewPosDoc(contents)
	subVars := make(map[vars.ID]struct{})
	var children []expr.ID

	offset := 0
	for _, line := range strings.Split(contents, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			p := &exprParser{doc: doc, src: trimmed, base: offset, a: a, subVars: subVars}
			id, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectEOF(); err != nil {
				return nil, err
			}
			children = append(children, id)
		}
		offset += len(line) + 1
	}

	root := a.Intern(expr.MakeAnd(children))
	return formula.New(subVars, root, &formula.Provenance{Path: path, Extension: "model"}), nil
}

// exprParser is a minimal recursive-descent parser shared by the .model and
// .sat-inline dialects, which differ only in how a leaf is parsed (a bare
// name vs. a numeric back-reference) and in whether "not" is spelled as a
// keyword or a "-" prefix; see parseLeaf in each dialect's file.
type exprParser struct {
	doc     *PosDoc
	src     string
	pos     int
	base    int // offset of src within the full document, for error positions
	a       *arena.Arena
	subVars map[vars.ID]struct{}
	parseLeaf func(p *exprParser) (expr.ID, error)
}

func (p *exprParser) errf(format string, args ...any) error {
	return errAt(p.doc.Pos(p.base+p.pos), format, args...)
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) expectEOF() error {
	p.skipSpace()
	if p.pos != len(p.src) {
		return p.errf("unexpected trailing input %q", p.src[p.pos:])
	}
	return nil
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '-' || b == '.' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func (p *exprParser) scanIdent() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// parseExpr parses and(e, e, ...) | or(e, e, ...) | not(e) | a leaf, where
// the leaf production is dialect-specific (p.parseLeaf).
func (p *exprParser) parseExpr() (expr.ID, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0, p.errf("unexpected end of expression")
	}

	start := p.pos
	ident := p.scanIdent()
	lowered := strings.ToLower(ident)
	p.skipSpace()

	if ident != "" && (lowered == "and" || lowered == "or" || lowered == "not") && p.peek() == '(' {
		children, err := p.parseArgList()
		if err != nil {
			return 0, err
		}
		switch lowered {
		case "and":
			return p.a.Intern(expr.MakeAnd(children)), nil
		case "or":
			return p.a.Intern(expr.MakeOr(children)), nil
		default: // not
			if len(children) != 1 {
				return 0, p.errf("not(...) takes exactly one argument, got %d", len(children))
			}
			return p.a.Intern(expr.MakeNot(children[0])), nil
		}
	}

	// Not an operator call: rewind and let the dialect-specific leaf rule
	// decide (a bare variable name for .model, a numeric reference with an
	// optional "-" prefix for .sat-inline).
	p.pos = start
	if p.parseLeaf != nil {
		return p.parseLeaf(p)
	}
	return p.parseVarLeaf()
}

// parseArgList parses "(" expr ("," expr)* ")".
func (p *exprParser) parseArgList() ([]expr.ID, error) {
	if p.peek() != '(' {
		return nil, p.errf("expected '('")
	}
	p.pos++
	var children []expr.ID
	p.skipSpace()
	if p.peek() == ')' {
		p.pos++
		return children, nil
	}
	for {
		id, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, id)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
			continue
		case ')':
			p.pos++
			return children, nil
		default:
			return nil, p.errf("expected ',' or ')'")
		}
	}
}

// parseVarLeaf parses a bare variable name and interns it (the .model
// dialect's leaf production).
func (p *exprParser) parseVarLeaf() (expr.ID, error) {
	name := p.scanIdent()
	if name == "" {
		return 0, p.errf("expected a variable name, 'and(...)', 'or(...)', or 'not(...)'")
	}
	id, varID := p.a.InternVarNamed(name)
	p.subVars[varID] = struct{}{}
	return id, nil
}
