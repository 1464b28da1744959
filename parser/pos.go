// Package parser implements the external-facing formula file dialects:
// KConfigReader .model, DIMACS .cnf, and an inline .sat-like composition
// language (SPEC_FULL.md §6 "Parser adapters"). Parsers are the sole
// write-paths into an arena: they may only call Intern, InternVarNamed, and
// NewAuxVar, and must return a formula handle.
package parser

import (
	"fmt"
	"sort"
	"strconv"
)

// PosDoc records the byte offsets of every newline in a source document,
// so individual positions can report their line and column on demand.
// Grounded on signadot-tony-format/go-tony/token/pos.go's PosDoc/Pos, with
// the streaming/context-snippet machinery dropped since parser inputs here
// are always read fully into memory before parsing.
type PosDoc struct {
	text  string
	lines []int // byte offset of each '\n' in text
}

// NewPosDoc indexes text's newlines for later position lookups.
func NewPosDoc(text string) *PosDoc {
	d := &PosDoc{text: text}
	for i, b := range []byte(text) {
		if b == '\n' {
			d.lines = append(d.lines, i)
		}
	}
	return d
}

// Pos returns a position handle for byte offset i within this document.
func (d *PosDoc) Pos(i int) Pos {
	return Pos{offset: i, doc: d}
}

// LineCol returns the 0-based line and column of byte offset off.
func (d *PosDoc) LineCol(off int) (line, col int) {
	n := len(d.lines)
	i := sort.Search(n, func(i int) bool { return d.lines[i] >= off })
	if i == 0 {
		return 0, off
	}
	return i, off - d.lines[i-1] - 1
}

// Pos identifies a byte offset within a PosDoc, for error reporting.
type Pos struct {
	offset int
	doc    *PosDoc
}

// LineCol returns p's 0-based line and column.
func (p Pos) LineCol() (line, col int) { return p.doc.LineCol(p.offset) }

// String renders p as "<sample> at offset <n> (line=<l>, col=<c>)", where
// sample is a short, quoted snippet of text around p.
func (p Pos) String() string {
	lo, hi := p.offset-8, p.offset+8
	if lo < 0 {
		lo = 0
	}
	if hi > len(p.doc.text) {
		hi = len(p.doc.text)
	}
	sample := strconv.Quote(p.doc.text[lo:hi])
	sample = sample[1 : len(sample)-1]
	line, col := p.LineCol()
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", sample, p.offset, line, col)
}

// Error is a malformed-input error carrying the position it was found at
// (SPEC_FULL.md §6 "Malformed input: surfaced with input location; fatal
// to the current command").
type Error struct {
	Pos Pos
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Msg, e.Pos)
}

func errAt(pos Pos, format string, args ...any) error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
