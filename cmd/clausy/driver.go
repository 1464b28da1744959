package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ekuiter/clausy-go/diffcount"
	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/clauses"
	"github.com/ekuiter/clausy-go/internal/emit"
	"github.com/ekuiter/clausy-go/internal/formula"
	"github.com/ekuiter/clausy-go/internal/rtconfig"
	"github.com/ekuiter/clausy-go/parser"
	"github.com/ekuiter/clausy-go/solver"
)

// driver is the command-stream interpreter, carrying the single arena and
// formula stack a command sequence operates against. Grounded on
// original_source/src/shell.rs's main(): the Arena, the Vec<Formula>, and
// the Option<CNF> cache are all identical in spirit to their Rust
// counterparts; the same default-pipeline and formula!/clauses! macro
// behavior is reproduced as plain Go.
type driver struct {
	cfg      rtconfig.Config
	arena    *arena.Arena
	formulas []*formula.Formula
	clauses  *clauses.CNF

	counter   solver.Counter
	satisfier solver.Satisfier
	converter solver.Converter

	// currentCommand is the command token dispatch is currently executing,
	// kept up to date so a panic recovered at the top of the command loop
	// (main.go's deferred recover, via formatPanic) can report which command
	// triggered it.
	currentCommand string
}

func newDriver(cfg rtconfig.Config, counterBin, satisfierBin, converterBin string, useGini bool) *driver {
	exec := solver.ExecAdapter{CounterBin: counterBin, SatisfierBin: satisfierBin, ConverterBin: converterBin}
	d := &driver{
		cfg:       cfg,
		arena:     arena.New(),
		counter:   exec,
		satisfier: solver.Satisfier(exec),
		converter: exec,
	}
	if useGini {
		d.satisfier = solver.GiniAdapter{}
	}
	return d
}

// run parses and executes each command in order (SPEC_FULL.md §7a
// "Driver CLI"). commands defaults to ["-"] (read from stdin) when empty,
// and a lone readable file is expanded to the default pipeline
// "to_cnf_dist to_clauses print", exactly as shell.rs does.
func (d *driver) run(commands []string) error {
	if len(commands) == 0 {
		commands = []string{"-"}
	}
	if len(commands) == 1 && fileExists(commands[0]) {
		commands = append(commands, "to_cnf_dist", "to_clauses", "print")
	}

	for _, command := range commands {
		parts := strings.Fields(command)
		if len(parts) == 0 {
			continue
		}
		d.currentCommand = command
		if err := d.dispatch(parts); err != nil {
			return fmt.Errorf("command %q: %w", command, err)
		}
		if d.cfg.DebugAssert && len(d.formulas) > 0 {
			d.lastFormula().AssertCanon(d.arena)
		}
	}
	return nil
}

func (d *driver) dispatch(parts []string) error {
	switch parts[0] {
	case "print":
		return d.cmdPrint()
	case "print_sub_exprs":
		return d.cmdPrintSubExprs()
	case "to_canon":
		d.lastFormula().ToCanon(d.arena)
		d.clauses = nil
		return nil
	case "to_nnf":
		d.lastFormula().ToNNF(d.arena)
		d.clauses = nil
		return nil
	case "to_cnf_dist":
		d.lastFormula().ToCNFDist(d.arena)
		d.clauses = nil
		return nil
	case "to_cnf_tseitin":
		d.lastFormula().ToCNFTseitin(d.arena)
		d.clauses = nil
		return nil
	case "to_clauses":
		d.clauses = d.extractClauses()
		return nil
	case "satisfy":
		return d.cmdSatisfy()
	case "count":
		return d.cmdCount()
	case "assert_count":
		return d.cmdAssertCount()
	case "enumerate":
		return d.cmdEnumerate()
	case "count_diff":
		if len(parts) != 2 {
			return fmt.Errorf("count_diff requires exactly one argument (csv, bc, or an integer count)")
		}
		return d.cmdCountDiff(parts[1])
	default:
		return d.cmdLoad(parts[0])
	}
}

func (d *driver) lastFormula() *formula.Formula {
	return d.formulas[len(d.formulas)-1]
}

func (d *driver) extractClauses() *clauses.CNF {
	if d.clauses == nil {
		d.clauses = clauses.Extract(d.lastFormula(), d.arena)
	}
	return d.clauses
}

func (d *driver) dimacs() string {
	return emit.DIMACS(d.extractClauses(), d.cfg)
}

func (d *driver) cmdPrint() error {
	if d.clauses != nil {
		fmt.Print(emit.DIMACS(d.clauses, d.cfg))
	} else {
		fmt.Println(d.lastFormula().String(d.arena, d.cfg.PrintExprIDs, d.cfg.AuxPrefix))
	}
	return nil
}

func (d *driver) cmdPrintSubExprs() error {
	for _, id := range d.lastFormula().SubExprs(d.arena) {
		sub := formula.New(nil, id, nil)
		fmt.Println(sub.String(d.arena, d.cfg.PrintExprIDs, d.cfg.AuxPrefix))
	}
	return nil
}

func (d *driver) cmdSatisfy() error {
	lits, err := d.satisfier.Satisfy(d.dimacs())
	if err != nil {
		return err
	}
	fields := make([]string, len(lits))
	for i, lit := range lits {
		fields[i] = strconv.Itoa(lit)
	}
	fmt.Println(strings.Join(fields, " "))
	return nil
}

func (d *driver) cmdCount() error {
	count, err := d.counter.Count(d.dimacs())
	if err != nil {
		return err
	}
	fmt.Println(count)
	return nil
}

func (d *driver) cmdAssertCount() error {
	prov := d.lastFormula().Provenance
	if prov == nil {
		return fmt.Errorf("assert_count requires a formula parsed from a file")
	}
	contents, err := os.ReadFile(prov.Path)
	if err != nil {
		return err
	}
	converted, err := d.converter.Convert(string(contents), prov.Extension, "dimacs")
	if err != nil {
		return err
	}
	expected, err := d.counter.Count(converted)
	if err != nil {
		return err
	}
	actual, err := d.counter.Count(d.dimacs())
	if err != nil {
		return err
	}
	if expected != actual {
		return fmt.Errorf("model count mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}

// cmdEnumerate prints every satisfying assignment, one per line, by
// repeatedly solving and then blocking the assignment just found with an
// extra clause (the negation of that assignment) until the formula (as
// extended) becomes unsatisfiable. Enrichment over shell.rs's `enumerate`,
// whose own algorithm was not present in the retrieved original sources.
func (d *driver) cmdEnumerate() error {
	cnf := d.extractClauses()
	working := &clauses.CNF{Vars: cnf.Vars, Clauses: append([][]int32(nil), cnf.Clauses...)}
	for {
		dimacs := emit.DIMACS(working, d.cfg)
		lits, err := d.satisfier.Satisfy(dimacs)
		if err == solver.ErrUnsat {
			return nil
		}
		if err != nil {
			return err
		}
		fields := make([]string, len(lits))
		blocking := make([]int32, len(lits))
		for i, lit := range lits {
			fields[i] = strconv.Itoa(lit)
			blocking[i] = int32(-lit)
		}
		fmt.Println(strings.Join(fields, " "))
		working.Clauses = append(working.Clauses, blocking)
	}
}

func (d *driver) cmdCountDiff(mode string) error {
	if len(d.formulas) != 2 {
		return fmt.Errorf("count_diff requires exactly two parsed formulas")
	}
	result, err := diffcount.Compute(d.formulas[0], d.formulas[1], d.arena, d.counter, d.cfg)
	if err != nil {
		return err
	}
	switch mode {
	case "csv":
		fmt.Println(result.CSV())
	case "bc":
		fmt.Println(result.BC())
	default:
		countA, ok := new(big.Int).SetString(mode, 10)
		if !ok {
			return fmt.Errorf("count_diff: expected csv, bc, or an integer, got %q", mode)
		}
		fmt.Println(result.Total(countA).String())
	}
	fmt.Print(result.TextDiff)
	return nil
}

func (d *driver) cmdLoad(token string) error {
	if token == "-" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		// No extension to dispatch on for piped input; default to the
		// DIMACS dialect, matching the original's stdin default parser.
		f, err := parser.CNF{}.ParseInto("-", string(contents), d.arena)
		if err != nil {
			return err
		}
		d.formulas = append(d.formulas, f)
		d.clauses = nil
		return nil
	}

	if fileExists(token) {
		contents, err := os.ReadFile(token)
		if err != nil {
			return err
		}
		ext := strings.TrimPrefix(filepath.Ext(token), ".")
		p, err := parser.ForExtension(ext)
		if err != nil {
			return err
		}
		f, err := p.ParseInto(token, string(contents), d.arena)
		if err != nil {
			return err
		}
		d.formulas = append(d.formulas, f)
		d.clauses = nil
		return nil
	}

	refs := make([]parser.Ref, len(d.formulas))
	for i, f := range d.formulas {
		refs[i] = parser.Ref{Root: f.RootID, SubVarIDs: f.SubVarIDs}
	}
	p := parser.SatInline{Refs: refs, AddBackboneVars: true}
	f, err := p.ParseInto("-", token, d.arena)
	if err != nil {
		return fmt.Errorf("not a file and not a valid inline expression: %w", err)
	}
	d.formulas = append(d.formulas, f)
	d.clauses = nil
	return nil
}

// fileExists reports whether path names a readable file, or is "-" (the
// conventional stand-in for stdin), matching original_source's
// util::readable_file.
func fileExists(path string) bool {
	if path == "-" {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
