// Package vars implements the variable table of a formula arena: a
// bidirectional mapping between small signed integer identifiers and either
// named or auxiliary variables.
package vars

import "fmt"

// ID identifies a variable within a Table. IDs are dense, non-negative, and
// assigned in creation order. ID 0 is reserved and never assigned, so that a
// negative ID unambiguously denotes a negated literal in clause output.
type ID int32

// Kind distinguishes named from auxiliary variables.
type Kind uint8

const (
	// Named identifies a variable with a user-facing name.
	Named Kind = iota
	// Aux identifies a variable introduced by the engine (e.g. by Tseitin
	// encoding), counted by a process-monotone counter.
	Aux
)

func (k Kind) String() string {
	if k == Aux {
		return "Aux"
	}
	return "Named"
}

// Variable is a tagged value: either a Named variable (carrying its source
// name) or an Aux variable (carrying its monotone counter value).
type Variable struct {
	Kind Kind
	Name string // valid iff Kind == Named
	Num  uint32 // valid iff Kind == Aux
}

// String renders the variable the way it would appear in formula output:
// its name if Named, or prefix+number if Aux. The prefix is supplied by the
// caller (see rtconfig.Config.AuxPrefix) since the table itself carries no
// global configuration.
func (v Variable) String(auxPrefix string) string {
	if v.Kind == Aux {
		return fmt.Sprintf("%s%d", auxPrefix, v.Num)
	}
	return v.Name
}

// Table owns all variables for an arena. The zero value is not usable; use
// New.
type Table struct {
	vars    []Variable   // vars[id] for id > 0; vars[0] is the reserved sentinel
	byName  map[string]ID
	nextAux uint32
}

// New returns an empty variable table with ID 0 reserved.
func New() *Table {
	t := &Table{
		vars:   make([]Variable, 1), // index 0 reserved
		byName: make(map[string]ID),
	}
	return t
}

// Len returns the number of assigned variables, excluding the reserved ID 0.
func (t *Table) Len() int {
	return len(t.vars) - 1
}

// Lookup returns the Variable stored at id, and whether id is valid.
func (t *Table) Lookup(id ID) (Variable, bool) {
	if id <= 0 || int(id) >= len(t.vars) {
		return Variable{}, false
	}
	return t.vars[id], true
}

// LookupNamed returns the ID of a previously created Named(name) variable.
func (t *Table) LookupNamed(name string) (ID, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// InternNamed returns the ID for Named(name), creating it if necessary.
func (t *Table) InternNamed(name string) ID {
	if id, ok := t.byName[name]; ok {
		return id
	}
	id := ID(len(t.vars))
	t.vars = append(t.vars, Variable{Kind: Named, Name: name})
	t.byName[name] = id
	return id
}

// NewAux creates and returns the ID of a fresh Aux variable.
func (t *Table) NewAux() ID {
	t.nextAux++
	id := ID(len(t.vars))
	t.vars = append(t.vars, Variable{Kind: Aux, Num: t.nextAux})
	return id
}

// IDs returns every assigned variable ID (excluding the reserved 0), in
// insertion order — this is also DIMACS emission order (DESIGN.md, open
// question (c)).
func (t *Table) IDs() []ID {
	ids := make([]ID, 0, t.Len())
	for id := ID(1); int(id) < len(t.vars); id++ {
		ids = append(ids, id)
	}
	return ids
}
