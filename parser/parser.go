package parser

import (
	"fmt"

	"github.com/ekuiter/clausy-go/internal/arena"
	"github.com/ekuiter/clausy-go/internal/formula"
)

// Parser parses a feature-model formula file into an existing arena,
// returning a formula handle for it. Implementations may only reach the
// arena through Intern, InternVarNamed, and NewAuxVar (SPEC_FULL.md §6).
type Parser interface {
	ParseInto(path, contents string, a *arena.Arena) (*formula.Formula, error)
}

// ForExtension returns the parser appropriate for a file's extension, as
// KConfigReader/clausy's driver does when dispatching on the command-line
// file argument (original_source/src/parser/mod.rs's parser()).
func ForExtension(ext string) (Parser, error) {
	switch ext {
	case "model":
		return Model{}, nil
	case "cnf":
		return CNF{}, nil
	case "sat":
		return SatInline{}, nil
	default:
		return nil, fmt.Errorf("parser: no parser registered for extension %q", ext)
	}
}
