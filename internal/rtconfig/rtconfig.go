// Package rtconfig holds the engine's explicit runtime configuration,
// replacing the teacher's env-toggled debug flags with a config struct
// threaded through the call graph (SPEC_FULL.md §7a).
package rtconfig

// Config controls rendering and debug-assertion behavior that would
// otherwise be hardcoded or env-toggled. Default returns the conservative
// default (no expression ids printed, aux variables emitted with the "aux"
// prefix, no debug assertions); the zero value differs from it, with an
// empty aux prefix and aux comment lines hidden.
type Config struct {
	// PrintExprIDs appends "@<id>" to every sub-expression when formatting
	// a formula as text (the `print`/`print_sub_exprs` driver verbs).
	PrintExprIDs bool

	// AuxPrefix is prepended to an auxiliary variable's counter when
	// rendering it as text or as a DIMACS comment, e.g. "aux3".
	AuxPrefix string

	// EmitAuxVars controls whether "c <id> <name>" comment lines are
	// written for auxiliary variables in DIMACS output. Named variables
	// are always commented; this only toggles the (often numerous, often
	// uninteresting) aux ones.
	EmitAuxVars bool

	// DebugAssert enables expensive structural-sharing assertions
	// (formula.Formula.AssertCanon) after every driver command. Off by default;
	// intended for development and the test suite, not production runs.
	DebugAssert bool
}

// Default returns the engine's default configuration.
func Default() Config {
	return Config{
		PrintExprIDs: false,
		AuxPrefix:    "aux",
		EmitAuxVars:  true,
		DebugAssert:  false,
	}
}
