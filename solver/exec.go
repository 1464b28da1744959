package solver

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ExecAdapter shells out to local binaries via piped stdio, grounded on
// original_source/src/util/exec.rs. CounterBin is expected to behave like
// the d4 #SAT counter (invoked as "<bin> -i <file> -m counting -p
// sharp-equiv", with the model count on the stdout line starting "s ");
// SatisfierBin is expected to behave like a standard DIMACS SAT solver
// reading CNF on stdin and printing a "v <lits> 0" line on SAT; ConverterBin
// is expected to behave like FeatureIDE's io.jar, reading a model on stdin
// and writing the requested output format to stdout.
type ExecAdapter struct {
	CounterBin   string
	SatisfierBin string
	ConverterBin string
}

// locate resolves name to an executable path the way exec.rs's path() does:
// first next to the running binary, then in the working directory, then
// under ./bin, finally falling back to the name itself (so PATH lookup by
// exec.Command still has a chance).
func locate(name string) string {
	if self, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(self), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	if _, err := os.Stat(name); err == nil {
		return "./" + name
	}
	candidate := filepath.Join("bin", name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return name
}

// Count invokes CounterBin on dimacs via a temp file and parses the first
// "s <count>" line of its stdout.
func (a ExecAdapter) Count(dimacs string) (string, error) {
	tmp, err := os.CreateTemp("", "clausy-*.cnf")
	if err != nil {
		return "", errors.Wrap(err, "solver: creating temp file for counter input")
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	if _, err := tmp.WriteString(dimacs); err != nil {
		return "", errors.Wrap(err, "solver: writing counter input")
	}
	tmp.Close()

	cmd := exec.Command(locate(a.CounterBin), "-i", tmp.Name(), "-m", "counting", "-p", "sharp-equiv")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "solver: running %s", a.CounterBin)
	}

	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "s ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", errors.Errorf("solver: %s produced no \"s \" count line", a.CounterBin)
}

// Satisfy pipes dimacs to SatisfierBin's stdin and parses a DIMACS-style
// result: an "s SATISFIABLE"/"s UNSATISFIABLE" status line, followed (if
// satisfiable) by one or more "v <lit> <lit> ... 0" lines.
func (a ExecAdapter) Satisfy(dimacs string) ([]int, error) {
	cmd := exec.Command(locate(a.SatisfierBin))
	cmd.Stdin = strings.NewReader(dimacs)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	// A solver's non-zero exit code on UNSAT is conventional, not an error.
	_ = cmd.Run()

	var lits []int
	sat := false
	scanner := bufio.NewScanner(&stdout)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "s SATISFIABLE":
			sat = true
		case line == "s UNSATISFIABLE":
			return nil, ErrUnsat
		case strings.HasPrefix(line, "v "):
			for _, f := range strings.Fields(line[2:]) {
				n, err := strconv.Atoi(f)
				if err != nil {
					return nil, errors.Wrapf(err, "solver: malformed literal %q in %s output", f, a.SatisfierBin)
				}
				if n != 0 {
					lits = append(lits, n)
				}
			}
		}
	}
	if !sat {
		return nil, ErrUnsat
	}
	return lits, nil
}

// Convert pipes contents to ConverterBin's stdin with the "-.<inFormat>
// <outFormat>" argument convention and returns its stdout.
func (a ExecAdapter) Convert(contents, inFormat, outFormat string) (string, error) {
	cmd := exec.Command(locate(a.ConverterBin), fmt.Sprintf("-.%s", inFormat), outFormat)
	cmd.Stdin = strings.NewReader(contents)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "solver: running %s (%s)", a.ConverterBin, stderr.String())
	}
	return stdout.String(), nil
}
