package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/program"
	"github.com/navionguy/linebasic/token"
)

// evalListCommand handles LIST [start [end]], "LIST 10-50" and
// "LIST 10,50" work as well
func evalListCommand(st *stmt) (Signal, error) {
	from, to := 0, int(^uint(0)>>1)

	if !st.atEnd() {
		n, err := st.lineNumber()
		if err != nil {
			return sigFailed, err
		}
		from = n

		if st.at(token.MINUS) || st.at(token.COMMA) {
			st.lx.Advance()
		}
		if st.at(token.NUMBER) {
			to, _ = st.lineNumber()
		}
	}

	st.env.Program().AscendRange(from, to, func(l program.Line) bool {
		st.println(l.String())
		return true
	})
	return sigContinue, nil
}

// evalRenumCommand handles RENUM [start [, step]], both default to 10
func evalRenumCommand(st *stmt) (Signal, error) {
	if st.running {
		return sigFailed, berrors.New(berrors.IllegalDirect, "")
	}

	start, step := 10, 10
	if st.at(token.NUMBER) {
		start, _ = st.lineNumber()
		if st.at(token.COMMA) {
			st.lx.Advance()
			n, err := st.lineNumber()
			if err != nil {
				return sigFailed, err
			}
			step = n
		}
	}

	if err := st.env.Program().Renumber(start, step); err != nil {
		return sigFailed, err
	}
	return sigContinue, nil
}

// evalDumpCommand shows interpreter state, DUMP VARS, DUMP ARRAYS,
// DUMP STACK or plain DUMP for all of it
func evalDumpCommand(st *stmt) (Signal, error) {
	var lines []string

	switch st.lx.Current().Type {
	case token.VARS:
		lines = DumpVars(st.env)
	case token.ARRAYS:
		lines = DumpArrays(st.env)
	case token.STACK:
		lines = DumpStack(st.env)
	case token.EOF:
		lines = append(DumpVars(st.env), DumpArrays(st.env)...)
		lines = append(lines, DumpStack(st.env)...)
	default:
		return sigFailed, berrors.New(berrors.Syntax, "")
	}
	st.lx.Advance()

	for _, l := range lines {
		st.println(l)
	}
	return sigContinue, nil
}

// DumpVars renders each scalar as name = value
func DumpVars(env *object.Environment) []string {
	var out []string
	for _, v := range env.Variables() {
		out = append(out, v.Name+" = "+quoted(v.Value()))
	}
	return out
}

// DumpArrays renders each array as its shape then its elements in order
func DumpArrays(env *object.Environment) []string {
	var out []string
	for _, a := range env.NumArrays() {
		vals := make([]string, len(a.Data))
		for i, v := range a.Data {
			vals[i] = object.FormatNumber(v)
		}
		out = append(out, shape(a.Name, a.Dims)+": "+strings.Join(vals, " "))
	}
	for _, a := range env.StrArrays() {
		vals := make([]string, len(a.Data))
		for i, v := range a.Data {
			vals[i] = strconv.Quote(v)
		}
		out = append(out, shape(a.Name, a.Dims)+": "+strings.Join(vals, " "))
	}
	return out
}

// DumpStack renders the FOR frames then the GOSUB returns, innermost last
func DumpStack(env *object.Environment) []string {
	var out []string
	for _, f := range env.ForLoops {
		out = append(out, fmt.Sprintf("FOR %s TO %s STEP %s -> %d", f.Var,
			object.FormatNumber(f.Limit), object.FormatNumber(f.Step), f.Line))
	}
	for _, r := range env.Gosubs() {
		out = append(out, fmt.Sprintf("GOSUB -> %d", r))
	}
	return out
}

func shape(name string, d object.Dims) string {
	sizes := make([]string, len(d))
	for i, sz := range d {
		sizes[i] = strconv.Itoa(sz)
	}
	return name + "(" + strings.Join(sizes, ",") + ")"
}

func quoted(v object.Object) string {
	if s, ok := v.(*object.String); ok {
		return strconv.Quote(s.Value)
	}
	return v.Inspect()
}
