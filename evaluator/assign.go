package evaluator

import (
	"errors"
	"io"
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/token"
)

// target is a place a value can be stored, a scalar or an array element
type target struct {
	name string
	subs []int
	elem bool
}

func (t target) isString() bool {
	return object.IsStringName(t.name)
}

// assign stores val, a string destination insists on a string
func (t target) assign(env *object.Environment, val object.Object) error {
	if t.isString() {
		if _, ok := val.(*object.String); !ok {
			return berrors.New(berrors.TypeMismatch, "")
		}
	} else {
		val = &object.Number{Value: object.NumberOf(val)}
	}

	if t.elem {
		return env.SetElement(t.name, t.subs, val)
	}
	return env.Set(t.name, val)
}

// assignText stores text read from DATA or input, numeric
// destinations take its numeric prefix
func (t target) assignText(env *object.Environment, text string) error {
	if t.isString() {
		return t.assign(env, &object.String{Value: text})
	}
	return t.assign(env, &object.Number{Value: object.Atof(text)})
}

// parseTarget reads "name" or "name(subs)"
func (st *stmt) parseTarget() (target, error) {
	tok := st.lx.Current()
	if tok.Type != token.IDENT {
		return target{}, berrors.New(berrors.Syntax, "")
	}
	st.lx.Advance()

	t := target{name: tok.Literal}
	if st.at(token.LPAREN) {
		subs, err := evalSubscripts(st.lx, st.env)
		if err != nil {
			return t, err
		}
		t.subs = subs
		t.elem = true
	}
	return t, nil
}

// parseTargets reads a comma separated list of targets
func (st *stmt) parseTargets() ([]target, error) {
	var tgts []target
	for {
		t, err := st.parseTarget()
		if err != nil {
			return nil, err
		}
		tgts = append(tgts, t)

		if !st.at(token.COMMA) {
			return tgts, nil
		}
		st.lx.Advance()
	}
}

func evalLetStatement(st *stmt) (Signal, error) {
	return evalAssignment(st)
}

// evalAssignment handles name = expr and name(subs) = expr
func evalAssignment(st *stmt) (Signal, error) {
	t, err := st.parseTarget()
	if err != nil {
		return sigFailed, err
	}
	if err := st.expect(token.ASSIGN); err != nil {
		return sigFailed, err
	}

	var val object.Object
	if t.isString() {
		val, err = evalConcat(st.lx, st.env)
	} else {
		val, err = EvalValue(st.lx, st.env)
	}
	if err != nil {
		return sigFailed, err
	}
	if !st.atEnd() {
		return sigFailed, berrors.New(berrors.Syntax, "")
	}

	if err := t.assign(st.env, val); err != nil {
		return sigFailed, err
	}
	return sigContinue, nil
}

// evalDimStatement handles DIM A(10), B$(3,4)
func evalDimStatement(st *stmt) (Signal, error) {
	for {
		tok := st.lx.Current()
		if tok.Type != token.IDENT {
			return sigFailed, berrors.New(berrors.Syntax, "")
		}
		st.lx.Advance()

		sizes, err := evalSubscripts(st.lx, st.env)
		if err != nil {
			return sigFailed, err
		}
		if err := st.env.Dim(tok.Literal, sizes); err != nil {
			return sigFailed, err
		}

		if !st.at(token.COMMA) {
			break
		}
		st.lx.Advance()
	}
	return sigContinue, nil
}

// evalInputStatement handles
//
//	INPUT ["prompt";] var[, var...]
//	INPUT #n, var[, var...]
//
// at the console each variable gets its own line
func evalInputStatement(st *stmt) (Signal, error) {
	if st.at(token.HASH) {
		return st.inputFromFile(false)
	}

	prompt := ""
	if st.at(token.STRING) {
		prompt = st.lx.Current().Literal
		st.lx.Advance()
		if st.at(token.SEMICOLON) || st.at(token.COMMA) {
			st.lx.Advance()
		}
	}

	tgts, err := st.parseTargets()
	if err != nil {
		return sigFailed, err
	}

	for _, t := range tgts {
		p := prompt
		if len(p) == 0 {
			p = t.name + "? "
		}
		text := st.readConsole(p)
		if err := t.assignText(st.env, text); err != nil {
			return sigFailed, err
		}
	}
	return sigContinue, nil
}

// evalLineInputStatement handles LINE INPUT [#n,] var$, the whole line goes
// into the variable
func evalLineInputStatement(st *stmt) (Signal, error) {
	if err := st.expect(token.INPUT); err != nil {
		return sigFailed, err
	}
	if st.at(token.HASH) {
		return st.inputFromFile(true)
	}

	prompt := ""
	if st.at(token.STRING) {
		prompt = st.lx.Current().Literal
		st.lx.Advance()
		if st.at(token.SEMICOLON) || st.at(token.COMMA) {
			st.lx.Advance()
		}
	}

	t, err := st.parseTarget()
	if err != nil {
		return sigFailed, err
	}
	if !t.isString() {
		return sigFailed, berrors.New(berrors.TypeMismatch, "")
	}
	if len(prompt) == 0 {
		prompt = "? "
	}

	if err := t.assignText(st.env, st.readConsole(prompt)); err != nil {
		return sigFailed, err
	}
	return sigContinue, nil
}

// readConsole gets one trimmed line, end of input reads as "0"
func (st *stmt) readConsole(prompt string) string {
	term := st.env.Terminal()
	if term == nil {
		return "0"
	}
	text, err := term.ReadLine(prompt)
	*st.env.ConsoleColumn() = 0
	if err != nil {
		return "0"
	}
	return strings.TrimSpace(text)
}

// inputFromFile reads comma separated items, or whole lines, from an
// open file. Past the end a string gets "" and a number 0.
func (st *stmt) inputFromFile(whole bool) (Signal, error) {
	n, err := st.handleNumber()
	if err != nil {
		return sigFailed, err
	}
	of, err := st.env.GetFile(n)
	if err != nil {
		return sigFailed, err
	}

	tgts, err := st.parseTargets()
	if err != nil {
		return sigFailed, err
	}

	for _, t := range tgts {
		if whole && !t.isString() {
			return sigFailed, berrors.New(berrors.TypeMismatch, "")
		}

		var text string
		if whole {
			text, err = of.File.ReadLine()
		} else {
			text, err = of.File.ReadItem()
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return sigFailed, berrors.New(berrors.DeviceIOError, err.Error())
		}

		if err := t.assignText(st.env, text); err != nil {
			return sigFailed, err
		}
	}
	return sigContinue, nil
}
