package evaluator

import (
	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/token"
)

// evalIfStatement handles IF cond THEN line and IF cond THEN statement,
// IF cond GOTO line works too
func evalIfStatement(st *stmt) (Signal, error) {
	cond, err := Eval(st.lx, st.env)
	if err != nil {
		return sigFailed, err
	}

	switch st.lx.Current().Type {
	case token.THEN:
		st.lx.Advance()
	case token.GOTO:
	default:
		return sigFailed, berrors.New(berrors.Syntax, "")
	}

	if cond == 0 {
		return sigContinue, nil
	}

	if st.at(token.NUMBER) {
		line, _ := st.lineNumber()
		return jumpTo(line), nil
	}
	return st.execute()
}

func evalGotoStatement(st *stmt) (Signal, error) {
	line, err := st.lineNumber()
	if err != nil {
		return sigFailed, err
	}
	return jumpTo(line), nil
}

// evalGosubStatement saves the line after this one, in program order
func evalGosubStatement(st *stmt) (Signal, error) {
	line, err := st.lineNumber()
	if err != nil {
		return sigFailed, err
	}
	if err := st.pushReturn(); err != nil {
		return sigFailed, err
	}
	return jumpTo(line), nil
}

func (st *stmt) pushReturn() error {
	if !st.running {
		return berrors.New(berrors.IllegalDirect, "")
	}
	next := st.env.Program().NextNumberAfter(st.line)
	if next < 0 {
		return berrors.New(berrors.LastLine, "")
	}
	return st.env.Push(next)
}

func evalReturnStatement(st *stmt) (Signal, error) {
	line, err := st.env.Pop()
	if err != nil {
		return sigFailed, err
	}
	return jumpTo(line), nil
}

// evalOnStatement handles ON sel GOTO|GOSUB l1, l2, ...
// a selector outside the list does nothing
func evalOnStatement(st *stmt) (Signal, error) {
	sel, err := Eval(st.lx, st.env)
	if err != nil {
		return sigFailed, err
	}

	sub := st.at(token.GOSUB)
	if !sub && !st.at(token.GOTO) {
		return sigFailed, berrors.New(berrors.Syntax, "")
	}
	st.lx.Advance()

	var lines []int
	for {
		line, err := st.lineNumber()
		if err != nil {
			return sigFailed, err
		}
		lines = append(lines, line)
		if !st.at(token.COMMA) {
			break
		}
		st.lx.Advance()
	}

	idx := int(sel)
	if idx < 1 || idx > len(lines) {
		return sigContinue, nil
	}

	if sub {
		if err := st.pushReturn(); err != nil {
			return sigFailed, err
		}
	}
	return jumpTo(lines[idx-1]), nil
}

// evalForStatement handles FOR var = start TO limit [STEP step]. The loop
// body starts on the line after the FOR.
func evalForStatement(st *stmt) (Signal, error) {
	tok := st.lx.Current()
	if tok.Type != token.IDENT {
		return sigFailed, berrors.New(berrors.Syntax, "")
	}
	if object.IsStringName(tok.Literal) {
		return sigFailed, berrors.New(berrors.TypeMismatch, "")
	}
	st.lx.Advance()

	if err := st.expect(token.ASSIGN); err != nil {
		return sigFailed, err
	}
	start, err := Eval(st.lx, st.env)
	if err != nil {
		return sigFailed, err
	}
	if err := st.expect(token.TO); err != nil {
		return sigFailed, err
	}
	limit, err := Eval(st.lx, st.env)
	if err != nil {
		return sigFailed, err
	}
	step := 1.0
	if st.at(token.STEP) {
		st.lx.Advance()
		if step, err = Eval(st.lx, st.env); err != nil {
			return sigFailed, err
		}
	}

	if !st.running {
		return sigFailed, berrors.New(berrors.IllegalDirect, "")
	}

	if err := st.env.SetNum(tok.Literal, start); err != nil {
		return sigFailed, err
	}

	after := st.env.Program().NextNumberAfter(st.line)
	if after < 0 {
		return sigFailed, berrors.New(berrors.LastLine, "")
	}

	frame := object.ForFrame{Var: tok.Literal, Limit: limit, Step: step, Line: after}
	if err := st.env.PushFor(frame); err != nil {
		return sigFailed, err
	}
	return sigContinue, nil
}

// evalNextStatement steps the loop and goes around again, or drops
// that loop's frame and falls through
func evalNextStatement(st *stmt) (Signal, error) {
	name := ""
	if st.at(token.IDENT) {
		name = st.lx.Current().Literal
		st.lx.Advance()
	}

	idx := st.env.FindFor(name)
	if idx < 0 {
		return sigFailed, berrors.New(berrors.NextWithoutFor, name)
	}

	frame := st.env.ForLoops[idx]
	cur := st.env.GetNum(frame.Var) + frame.Step
	if err := st.env.SetNum(frame.Var, cur); err != nil {
		return sigFailed, err
	}

	if frame.Continues(cur) {
		return jumpTo(frame.Line), nil
	}
	st.env.RemoveFor(idx)
	return sigContinue, nil
}
