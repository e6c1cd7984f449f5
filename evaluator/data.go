package evaluator

import (
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/lexer"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/program"
	"github.com/navionguy/linebasic/token"
)

// DATA does nothing when executed, the pool builder harvests it
func evalDataStatement(st *stmt) (Signal, error) {
	return sigContinue, nil
}

// evalReadStatement fills each target from the DATA pool
func evalReadStatement(st *stmt) (Signal, error) {
	tgts, err := st.parseTargets()
	if err != nil {
		return sigFailed, err
	}

	pool := dataPool(st.env)
	for _, t := range tgts {
		it, ok := pool.Next()
		if !ok {
			return sigFailed, berrors.New(berrors.OutOfData, "")
		}
		if err := t.assignText(st.env, it.Text); err != nil {
			return sigFailed, err
		}
	}
	return sigContinue, nil
}

// evalRestoreStatement handles RESTORE [line]
func evalRestoreStatement(st *stmt) (Signal, error) {
	pool := dataPool(st.env)
	if st.atEnd() {
		pool.Restore()
		return sigContinue, nil
	}

	line, err := st.lineNumber()
	if err != nil {
		return sigFailed, err
	}
	pool.RestoreAt(line)
	return sigContinue, nil
}

// dataPool hands back the pool, rebuilt if the program changed since
// it was last built
func dataPool(env *object.Environment) *object.DataPool {
	pool := env.Data()
	prog := env.Program()
	if pool.Stale(prog.Version()) {
		pool.Load(BuildDataPool(env, prog), prog.Version())
	}
	return pool
}

// BuildDataPool collects every DATA item in the program in line order.
// Quoted strings are kept as written, a bare word is kept as text and
// anything else is evaluated and stored in its printed form.
func BuildDataPool(env *object.Environment, prog *program.Store) []object.DataItem {
	var items []object.DataItem

	prog.Ascend(func(l program.Line) bool {
		for _, s := range lexer.SplitStatements(l.Text) {
			lx := lexer.New(s)
			if lx.Current().Type != token.DATA {
				continue
			}
			lx.Advance()
			items = append(items, dataItems(env, lx, s, l.Number)...)
		}
		return true
	})

	return items
}

// dataItems splits the list following DATA
func dataItems(env *object.Environment, lx *lexer.Lexer, src string, line int) []object.DataItem {
	var items []object.DataItem

	for lx.Current().Type != token.EOF {
		tok := lx.Current()
		var text string

		switch {
		case tok.Type == token.COMMA:
			// an empty item
		case tok.Type == token.STRING:
			text = tok.Literal
			lx.Advance()
		case bareWord(lx):
			start := tok.Start
			end := tok.End
			for lx.Current().Type != token.COMMA && lx.Current().Type != token.EOF {
				end = lx.Current().End
				lx.Advance()
			}
			text = strings.TrimSpace(src[start:end])
		default:
			v, err := Eval(lx, env)
			if err != nil {
				// skip to the next item
				for lx.Current().Type != token.COMMA && lx.Current().Type != token.EOF {
					lx.Advance()
				}
			}
			text = object.FormatNumber(v)
		}

		items = append(items, object.DataItem{Text: text, Line: line})

		if lx.Current().Type != token.COMMA {
			break
		}
		lx.Advance()
	}

	return items
}

// bareWord is an unquoted word that isn't the start of an expression,
// DATA RED, GREEN is two strings
func bareWord(lx lexer.TokenSource) bool {
	tok := lx.Current()
	if tok.Type != token.IDENT {
		return false
	}
	switch lx.Peek().Type {
	case token.COMMA, token.EOF, token.IDENT:
		return true
	}
	return false
}
