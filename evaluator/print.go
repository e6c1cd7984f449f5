package evaluator

import (
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/gwtypes"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/token"
)

// outSink is where PRINT output lands, the console or an open file,
// along with that destination's output column
type outSink struct {
	emit func(string) error
	col  *int
}

// write sends text and keeps the column up to date
func (sk outSink) write(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			*sk.col = 0
		} else {
			*sk.col++
		}
	}
	return sk.emit(s)
}

// padTo writes spaces until the column reaches col
func (sk outSink) padTo(col int) error {
	if *sk.col >= col {
		return nil
	}
	return sk.write(strings.Repeat(" ", col-*sk.col))
}

func consoleSink(env *object.Environment) outSink {
	return outSink{
		emit: func(s string) error {
			if env.Terminal() != nil {
				env.Terminal().Print(s)
			}
			return nil
		},
		col: env.ConsoleColumn(),
	}
}

func fileSink(of *object.OpenFile) outSink {
	return outSink{emit: of.File.Write, col: &of.Col}
}

// handleNumber reads "#n" and the comma after it
func (st *stmt) handleNumber() (int, error) {
	if err := st.expect(token.HASH); err != nil {
		return 0, err
	}
	n, err := Eval(st.lx, st.env)
	if err != nil {
		return 0, err
	}
	if st.at(token.COMMA) {
		st.lx.Advance()
	}
	return int(n), nil
}

// writableFile finds handle n and makes sure it was opened for writing
func (st *stmt) writableFile(n int) (*object.OpenFile, error) {
	of, err := st.env.GetFile(n)
	if err != nil {
		return nil, err
	}
	if of.File.AccessMode() == gwtypes.Input {
		return nil, berrors.New(berrors.FileMode, "")
	}
	return of, nil
}

// evalPrintStatement handles PRINT and ?
//
//	PRINT [#n,] [item {,|; item}] [,|;]
//
// a comma moves to the next print zone, a semicolon leaves the cursor
// where it is, either one at the end holds off the newline
func evalPrintStatement(st *stmt) (Signal, error) {
	out := consoleSink(st.env)

	if st.at(token.HASH) {
		n, err := st.handleNumber()
		if err != nil {
			return sigFailed, err
		}
		of, err := st.writableFile(n)
		if err != nil {
			return sigFailed, err
		}
		out = fileSink(of)
	}

	zone := st.env.Limits().ZoneWidth
	suppress := false

	for !st.atEnd() {
		var err error

		switch st.lx.Current().Type {
		case token.COMMA:
			st.lx.Advance()
			err = out.padTo(((*out.col / zone) + 1) * zone)
			suppress = true
		case token.SEMICOLON:
			st.lx.Advance()
			suppress = true
		default:
			err = st.printItem(out)
			suppress = false
		}

		if err != nil {
			return sigFailed, err
		}
	}

	if !suppress {
		if err := out.write("\n"); err != nil {
			return sigFailed, err
		}
	}
	return sigContinue, nil
}

// printItem renders one item, TAB(n) moves to column n-1
func (st *stmt) printItem(out outSink) error {
	tok := st.lx.Current()
	if tok.Type == token.IDENT && token.Upper(tok.Literal) == "TAB" && st.lx.Peek().Type == token.LPAREN {
		st.lx.Advance()
		st.lx.Advance()
		n, err := Eval(st.lx, st.env)
		if err != nil {
			return err
		}
		if err := st.expect(token.RPAREN); err != nil {
			return err
		}
		return out.padTo(int(n) - 1)
	}

	v, err := evalConcat(st.lx, st.env)
	if err != nil {
		return err
	}
	return out.write(v.Inspect())
}
