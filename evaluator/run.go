package evaluator

import (
	"fmt"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/lexer"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/token"
)

// RunProgram executes the program from its first line
func RunProgram(env *object.Environment) error {
	return RunFrom(env, FirstLine)
}

// RunFrom executes the program starting at line start, FirstLine
// meaning the top. Any other start must be an existing line. It returns when the program ends, halts,
// is interrupted, or fails.
func RunFrom(env *object.Environment, start int) error {
	prog := env.Program()
	if prog.Len() == 0 {
		printLine(env, "NO PROGRAM")
		return nil
	}

	line, err := startLine(env, start)
	if err != nil {
		return err
	}

	env.ResetStacks()
	dataPool(env).Restore()
	env.SetRun(true)
	defer env.SetRun(false)

	for line >= 0 {
		l, ok := prog.Get(line)
		if !ok {
			return berrors.New(berrors.UnDefinedLineNumber, fmt.Sprint(line))
		}

		if env.GetTrace() {
			printLine(env, fmt.Sprintf("[TRACE] %d %s", l.Number, l.Text))
		}

		sig := Signal{Kind: Continue}
		if !isRemark(l.Text) {
			sig, err = ExecuteLine(env, l.Text, true, l.Number)
			if err != nil {
				return err
			}
		}

		if env.Terminal() != nil && env.Terminal().BreakCheck() {
			env.Terminal().Println(fmt.Sprintf("\nBREAK at line %d", l.Number))
			*env.ConsoleColumn() = 0
			return nil
		}

		switch sig.Kind {
		case Continue:
			line = prog.NextNumberAfter(l.Number)
		case Jump:
			if !prog.Exists(sig.Target) {
				return berrors.AtLine(berrors.New(berrors.UnDefinedLineNumber, fmt.Sprint(sig.Target)), l.Number)
			}
			line = sig.Target
		case RunRequest:
			if line, err = startLine(env, sig.Target); err != nil {
				return berrors.AtLine(err, l.Number)
			}
			env.ResetStacks()
			dataPool(env).Restore()
		case Halt:
			return nil
		default:
			return berrors.AtLine(berrors.New(berrors.InternalErr, ""), l.Number)
		}
	}

	return nil
}

// startLine checks a requested starting point
func startLine(env *object.Environment, start int) (int, error) {
	if start == FirstLine {
		return env.Program().First(), nil
	}
	if !env.Program().Exists(start) {
		return -1, berrors.New(berrors.UnDefinedLineNumber, fmt.Sprint(start))
	}
	return start, nil
}

func isRemark(text string) bool {
	return lexer.New(text).Current().Type == token.REM
}

func printLine(env *object.Environment, msg string) {
	if env.Terminal() == nil {
		return
	}
	if *env.ConsoleColumn() > 0 {
		env.Terminal().Println("")
	}
	env.Terminal().Println(msg)
	*env.ConsoleColumn() = 0
}
