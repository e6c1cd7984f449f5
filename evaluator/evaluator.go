package evaluator

import (
	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/lexer"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/token"
)

// SignalKind tells the caller what to do after a statement
type SignalKind int

const (
	Continue   SignalKind = 0  // carry on with the next statement
	Jump       SignalKind = 1  // transfer to Signal.Target
	RunRequest SignalKind = 2  // RUN was asked for
	Halt       SignalKind = 9  // END or STOP while running
	Failed     SignalKind = -1 // the statement failed, see the error
)

func (sk SignalKind) String() string {
	switch sk {
	case Continue:
		return "CONTINUE"
	case Jump:
		return "JUMP"
	case RunRequest:
		return "RUN"
	case Halt:
		return "HALT"
	}
	return "ERROR"
}

// FirstLine as a RUN target means start at the top of the program
const FirstLine = -1

// Signal is the outcome of executing a statement
type Signal struct {
	Kind   SignalKind
	Target int // line number for a Jump
}

var (
	sigContinue = Signal{Kind: Continue}
	sigFailed   = Signal{Kind: Failed}
)

func jumpTo(line int) Signal {
	return Signal{Kind: Jump, Target: line}
}

// the statement being executed
type stmt struct {
	env     *object.Environment
	lx      lexer.TokenSource
	src     string // text the token spans point into
	running bool
	line    int // -1 when typed in directly
}

type handler func(st *stmt) (Signal, error)

// leading keyword to its handler, filled in by init to
// break the loop through IF ... THEN
var statements map[token.TokenType]handler

func init() {
	statements = map[token.TokenType]handler{
		token.CLOSE:    evalCloseStatement,
		token.DATA:     evalDataStatement,
		token.DIM:      evalDimStatement,
		token.DUMP:     evalDumpCommand,
		token.END:      evalEndStatement,
		token.FILES:    evalFilesCommand,
		token.FOR:      evalForStatement,
		token.GOSUB:    evalGosubStatement,
		token.GOTO:     evalGotoStatement,
		token.IF:       evalIfStatement,
		token.INPUT:    evalInputStatement,
		token.LET:      evalLetStatement,
		token.LINE:     evalLineInputStatement,
		token.LIST:     evalListCommand,
		token.LOAD:     evalLoadCommand,
		token.LOADVARS: evalLoadVarsCommand,
		token.NEW:      evalNewCommand,
		token.NEXT:     evalNextStatement,
		token.ON:       evalOnStatement,
		token.OPEN:     evalOpenStatement,
		token.PRINT:    evalPrintStatement,
		token.QUESTION: evalPrintStatement,
		token.READ:     evalReadStatement,
		token.REM:      evalRemStatement,
		token.RENUM:    evalRenumCommand,
		token.RESTORE:  evalRestoreStatement,
		token.RETURN:   evalReturnStatement,
		token.RUN:      evalRunCommand,
		token.SAVE:     evalSaveCommand,
		token.SAVEVARS: evalSaveVarsCommand,
		token.STOP:     evalEndStatement,
		token.TRACE:    evalTraceCommand,
	}
}

// ExecuteStatement runs a single statement. currentLine is the program
// line it came from, -1 for a statement typed in directly. Errors come
// back with a Failed signal, stamped with the line while running.
func ExecuteStatement(env *object.Environment, text string, duringRun bool, currentLine int) (Signal, error) {
	st := &stmt{env: env, lx: lexer.New(text), src: text, running: duringRun, line: currentLine}

	sig, err := st.execute()
	if err != nil {
		if duringRun {
			err = berrors.AtLine(err, currentLine)
		}
		return sigFailed, err
	}
	return sig, nil
}

// ExecuteLine runs every statement on a line, stopping at the first
// one that does anything other than continue
func ExecuteLine(env *object.Environment, text string, duringRun bool, currentLine int) (Signal, error) {
	for _, s := range lexer.SplitStatements(text) {
		sig, err := ExecuteStatement(env, s, duringRun, currentLine)
		if err != nil || sig.Kind != Continue {
			return sig, err
		}
	}
	return sigContinue, nil
}

// dispatch on the token under the cursor
func (st *stmt) execute() (Signal, error) {
	tok := st.lx.Current()

	switch tok.Type {
	case token.EOF:
		return sigContinue, nil
	case token.IDENT:
		return evalAssignment(st)
	}

	h, ok := statements[tok.Type]
	if !ok {
		return sigFailed, berrors.New(berrors.Syntax, "")
	}
	st.lx.Advance()
	return h(st)
}

// expect consumes a token of the given type or fails with a syntax error
func (st *stmt) expect(tt token.TokenType) error {
	if st.lx.Current().Type != tt {
		return berrors.New(berrors.Syntax, "")
	}
	st.lx.Advance()
	return nil
}

// lineNumber reads a literal line number
func (st *stmt) lineNumber() (int, error) {
	tok := st.lx.Current()
	if tok.Type != token.NUMBER {
		return 0, berrors.New(berrors.Syntax, "")
	}
	st.lx.Advance()
	return int(tok.Number), nil
}

// at reports whether the cursor is on tt
func (st *stmt) at(tt token.TokenType) bool {
	return st.lx.Current().Type == tt
}

func (st *stmt) atEnd() bool {
	return st.at(token.EOF)
}

func (st *stmt) println(msg string) {
	if st.env.Terminal() != nil {
		st.env.Terminal().Println(msg)
		*st.env.ConsoleColumn() = 0
	}
}

func evalRemStatement(st *stmt) (Signal, error) {
	return sigContinue, nil
}

// END and STOP halt a running program, typed in they just say OK
func evalEndStatement(st *stmt) (Signal, error) {
	if st.running {
		return Signal{Kind: Halt}, nil
	}
	st.println("OK")
	return sigContinue, nil
}

// evalRunCommand handles RUN [line]
func evalRunCommand(st *stmt) (Signal, error) {
	sig := Signal{Kind: RunRequest, Target: FirstLine}
	if st.at(token.NUMBER) {
		sig.Target, _ = st.lineNumber()
	}
	return sig, nil
}

func evalTraceCommand(st *stmt) (Signal, error) {
	switch st.lx.Current().Type {
	case token.ON:
		st.env.SetTrace(true)
	case token.OFF:
		st.env.SetTrace(false)
	default:
		return sigFailed, berrors.New(berrors.Syntax, "")
	}
	st.lx.Advance()
	return sigContinue, nil
}

// NEW clears the program, variables, arrays, stacks and files
func evalNewCommand(st *stmt) (Signal, error) {
	st.env.New()
	st.println("NEW PROGRAM")
	return sigContinue, nil
}
