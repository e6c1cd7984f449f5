// Package cli is the line oriented front end: numbered lines go into
// the program, anything else runs right away
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/evaluator"
	"github.com/navionguy/linebasic/localfiles"
	"github.com/navionguy/linebasic/object"
)

// Prompt is shown when waiting for a command
const Prompt = "> "

var helpText = []string{
	"Enter a line number and text to store a line, a number alone deletes it.",
	"Commands: RUN [n]  LIST [a [b]]  NEW  RENUM [start[,step]]  TRACE ON|OFF",
	"          SAVE f  LOAD f  SAVEVARS f  LOADVARS f  FILES  DUMP [VARS|ARRAYS|STACK]",
	"          HELP  QUIT  BYE",
	"Statements: PRINT ?  INPUT  LINE INPUT  LET  DIM  IF..THEN  GOTO  GOSUB  RETURN",
	"            ON..GOTO|GOSUB  FOR..TO..STEP  NEXT  DATA  READ  RESTORE  END  STOP  REM",
	"            OPEN f FOR INPUT|OUTPUT|APPEND AS #n  CLOSE [#n]  PRINT #n  INPUT #n",
	"Functions: ABS ATN COS EXP INT LOG LOG10 SIN SQR TAN SGN POW PI RND EOF",
	"           LEN ASC VAL CHR$ STR$ SEG$ TRM$ POS",
	"Separate statements with : or \\, ctrl-c stops a running program.",
}

// Start interacts with the user until QUIT, BYE or the input runs out
func Start(env *object.Environment) {
	term := env.Terminal()
	term.Println("READY.")

	for {
		inp, err := term.ReadLine(Prompt)
		if err != nil {
			// ctrl-c at the prompt just asks again
			if !errors.Is(err, io.EOF) && term.BreakCheck() {
				continue
			}
			return
		}
		if execCommand(inp, env) {
			return
		}
	}
}

// execCommand handles one line of input, true means time to quit
func execCommand(input string, env *object.Environment) bool {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return false
	}

	switch strings.ToUpper(input) {
	case "QUIT", "BYE", "SYSTEM":
		return true
	case "HELP":
		for _, l := range helpText {
			env.Terminal().Println(l)
		}
		return false
	}

	if num, text, ok := lineEntry(input); ok {
		if num <= 0 {
			giveError(berrors.New(berrors.Syntax, "line numbers start at 1").Error(), env)
			return false
		}
		if err := env.Program().SetLine(num, text); err != nil {
			giveError(err.Error(), env)
		}
		return false
	}

	sig, err := evaluator.ExecuteLine(env, input, false, -1)
	if err != nil {
		giveError(err.Error(), env)
		return false
	}

	if env.Terminal().BreakCheck() {
		env.Terminal().Println("\nBREAK")
		return false
	}

	switch sig.Kind {
	case evaluator.RunRequest, evaluator.Jump:
		// RUN, or GOTO typed in directly, starts the program
		if err := evaluator.RunFrom(env, sig.Target); err != nil {
			giveError(err.Error(), env)
		}
	}
	return false
}

// lineEntry splits "10 PRINT X" into its number and text
func lineEntry(input string) (int, string, bool) {
	end := 0
	for end < len(input) && input[end] >= '0' && input[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, "", false
	}
	num, err := strconv.Atoi(input[:end])
	if err != nil {
		return -1, "", true
	}
	return num, strings.TrimSpace(input[end:]), true
}

// giveError reports a failure to the user
func giveError(msg string, env *object.Environment) {
	col := env.ConsoleColumn()
	if *col > 0 {
		env.Terminal().Println("")
		*col = 0
	}
	env.Terminal().Println("ERROR: " + msg)
}

// RunFile loads a program file from disk and runs it, the way a
// program named on the command line is handled
func RunFile(env *object.Environment, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not load program file %q: %w", path, err)
	}
	defer f.Close()

	lines, err := localfiles.ReadProgram(f)
	if err != nil {
		return fmt.Errorf("could not load program file %q: %w", path, err)
	}

	for _, l := range lines {
		if l.Number <= 0 {
			continue
		}
		if err := env.Program().SetLine(l.Number, l.Text); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := evaluator.RunProgram(env); err != nil {
		giveError(err.Error(), env)
		return err
	}
	return nil
}
