package berrors

import "fmt"

const (
	NextWithoutFor = iota + 1
	Syntax
	ReturnWoGosub
	OutOfData
	IllegalFuncCallErr
	Overflow
	OutOfMemory
	UnDefinedLineNumber
	SubscriptRange
	DuplicateDefinition // 10
	DivByZero
	IllegalDirect
	TypeMismatch
	StringSpace
	String2Long
	StringForm2Complex
	CantContinue
	UndefinedFunction
	UndimensionedArray
	TooManySubscripts // 20
	ForOverflow
	GosubOverflow
	ProgramFull
	TableFull
	LastLine
	NoProgram
	Break
	_
	_
	_ // 30
	_
	_
	_
	_
	_
	_
	_
	_
	_
	_ // 40
	_
	_
	_
	_
	_
	_
	_
	_
	_
	FieldOverflow // 50
	InternalErr
	BadFileNum
	FileNotFound
	FileAlreadyOpen
	DeviceIOError
	FileMode
)

// TextForError returns the error text based on error number
func TextForError(err int) string {
	switch err {
	case BadFileNum:
		return "Bad file number"
	case Break:
		return "BREAK"
	case DeviceIOError:
		return "Device I/O error"
	case DivByZero:
		return "Division by zero"
	case FileAlreadyOpen:
		return "File already open"
	case FileMode:
		return "Bad file mode"
	case FileNotFound:
		return "File not found"
	case ForOverflow:
		return "FOR stack overflow"
	case GosubOverflow:
		return "GOSUB stack overflow"
	case IllegalDirect:
		return "Illegal direct"
	case IllegalFuncCallErr:
		return "Illegal function call"
	case InternalErr:
		return "Internal error"
	case LastLine:
		return "No line follows"
	case NextWithoutFor:
		return "NEXT without FOR"
	case NoProgram:
		return "NO PROGRAM"
	case OutOfData:
		return "Out of DATA"
	case OutOfMemory:
		return "Out of memory"
	case Overflow:
		return "Overflow"
	case ProgramFull:
		return "Program full"
	case ReturnWoGosub:
		return "RETURN without GOSUB"
	case SubscriptRange:
		return "Subscript out of range"
	case Syntax:
		return "Syntax error"
	case TableFull:
		return "Table full"
	case TooManySubscripts:
		return "Wrong number of subscripts"
	case TypeMismatch:
		return "Type mismatch"
	case UndefinedFunction:
		return "Undefined user function"
	case UnDefinedLineNumber:
		return "Undefined line number"
	case UndimensionedArray:
		return "Undimensioned array"
	}

	return "Unprintable error"
}

// Error is a BASIC run time error, Line is zero when the failing
// statement was typed in directly
type Error struct {
	Code   int
	Line   int
	Detail string
}

// New builds an Error with optional detail text
func New(code int, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// Newf builds an Error with formatted detail text
func Newf(code int, format string, args ...interface{}) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := TextForError(e.Code)
	if len(e.Detail) > 0 {
		msg = msg + " " + e.Detail
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s in %d", msg, e.Line)
	}
	return msg
}

// AtLine stamps the line number on err if it is one of mine and
// doesn't already carry one
func AtLine(err error, line int) error {
	be, ok := err.(*Error)
	if !ok || be.Line > 0 || line < 0 {
		return err
	}
	cp := *be
	cp.Line = line
	return &cp
}

// Code extracts the error number, InternalErr for foreign errors
func Code(err error) int {
	if be, ok := err.(*Error); ok {
		return be.Code
	}
	return InternalErr
}
