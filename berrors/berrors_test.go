package berrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextForError(t *testing.T) {
	tests := []struct {
		inp int
		exp string
	}{
		{inp: BadFileNum, exp: "Bad file number"},
		{inp: DivByZero, exp: "Division by zero"},
		{inp: FileNotFound, exp: "File not found"},
		{inp: IllegalDirect, exp: "Illegal direct"},
		{inp: NextWithoutFor, exp: "NEXT without FOR"},
		{inp: OutOfData, exp: "Out of DATA"},
		{inp: Overflow, exp: "Overflow"},
		{inp: ReturnWoGosub, exp: "RETURN without GOSUB"},
		{inp: Syntax, exp: "Syntax error"},
		{inp: TypeMismatch, exp: "Type mismatch"},
		{inp: UndimensionedArray, exp: "Undimensioned array"},
		{inp: UnDefinedLineNumber, exp: "Undefined line number"},
		{inp: SubscriptRange, exp: "Subscript out of range"},
		{inp: GosubOverflow, exp: "GOSUB stack overflow"},
		{inp: 100, exp: "Unprintable error"},
	}

	for _, tt := range tests {
		rc := TextForError(tt.inp)

		assert.EqualValuesf(t, tt.exp, rc, "TextForError(%d) got %s, wanted %s", tt.inp, rc, tt.exp)
	}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		err  *Error
		line int
		exp  string
	}{
		{New(Syntax, ""), 0, "Syntax error"},
		{New(Syntax, ""), 20, "Syntax error in 20"},
		{New(UndimensionedArray, "A"), 30, "Undimensioned array A in 30"},
		{Newf(UnDefinedLineNumber, "%d", 500), 10, "Undefined line number 500 in 10"},
	}

	for _, tt := range tests {
		got := AtLine(tt.err, tt.line)
		assert.EqualError(t, got, tt.exp)
	}
}

func TestAtLineKeepsFirstLine(t *testing.T) {
	err := AtLine(New(OutOfData, ""), 10)
	err = AtLine(err, 40)
	assert.EqualError(t, err, "Out of DATA in 10")

	foreign := errors.New("disk on fire")
	assert.Equal(t, foreign, AtLine(foreign, 10))
	assert.Equal(t, InternalErr, Code(foreign))
	assert.Equal(t, OutOfData, Code(err))
}
