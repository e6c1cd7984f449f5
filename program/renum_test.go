package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Renumber(t *testing.T) {
	s := buildStore(
		Line{5, "IF X > 100 THEN 20"},
		Line{7, "GOSUB 40: X = X + 100"},
		Line{20, "GOTO 5"},
		Line{40, "ON X GOTO 5,20, 7"},
		Line{50, `PRINT "GOTO 20": RESTORE 40: GOTO 999`},
		Line{60, "RETURN"},
	)

	err := s.Renumber(100, 10)
	assert.NoError(t, err)

	exp := []Line{
		{100, "IF X > 100 THEN 120"},
		{110, "GOSUB 130: X = X + 100"},
		{120, "GOTO 100"},
		{130, "ON X GOTO 100,120, 110"},
		{140, `PRINT "GOTO 20": RESTORE 130: GOTO 999`},
		{150, "RETURN"},
	}
	assert.Equal(t, exp, s.Lines())
}

func Test_RenumberBadArgs(t *testing.T) {
	s := buildStore(Line{10, "END"})
	assert.Error(t, s.Renumber(10, 0))
	assert.Error(t, s.Renumber(-1, 10))
}

func Test_RewriteTargets(t *testing.T) {
	remap := map[int]int{10: 1000, 20: 2000}

	tests := []struct {
		inp string
		exp string
	}{
		{"GOTO 10", "GOTO 1000"},
		{"goto   20", "goto   2000"},
		{"A = 10 + 20", "A = 10 + 20"},
		{"IF A THEN PRINT 10", "IF A THEN PRINT 10"},
		{"PRINT 10, 20", "PRINT 10, 20"},
		{"GOTO 10.5", "GOTO 10.5"},
		{"REM GOTO 10", "REM GOTO 10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, RewriteTargets(tt.inp, remap))
	}
}
