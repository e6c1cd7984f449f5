package program

import (
	"testing"

	"github.com/navionguy/linebasic/berrors"
	"github.com/stretchr/testify/assert"
)

func buildStore(lines ...Line) *Store {
	s := New(0)
	for _, l := range lines {
		s.SetLine(l.Number, l.Text)
	}
	return s
}

func Test_SetLineOrdering(t *testing.T) {
	s := buildStore(Line{30, "PRINT 3"}, Line{10, "PRINT 1"}, Line{20, "PRINT 2"})

	assert.Equal(t, []Line{{10, "PRINT 1"}, {20, "PRINT 2"}, {30, "PRINT 3"}}, s.Lines())
	assert.Equal(t, 3, s.Len())

	s.SetLine(20, "PRINT 22")
	l, ok := s.Get(20)
	assert.True(t, ok)
	assert.Equal(t, "PRINT 22", l.Text)
	assert.Equal(t, 3, s.Len())

	s.SetLine(20, "   ")
	assert.False(t, s.Exists(20))
	assert.Equal(t, 2, s.Len())
}

func Test_Navigation(t *testing.T) {
	s := buildStore(Line{10, "A=1"}, Line{25, "B=2"}, Line{40, "END"})

	tests := []struct {
		after int
		exp   int
	}{
		{-1, 10},
		{10, 25},
		{11, 25},
		{25, 40},
		{40, -1},
		{99, -1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, s.NextNumberAfter(tt.after), "NextNumberAfter(%d)", tt.after)
	}

	assert.Equal(t, 0, s.FindIndex(10))
	assert.Equal(t, 2, s.FindIndex(40))
	assert.Equal(t, -1, s.FindIndex(30))
	assert.Equal(t, 10, s.First())
	assert.Equal(t, -1, New(0).First())
}

func Test_AscendRange(t *testing.T) {
	s := buildStore(Line{10, "A"}, Line{20, "B"}, Line{30, "C"}, Line{40, "D"})

	var got []int
	s.AscendRange(15, 30, func(l Line) bool {
		got = append(got, l.Number)
		return true
	})
	assert.Equal(t, []int{20, 30}, got)
}

func Test_Version(t *testing.T) {
	s := New(0)
	v := s.Version()

	s.SetLine(10, "PRINT")
	assert.NotEqual(t, v, s.Version())

	v = s.Version()
	s.SetLine(99, "")
	assert.Equal(t, v, s.Version(), "deleting a missing line changes nothing")

	s.Clear()
	assert.NotEqual(t, v, s.Version())
	assert.Equal(t, 0, s.Len())
}

func Test_ProgramFull(t *testing.T) {
	s := New(2)
	assert.NoError(t, s.SetLine(10, "A"))
	assert.NoError(t, s.SetLine(20, "B"))
	err := s.SetLine(30, "C")
	assert.Error(t, err)
	assert.Equal(t, berrors.ProgramFull, berrors.Code(err))

	// replacing is still fine when full
	assert.NoError(t, s.SetLine(20, "BB"))
}

func Test_LineString(t *testing.T) {
	assert.Equal(t, "10 PRINT X", Line{10, "PRINT X"}.String())
}
