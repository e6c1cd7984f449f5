package object

import (
	"math"
	"testing"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/mocks"
	"github.com/stretchr/testify/assert"
)

func Test_Atof(t *testing.T) {
	tests := []struct {
		inp string
		exp float64
	}{
		{"12", 12},
		{"  3.5", 3.5},
		{"12abc", 12},
		{"abc", 0},
		{"", 0},
		{"-7", -7},
		{"+.25", 0.25},
		{"1e3", 1000},
		{"1e", 1},
		{"2E-2x", 0.02},
		{".", 0},
		{"-", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, Atof(tt.inp), "Atof(%q)", tt.inp)
	}

	assert.True(t, math.IsInf(Atof("1e400"), 1))
}

func Test_FormatNumber(t *testing.T) {
	tests := []struct {
		inp float64
		exp string
	}{
		{5, "5"},
		{-2.5, "-2.5"},
		{1.0 / 3.0, "0.333333333333333"},
		{1e20, "1e+20"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{123456789012345, "123456789012345"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, FormatNumber(tt.inp))
	}
}

func Test_ObjectCoercion(t *testing.T) {
	assert.Equal(t, 42.0, NumberOf(&String{Value: "42 apples"}))
	assert.Equal(t, 1.5, NumberOf(&Number{Value: 1.5}))
	assert.Equal(t, "1.5", TextOf(&Number{Value: 1.5}))
	assert.Equal(t, "", TextOf(nil))
	assert.Equal(t, ObjectType(NUMBER_OBJ), (&Number{}).Type())
	assert.Equal(t, ObjectType(STRING_OBJ), (&String{}).Type())
}

func Test_Variables(t *testing.T) {
	env := NewTermEnvironment(nil)

	assert.Equal(t, 0.0, env.GetNum("missing"))
	assert.Equal(t, "", env.GetStr("missing$"))

	assert.NoError(t, env.SetNum("Count", 3))
	assert.Equal(t, 3.0, env.GetNum("COUNT"))
	assert.Equal(t, 3.0, env.GetNum("count"))

	assert.NoError(t, env.SetStr("n$", "hello"))
	assert.Equal(t, "hello", env.GetStr("N$"))

	// a variable changes kind when assigned the other kind
	assert.NoError(t, env.SetStr("count", "12"))
	assert.Equal(t, StrVar, env.Get("COUNT").Kind)
	assert.Equal(t, 12.0, env.GetNum("COUNT"))

	vars := env.Variables()
	assert.Len(t, vars, 2)
	assert.Equal(t, "Count", vars[0].Name)
	assert.Equal(t, "n$", vars[1].Name)
}

func Test_VariableTableFull(t *testing.T) {
	lim := DefaultLimits()
	lim.MaxVars = 2
	env := NewEnvironment(nil, lim)

	assert.NoError(t, env.SetNum("A", 1))
	assert.NoError(t, env.SetNum("B", 1))
	err := env.SetNum("C", 1)
	assert.Equal(t, berrors.TableFull, berrors.Code(err))
	assert.NoError(t, env.SetNum("a", 5), "existing names still work")
}

func Test_Arrays(t *testing.T) {
	env := NewTermEnvironment(nil)

	assert.NoError(t, env.Dim("A", []int{3, 4}))
	a, ok := env.NumArray("a")
	assert.True(t, ok)
	assert.Equal(t, Dims{3, 4}, a.Dims)
	assert.Len(t, a.Data, 12)

	assert.NoError(t, env.SetElement("A", []int{2, 3}, &Number{Value: 9}))
	assert.Equal(t, 9.0, a.Data[11], "row-major layout")

	v, err := env.GetElement("A", []int{2, 3})
	assert.NoError(t, err)
	assert.Equal(t, 9.0, NumberOf(v))

	tests := []struct {
		subs []int
		code int
	}{
		{[]int{3, 0}, berrors.SubscriptRange},
		{[]int{0, 4}, berrors.SubscriptRange},
		{[]int{-1, 0}, berrors.SubscriptRange},
		{[]int{1}, berrors.TooManySubscripts},
		{[]int{1, 1, 1}, berrors.TooManySubscripts},
	}
	for _, tt := range tests {
		_, err := env.GetElement("A", tt.subs)
		assert.Equal(t, tt.code, berrors.Code(err), "subs %v", tt.subs)
	}

	_, err = env.GetElement("NOPE", []int{0})
	assert.Equal(t, berrors.UndimensionedArray, berrors.Code(err))
	_, err = env.GetElement("NOPE$", []int{0})
	assert.Equal(t, berrors.UndimensionedArray, berrors.Code(err))

	// redim throws the old contents away
	assert.NoError(t, env.Dim("A", []int{3, 4}))
	v, _ = env.GetElement("A", []int{2, 3})
	assert.Equal(t, 0.0, NumberOf(v))
}

func Test_DimClampsAndLimits(t *testing.T) {
	env := NewTermEnvironment(nil)

	assert.NoError(t, env.Dim("Z$", []int{0, -4}))
	z, ok := env.StrArray("Z$")
	assert.True(t, ok)
	assert.Equal(t, Dims{1, 1}, z.Dims)

	err := env.Dim("B", []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2})
	assert.Equal(t, berrors.TooManySubscripts, berrors.Code(err))

	assert.NoError(t, env.Dim("C", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}))

	err = env.Dim("D", []int{100000, 100000})
	assert.Equal(t, berrors.OutOfMemory, berrors.Code(err))

	assert.NoError(t, env.SetElement("Z$", []int{0, 0}, &Number{Value: 2}))
	v, _ := env.GetElement("Z$", []int{0, 0})
	assert.Equal(t, "2", TextOf(v))
}

func Test_ForStack(t *testing.T) {
	env := NewTermEnvironment(nil)

	env.PushFor(ForFrame{Var: "I", Limit: 3, Step: 1, Line: 20})
	env.PushFor(ForFrame{Var: "J", Limit: 3, Step: 1, Line: 30})
	env.PushFor(ForFrame{Var: "K", Limit: 3, Step: 1, Line: 40})

	assert.Equal(t, 2, env.FindFor("k"))
	assert.Equal(t, 0, env.FindFor("I"))
	assert.Equal(t, 2, env.FindFor(""))
	assert.Equal(t, -1, env.FindFor("Q"))

	// only the matched frame goes, the ones above it survive
	env.RemoveFor(env.FindFor("J"))
	assert.Len(t, env.ForLoops, 2)
	assert.Equal(t, "I", env.ForLoops[0].Var)
	assert.Equal(t, "K", env.ForLoops[1].Var)

	up := ForFrame{Step: 1, Limit: 3}
	assert.True(t, up.Continues(3))
	assert.False(t, up.Continues(3.5))
	down := ForFrame{Step: -1, Limit: 1}
	assert.True(t, down.Continues(1))
	assert.False(t, down.Continues(0))
}

func Test_GosubStack(t *testing.T) {
	lim := DefaultLimits()
	lim.MaxStack = 3
	env := NewEnvironment(nil, lim)

	assert.NoError(t, env.Push(10))
	assert.NoError(t, env.Push(20))
	assert.NoError(t, env.Push(30))
	assert.Equal(t, berrors.GosubOverflow, berrors.Code(env.Push(40)))

	assert.Equal(t, []int{10, 20, 30}, env.Gosubs())
	for _, exp := range []int{30, 20, 10} {
		ln, err := env.Pop()
		assert.NoError(t, err)
		assert.Equal(t, exp, ln)
	}
	_, err := env.Pop()
	assert.Equal(t, berrors.ReturnWoGosub, berrors.Code(err))

	for i := 0; i < 3; i++ {
		assert.NoError(t, env.PushFor(ForFrame{Var: "I"}))
	}
	assert.Equal(t, berrors.ForOverflow, berrors.Code(env.PushFor(ForFrame{Var: "I"})))

	env.ResetStacks()
	assert.Len(t, env.ForLoops, 0)
	assert.Len(t, env.Gosubs(), 0)
}

func Test_DataPool(t *testing.T) {
	var d DataPool

	assert.True(t, d.Stale(0))
	d.Load([]DataItem{{"1", 10}, {"2", 10}, {"X", 30}, {"4", 50}}, 7)
	assert.False(t, d.Stale(7))
	assert.True(t, d.Stale(8))

	it, ok := d.Next()
	assert.True(t, ok)
	assert.Equal(t, DataItem{"1", 10}, it)

	d.RestoreAt(20)
	it, _ = d.Next()
	assert.Equal(t, "X", it.Text)

	d.RestoreAt(60)
	_, ok = d.Next()
	assert.False(t, ok)

	d.Restore()
	assert.Equal(t, 0, d.Cursor())
}

func Test_OpenFiles(t *testing.T) {
	env := NewTermEnvironment(nil)
	f := mocks.MockAnOpenFile("data.txt")

	assert.NoError(t, env.AddOpenFile(1, f))
	assert.Equal(t, berrors.FileAlreadyOpen, berrors.Code(env.AddOpenFile(1, f)))
	assert.Equal(t, berrors.BadFileNum, berrors.Code(env.AddOpenFile(16, f)))

	of, err := env.GetFile(1)
	assert.NoError(t, err)
	assert.Equal(t, "data.txt", of.File.FQFN())

	assert.NoError(t, env.CloseFile(1))
	assert.True(t, f.Closed)
	assert.Equal(t, berrors.BadFileNum, berrors.Code(env.CloseFile(1)))

	env.AddOpenFile(3, mocks.MockAnOpenFile("a"))
	env.AddOpenFile(2, mocks.MockAnOpenFile("b"))
	assert.Equal(t, []int{2, 3}, env.OpenHandles())
	env.CloseAllFiles()
	assert.Len(t, env.OpenHandles(), 0)
}

func Test_RandomIsRepeatable(t *testing.T) {
	e1 := NewTermEnvironment(nil)
	e2 := NewTermEnvironment(nil)

	for i := 0; i < 5; i++ {
		r := e1.Random()
		assert.Equal(t, r, e2.Random())
		assert.True(t, r >= 0 && r < 1)
	}
}

func Test_New(t *testing.T) {
	env := NewTermEnvironment(nil)
	env.Program().SetLine(10, "PRINT")
	env.SetNum("A", 1)
	env.Push(10)
	env.SetRun(true)

	env.New()
	assert.Equal(t, 0, env.Program().Len())
	assert.Nil(t, env.Get("A"))
	assert.Len(t, env.Gosubs(), 0)
	assert.False(t, env.ProgramRunning())
}
