package localfiles

import (
	"io"
	"strings"
	"testing"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/gwtypes"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgram = []program.Line{
	{Number: 10, Text: `PRINT "HELLO"`},
	{Number: 20, Text: "GOTO 10"},
}

var testVars = []object.Variable{
	{Name: "A", Kind: object.NumVar, Num: 3.5},
	{Name: "B$", Kind: object.StrVar, Str: "two words"},
}

func TestALocalFile(t *testing.T) {
	af := newReadFile("test.dat", strings.NewReader("1, 2,\"a,b\"\nsecond line\r\nlast"), nil)

	assert.EqualValues(t, "test.dat", af.FQFN())
	assert.Equal(t, gwtypes.Input, af.AccessMode())
	assert.False(t, af.EOF())

	for _, want := range []string{"1", "2", "a,b"} {
		item, err := af.ReadItem()
		assert.NoError(t, err)
		assert.Equal(t, want, item)
	}

	ln, err := af.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "second line", ln)

	ln, err = af.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "last", ln)
	assert.True(t, af.EOF())

	_, err = af.ReadLine()
	assert.ErrorIs(t, err, io.EOF)

	assert.Error(t, af.Write("nope"), "input files can't be written")
	assert.NoError(t, af.Close())
	assert.NoError(t, af.Close(), "second close is harmless")
}

func TestProgramFormat(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteProgram(&sb, testProgram))
	assert.Equal(t, "10 PRINT \"HELLO\"\n20 GOTO 10\n", sb.String())

	lines, err := ReadProgram(strings.NewReader(sb.String() + "not a line\n  30   END  \n"))
	require.NoError(t, err)
	assert.Equal(t, append(testProgram, program.Line{Number: 30, Text: "END"}), lines)
}

func TestVarsFormat(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteVars(&sb, testVars))
	assert.Equal(t, "A\tN\t3.5\nB$\tS\ttwo words\n", sb.String())

	vars, err := ReadVars(strings.NewReader(sb.String() + "broken\n"))
	require.NoError(t, err)
	assert.Equal(t, testVars, vars)
}

func TestDirStorage(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, d.SaveProgram("hello", testProgram))
	lines, err := d.LoadProgram("hello.bas")
	require.NoError(t, err)
	assert.Equal(t, testProgram, lines)

	require.NoError(t, d.SaveVars("vars.txt", testVars))
	vars, err := d.LoadVars("vars.txt")
	require.NoError(t, err)
	assert.Equal(t, testVars, vars)

	names, err := d.ListPrograms()
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, names)

	_, err = d.LoadProgram("missing")
	assert.Equal(t, berrors.FileNotFound, berrors.Code(err))
}

func TestDirDataFiles(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	_, err = d.Open("nothere.dat", gwtypes.Input)
	assert.Equal(t, berrors.FileNotFound, berrors.Code(err))

	f, err := d.Open("../escape.dat", gwtypes.Output)
	require.NoError(t, err)
	assert.NoError(t, f.Write("1,2\n"))
	assert.NoError(t, f.Close())

	f, err = d.Open("escape.dat", gwtypes.Append)
	require.NoError(t, err)
	assert.NoError(t, f.Write("3\n"))
	assert.NoError(t, f.Close())

	f, err = d.Open("escape.dat", gwtypes.Input)
	require.NoError(t, err)
	var items []string
	for !f.EOF() {
		it, err := f.ReadItem()
		require.NoError(t, err)
		items = append(items, it)
	}
	assert.Equal(t, []string{"1", "2", "3"}, items)
	assert.NoError(t, f.Close())
}

func TestMemory(t *testing.T) {
	m := NewMemory()

	_, err := m.Open("data", gwtypes.Input)
	assert.Equal(t, berrors.FileNotFound, berrors.Code(err))

	f, err := m.Open("data", gwtypes.Output)
	require.NoError(t, err)
	f.Write("first\n")
	f.Close()

	f, err = m.Open("DATA", gwtypes.Append)
	require.NoError(t, err)
	f.Write("second\n")
	f.Close()

	f, err = m.Open("Data", gwtypes.Input)
	require.NoError(t, err)
	l1, _ := f.ReadLine()
	l2, _ := f.ReadLine()
	assert.Equal(t, []string{"first", "second"}, []string{l1, l2})
	assert.True(t, f.EOF())

	require.NoError(t, m.SaveProgram("prog", testProgram))
	lines, err := m.LoadProgram("PROG")
	require.NoError(t, err)
	assert.Equal(t, testProgram, lines)

	require.NoError(t, m.SaveVars("v", testVars))
	vars, err := m.LoadVars("v")
	require.NoError(t, err)
	assert.Equal(t, testVars, vars)

	_, err = m.LoadVars("nope")
	assert.Error(t, err)

	names, _ := m.ListPrograms()
	assert.Equal(t, []string{"PROG"}, names)
}
