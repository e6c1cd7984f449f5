package localfiles

import (
	"bytes"
	"sort"
	"strings"
	"sync"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/gwtypes"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/program"
)

// Memory holds all of the files a session uses in memory.
// In this way, if one program creates a data file, and a later
// program accesses it, the intended contents are preserved
type Memory struct {
	mtx      sync.Mutex
	data     map[string][]byte // data files by upper case name
	programs map[string][]program.Line
	vars     map[string][]object.Variable
}

// NewMemory creates an empty store
func NewMemory() *Memory {
	return &Memory{
		data:     make(map[string][]byte),
		programs: make(map[string][]program.Line),
		vars:     make(map[string][]object.Variable),
	}
}

func key(name string) string {
	return strings.ToUpper(name)
}

// Open gives the program a data file, output replaces the contents
// and append adds to them once the file is closed
func (m *Memory) Open(name string, mode gwtypes.AccessMode) (gwtypes.AnOpenFile, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	k := key(name)
	cur, ok := m.data[k]

	switch mode {
	case gwtypes.Input:
		if !ok {
			return nil, berrors.New(berrors.FileNotFound, "")
		}
		return newReadFile(name, bytes.NewReader(cur), nil), nil
	case gwtypes.Output:
		cur = nil
	case gwtypes.Append:
	default:
		return nil, berrors.New(berrors.FileMode, "")
	}

	buf := bytes.NewBuffer(append([]byte(nil), cur...))
	return newWriteFile(name, mode, buf, func() error {
		m.mtx.Lock()
		defer m.mtx.Unlock()
		m.data[k] = buf.Bytes()
		return nil
	}), nil
}

// SaveProgram keeps a copy of the lines
func (m *Memory) SaveProgram(name string, lines []program.Line) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.programs[key(name)] = append([]program.Line(nil), lines...)
	return nil
}

// LoadProgram gives back a copy of saved lines
func (m *Memory) LoadProgram(name string) ([]program.Line, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	lines, ok := m.programs[key(name)]
	if !ok {
		return nil, berrors.New(berrors.FileNotFound, "")
	}
	return append([]program.Line(nil), lines...), nil
}

// SaveVars keeps a copy of the variables
func (m *Memory) SaveVars(name string, vars []object.Variable) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.vars[key(name)] = append([]object.Variable(nil), vars...)
	return nil
}

// LoadVars gives back a copy of saved variables
func (m *Memory) LoadVars(name string) ([]object.Variable, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	vars, ok := m.vars[key(name)]
	if !ok {
		return nil, berrors.New(berrors.FileNotFound, "")
	}
	return append([]object.Variable(nil), vars...), nil
}

// ListPrograms gives the saved program names
func (m *Memory) ListPrograms() ([]string, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	names := make([]string, 0, len(m.programs))
	for k := range m.programs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}
