package localfiles

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/gwtypes"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/program"
)

// ProgramExt is added to program names given without an extension
const ProgramExt = ".bas"

// Dir keeps programs, variables and data files in an OS directory
type Dir struct {
	root string
}

// NewDir uses root, creating it if needed
func NewDir(root string) (*Dir, error) {
	if len(root) == 0 {
		root = "."
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage dir %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

// path keeps name inside the root directory
func (d *Dir) path(name string) string {
	return filepath.Join(d.root, filepath.Clean(string(filepath.Separator)+name))
}

func programName(name string) string {
	if len(filepath.Ext(name)) == 0 {
		return name + ProgramExt
	}
	return name
}

// osError turns an OS failure into the BASIC error for it
func osError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return berrors.New(berrors.FileNotFound, "")
	}
	return berrors.New(berrors.DeviceIOError, err.Error())
}

// Open opens a data file for a program's OPEN statement
func (d *Dir) Open(name string, mode gwtypes.AccessMode) (gwtypes.AnOpenFile, error) {
	var f *os.File
	var err error

	switch mode {
	case gwtypes.Input:
		f, err = os.Open(d.path(name))
	case gwtypes.Output:
		f, err = os.Create(d.path(name))
	case gwtypes.Append:
		f, err = os.OpenFile(d.path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	default:
		return nil, berrors.New(berrors.FileMode, "")
	}
	if err != nil {
		return nil, osError(err)
	}

	if mode == gwtypes.Input {
		return newReadFile(name, f, f.Close), nil
	}
	return newWriteFile(name, mode, f, f.Close), nil
}

// SaveProgram writes the program as text
func (d *Dir) SaveProgram(name string, lines []program.Line) error {
	f, err := os.Create(d.path(programName(name)))
	if err != nil {
		return osError(err)
	}
	if err := WriteProgram(f, lines); err != nil {
		f.Close()
		return osError(err)
	}
	return f.Close()
}

// LoadProgram reads a program saved by SaveProgram, or typed in by hand
func (d *Dir) LoadProgram(name string) ([]program.Line, error) {
	f, err := os.Open(d.path(programName(name)))
	if err != nil {
		return nil, osError(err)
	}
	defer f.Close()

	lines, err := ReadProgram(f)
	if err != nil {
		return nil, osError(err)
	}
	return lines, nil
}

// SaveVars writes the variables under name exactly as given
func (d *Dir) SaveVars(name string, vars []object.Variable) error {
	f, err := os.Create(d.path(name))
	if err != nil {
		return osError(err)
	}
	if err := WriteVars(f, vars); err != nil {
		f.Close()
		return osError(err)
	}
	return f.Close()
}

// LoadVars reads variables saved by SaveVars
func (d *Dir) LoadVars(name string) ([]object.Variable, error) {
	f, err := os.Open(d.path(name))
	if err != nil {
		return nil, osError(err)
	}
	defer f.Close()

	vars, err := ReadVars(f)
	if err != nil {
		return nil, osError(err)
	}
	return vars, nil
}

// ListPrograms gives the program files in the directory, without extension
func (d *Dir) ListPrograms() ([]string, error) {
	ents, err := os.ReadDir(d.root)
	if err != nil {
		return nil, osError(err)
	}

	var names []string
	for _, e := range ents {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ProgramExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	sort.Strings(names)
	return names, nil
}
