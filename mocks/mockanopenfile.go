package mocks

import (
	"io"
	"strings"

	"github.com/navionguy/linebasic/gwtypes"
)

// MockFile is an open data file held in memory
type MockFile struct {
	FileName string
	AccMode  gwtypes.AccessMode
	Lines    []string // what's left to read
	Written  *strings.Builder
	Closed   bool
	pending  string // rest of a line being read item by item
	partial  bool
}

// MockAnOpenFile makes a file ready for reading lines
func MockAnOpenFile(name string, lines ...string) *MockFile {
	return &MockFile{FileName: name, Lines: lines, Written: &strings.Builder{}}
}

func (maf *MockFile) AccessMode() gwtypes.AccessMode {
	return maf.AccMode
}

func (maf *MockFile) FQFN() string {
	return maf.FileName
}

func (maf *MockFile) ReadLine() (string, error) {
	if maf.partial {
		maf.partial = false
		return maf.pending, nil
	}
	if len(maf.Lines) == 0 {
		return "", io.EOF
	}
	l := maf.Lines[0]
	maf.Lines = maf.Lines[1:]
	return l, nil
}

func (maf *MockFile) ReadItem() (string, error) {
	if !maf.partial {
		l, err := maf.ReadLine()
		if err != nil {
			return "", err
		}
		maf.pending = l
	}
	item, rest, more := gwtypes.SplitItem(maf.pending)
	maf.pending = rest
	maf.partial = more
	return item, nil
}

func (maf *MockFile) EOF() bool {
	return !maf.partial && len(maf.Lines) == 0
}

func (maf *MockFile) Write(s string) error {
	maf.Written.WriteString(s)
	return nil
}

func (maf *MockFile) Close() error {
	maf.Closed = true
	return nil
}
