package localfiles

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/gwtypes"
)

// an instance of an open data file, reading or writing but never both
type aLocalFile struct {
	FQFilename string // the name as the program asked for it
	mode       gwtypes.AccessMode
	rdr        *bufio.Reader
	wrt        io.Writer
	closer     func() error

	pending string // rest of a line being read item by item
	partial bool
	closed  bool
}

func newReadFile(name string, r io.Reader, closer func() error) *aLocalFile {
	return &aLocalFile{FQFilename: name, mode: gwtypes.Input, rdr: bufio.NewReader(r), closer: closer}
}

func newWriteFile(name string, mode gwtypes.AccessMode, w io.Writer, closer func() error) *aLocalFile {
	return &aLocalFile{FQFilename: name, mode: mode, wrt: w, closer: closer}
}

func (lf *aLocalFile) AccessMode() gwtypes.AccessMode {
	return lf.mode
}

func (lf *aLocalFile) FQFN() string {
	return lf.FQFilename
}

// ReadLine returns the next line without its line ending
func (lf *aLocalFile) ReadLine() (string, error) {
	if lf.rdr == nil {
		return "", berrors.New(berrors.FileMode, "")
	}
	if lf.partial {
		lf.partial = false
		return lf.pending, nil
	}

	line, err := lf.rdr.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadItem returns the next comma or line delimited field
func (lf *aLocalFile) ReadItem() (string, error) {
	if !lf.partial {
		l, err := lf.ReadLine()
		if err != nil {
			return "", err
		}
		lf.pending = l
	}
	item, rest, more := gwtypes.SplitItem(lf.pending)
	lf.pending = rest
	lf.partial = more
	return item, nil
}

// EOF is true once nothing is left to read
func (lf *aLocalFile) EOF() bool {
	if lf.rdr == nil || lf.closed {
		return true
	}
	if lf.partial {
		return false
	}
	_, err := lf.rdr.Peek(1)
	return err != nil
}

func (lf *aLocalFile) Write(s string) error {
	if lf.wrt == nil {
		return berrors.New(berrors.FileMode, "")
	}
	_, err := io.WriteString(lf.wrt, s)
	return err
}

func (lf *aLocalFile) Close() error {
	if lf.closed {
		return nil
	}
	lf.closed = true
	if lf.closer != nil {
		return lf.closer()
	}
	return nil
}
