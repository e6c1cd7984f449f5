package evaluator

import (
	"fmt"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/filelist"
	"github.com/navionguy/linebasic/gwtypes"
	"github.com/navionguy/linebasic/lexer"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/token"
)

// fileName reads a quoted name, or a bare one such as PROG.BAS.
// A bare name is cut from the source text up to the next blank, the
// lexer would split it at the dot or mistake DATA.TXT for a keyword.
func (st *stmt) fileName() (string, error) {
	tok := st.lx.Current()
	if tok.Type == token.STRING {
		st.lx.Advance()
		if len(tok.Literal) == 0 {
			return "", berrors.New(berrors.FileNotFound, "")
		}
		return tok.Literal, nil
	}

	if tok.Type == token.EOF || tok.Start >= len(st.src) || !nameChar(st.src[tok.Start]) {
		return "", berrors.New(berrors.Syntax, "file name expected")
	}

	end := tok.Start
	for end < len(st.src) && nameChar(st.src[end]) {
		end++
	}
	name := st.src[tok.Start:end]

	// carry on lexing after the name
	st.src = st.src[end:]
	st.lx = lexer.New(st.src)
	return name, nil
}

func nameChar(ch byte) bool {
	switch ch {
	case ',', ':', ';', '"', '#', '(', ')':
		return false
	}
	return ch > ' '
}

func (st *stmt) storage() (object.Storage, error) {
	if st.env.Storage() == nil {
		return nil, berrors.New(berrors.DeviceIOError, "no storage")
	}
	return st.env.Storage(), nil
}

// ioError makes sure a collaborator failure is reported as a BASIC error
func ioError(err error) error {
	if _, ok := err.(*berrors.Error); ok {
		return err
	}
	return berrors.New(berrors.DeviceIOError, err.Error())
}

// evalSaveCommand writes the program out as numbered lines
func evalSaveCommand(st *stmt) (Signal, error) {
	name, err := st.fileName()
	if err != nil {
		return sigFailed, err
	}
	store, err := st.storage()
	if err != nil {
		return sigFailed, err
	}

	if err := store.SaveProgram(name, st.env.Program().Lines()); err != nil {
		return sigFailed, ioError(err)
	}
	st.println("Saved to " + name)
	return sigContinue, nil
}

// evalLoadCommand replaces the program with a stored one
func evalLoadCommand(st *stmt) (Signal, error) {
	name, err := st.fileName()
	if err != nil {
		return sigFailed, err
	}
	store, err := st.storage()
	if err != nil {
		return sigFailed, err
	}

	lines, err := store.LoadProgram(name)
	if err != nil {
		return sigFailed, ioError(err)
	}

	prog := st.env.Program()
	prog.Clear()
	for _, l := range lines {
		if err := prog.SetLine(l.Number, l.Text); err != nil {
			return sigFailed, err
		}
	}
	st.println(fmt.Sprintf("Loaded %s (%d lines)", name, prog.Len()))
	return sigContinue, nil
}

// evalSaveVarsCommand stores the scalar variables
func evalSaveVarsCommand(st *stmt) (Signal, error) {
	name, err := st.fileName()
	if err != nil {
		return sigFailed, err
	}
	store, err := st.storage()
	if err != nil {
		return sigFailed, err
	}

	if err := store.SaveVars(name, st.env.Variables()); err != nil {
		return sigFailed, ioError(err)
	}
	st.println("Variables saved to " + name)
	return sigContinue, nil
}

// evalLoadVarsCommand replaces the scalar variables with stored ones
func evalLoadVarsCommand(st *stmt) (Signal, error) {
	name, err := st.fileName()
	if err != nil {
		return sigFailed, err
	}
	store, err := st.storage()
	if err != nil {
		return sigFailed, err
	}

	vars, err := store.LoadVars(name)
	if err != nil {
		return sigFailed, ioError(err)
	}

	st.env.ClearScalars()
	for _, v := range vars {
		if err := st.env.Set(v.Name, v.Value()); err != nil {
			return sigFailed, err
		}
	}
	st.println(fmt.Sprintf("Variables loaded from %s (%d)", name, len(st.env.Variables())))
	return sigContinue, nil
}

// evalFilesCommand lists the stored programs
func evalFilesCommand(st *stmt) (Signal, error) {
	store, err := st.storage()
	if err != nil {
		return sigFailed, err
	}
	names, err := store.ListPrograms()
	if err != nil {
		return sigFailed, ioError(err)
	}

	for _, l := range filelist.Layout(names, filelist.ScreenWidth, st.env.Limits().ZoneWidth) {
		st.println(l)
	}
	return sigContinue, nil
}

// evalOpenStatement handles OPEN name FOR INPUT|OUTPUT|APPEND AS [#]n
func evalOpenStatement(st *stmt) (Signal, error) {
	name, err := st.fileName()
	if err != nil {
		return sigFailed, err
	}
	if err := st.expect(token.FOR); err != nil {
		return sigFailed, err
	}

	var mode gwtypes.AccessMode
	switch st.lx.Current().Type {
	case token.INPUT:
		mode = gwtypes.Input
	case token.OUTPUT:
		mode = gwtypes.Output
	case token.APPEND:
		mode = gwtypes.Append
	default:
		return sigFailed, berrors.New(berrors.FileMode, "")
	}
	st.lx.Advance()

	if err := st.expect(token.AS); err != nil {
		return sigFailed, err
	}
	if st.at(token.HASH) {
		st.lx.Advance()
	}
	n, err := st.lineNumber()
	if err != nil {
		return sigFailed, err
	}

	if n < 0 || n >= st.env.Limits().MaxFiles {
		return sigFailed, berrors.New(berrors.BadFileNum, "")
	}
	if _, err := st.env.GetFile(n); err == nil {
		return sigFailed, berrors.New(berrors.FileAlreadyOpen, "")
	}

	opener := st.env.FileOpener()
	if opener == nil {
		return sigFailed, berrors.New(berrors.DeviceIOError, "no file system")
	}
	f, err := opener.Open(name, mode)
	if err != nil {
		return sigFailed, ioError(err)
	}
	if err := st.env.AddOpenFile(n, f); err != nil {
		f.Close()
		return sigFailed, err
	}
	return sigContinue, nil
}

// evalCloseStatement handles CLOSE [[#]n], with no handle everything closes.
// Closing a handle that isn't open is quietly ignored.
func evalCloseStatement(st *stmt) (Signal, error) {
	if st.atEnd() {
		st.env.CloseAllFiles()
		return sigContinue, nil
	}

	if st.at(token.HASH) {
		st.lx.Advance()
	}
	n, err := st.lineNumber()
	if err != nil {
		return sigFailed, err
	}
	if _, err := st.env.GetFile(n); err != nil {
		return sigContinue, nil
	}
	if err := st.env.CloseFile(n); err != nil {
		return sigFailed, ioError(err)
	}
	return sigContinue, nil
}
