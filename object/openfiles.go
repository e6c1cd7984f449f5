package object

import (
	"sort"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/gwtypes"
)

// OpenFile is a handle slot, Col is the PRINT # output column
type OpenFile struct {
	File gwtypes.AnOpenFile
	Col  int
}

// AddOpenFile puts file into handle slot num
func (e *Environment) AddOpenFile(num int, file gwtypes.AnOpenFile) error {
	if num < 0 || num >= e.limits.MaxFiles {
		return berrors.New(berrors.BadFileNum, "")
	}
	if _, ok := e.files[num]; ok {
		return berrors.New(berrors.FileAlreadyOpen, "")
	}
	e.files[num] = &OpenFile{File: file}
	return nil
}

// GetFile finds the file in handle slot num
func (e *Environment) GetFile(num int) (*OpenFile, error) {
	of, ok := e.files[num]
	if !ok {
		return nil, berrors.New(berrors.BadFileNum, "")
	}
	return of, nil
}

// CloseFile closes a file based on its handle
func (e *Environment) CloseFile(num int) error {
	of, ok := e.files[num]
	if !ok {
		return berrors.New(berrors.BadFileNum, "")
	}
	delete(e.files, num)
	return of.File.Close()
}

// CloseAllFiles closes all open files
func (e *Environment) CloseAllFiles() {
	for _, num := range e.OpenHandles() {
		e.CloseFile(num)
	}
}

// OpenHandles lists the handles in use
func (e *Environment) OpenHandles() []int {
	var nums []int
	for n := range e.files {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}
