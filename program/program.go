package program

import (
	"strconv"
	"strings"

	"github.com/google/btree"
	"github.com/navionguy/linebasic/berrors"
)

// MaxLines is the default capacity of a Store
const MaxLines = 2000

// Line is one numbered line of source, Text is everything after the number
type Line struct {
	Number int
	Text   string
}

// Less orders lines by number for the btree
func (l Line) Less(than btree.Item) bool {
	return l.Number < (than.(Line)).Number
}

func (l Line) String() string {
	return strconv.Itoa(l.Number) + " " + l.Text
}

// Store holds the program, always in ascending line number order.
// Every change bumps the version so that anything derived from the
// text, like the DATA pool, can tell it is stale.
type Store struct {
	code    *btree.BTree
	max     int
	version uint64
}

// New creates an empty Store that holds at most maxLines lines
func New(maxLines int) *Store {
	if maxLines <= 0 {
		maxLines = MaxLines
	}
	return &Store{code: btree.New(4), max: maxLines}
}

// SetLine inserts, replaces or (for blank text) deletes a line
func (s *Store) SetLine(num int, text string) error {
	if num < 0 {
		return berrors.New(berrors.Syntax, "")
	}

	text = strings.TrimSpace(text)
	if len(text) == 0 {
		if s.code.Delete(Line{Number: num}) != nil {
			s.version++
		}
		return nil
	}

	if !s.Exists(num) && s.code.Len() >= s.max {
		return berrors.New(berrors.ProgramFull, "")
	}

	s.code.ReplaceOrInsert(Line{Number: num, Text: text})
	s.version++
	return nil
}

// Clear throws away every line
func (s *Store) Clear() {
	s.code.Clear(false)
	s.version++
}

// Len tells how many lines are stored
func (s *Store) Len() int {
	return s.code.Len()
}

// Version changes whenever the program text does
func (s *Store) Version() uint64 {
	return s.version
}

// Get fetches a line by number
func (s *Store) Get(num int) (Line, bool) {
	item := s.code.Get(Line{Number: num})
	if item == nil {
		return Line{}, false
	}
	return item.(Line), true
}

// Exists just tell you if I could find it
func (s *Store) Exists(num int) bool {
	return s.code.Has(Line{Number: num})
}

// FindIndex returns the position of line num in program order, or -1
func (s *Store) FindIndex(num int) int {
	idx := 0
	found := -1
	s.code.Ascend(func(item btree.Item) bool {
		ln := item.(Line).Number
		if ln == num {
			found = idx
			return false
		}
		if ln > num {
			return false
		}
		idx++
		return true
	})
	return found
}

// First returns the lowest line number, -1 when empty
func (s *Store) First() int {
	item := s.code.Min()
	if item == nil {
		return -1
	}
	return item.(Line).Number
}

// NextNumberAfter returns the first line number greater than num, or -1.
// Passing -1 gives the first line of the program.
func (s *Store) NextNumberAfter(num int) int {
	next := -1
	s.code.AscendGreaterOrEqual(Line{Number: num + 1}, func(item btree.Item) bool {
		next = item.(Line).Number
		return false
	})
	return next
}

// Ascend walks the program in order until fn returns false
func (s *Store) Ascend(fn func(Line) bool) {
	s.code.Ascend(func(item btree.Item) bool {
		return fn(item.(Line))
	})
}

// AscendRange walks lines from..to inclusive
func (s *Store) AscendRange(from, to int, fn func(Line) bool) {
	s.code.AscendGreaterOrEqual(Line{Number: from}, func(item btree.Item) bool {
		l := item.(Line)
		if l.Number > to {
			return false
		}
		return fn(l)
	})
}

// Lines returns a copy of the program in order
func (s *Store) Lines() []Line {
	lines := make([]Line, 0, s.code.Len())
	s.Ascend(func(l Line) bool {
		lines = append(lines, l)
		return true
	})
	return lines
}
