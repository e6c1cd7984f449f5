package object

import (
	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/token"
)

// ForFrame is an active FOR loop, Line is where NEXT jumps back to
type ForFrame struct {
	Var   string
	Limit float64
	Step  float64
	Line  int
}

// Continues tells if the loop runs again with the control variable at cur
func (f ForFrame) Continues(cur float64) bool {
	if f.Step >= 0 {
		return cur <= f.Limit
	}
	return cur >= f.Limit
}

// PushFor adds a loop to the top of the FOR stack
func (e *Environment) PushFor(f ForFrame) error {
	if len(e.ForLoops) >= e.limits.MaxStack {
		return berrors.New(berrors.ForOverflow, "")
	}
	e.ForLoops = append(e.ForLoops, f)
	return nil
}

// FindFor searches from the top of the stack down for the loop
// controlled by name, an empty name matches the top frame.
// Returns -1 if there is no such loop.
func (e *Environment) FindFor(name string) int {
	if len(name) == 0 {
		return len(e.ForLoops) - 1
	}
	key := token.Upper(name)
	for i := len(e.ForLoops) - 1; i >= 0; i-- {
		if token.Upper(e.ForLoops[i].Var) == key {
			return i
		}
	}
	return -1
}

// RemoveFor drops exactly the frame at idx, frames above it stay
func (e *Environment) RemoveFor(idx int) {
	if idx < 0 || idx >= len(e.ForLoops) {
		return
	}
	e.ForLoops = append(e.ForLoops[:idx], e.ForLoops[idx+1:]...)
}

// Push saves a GOSUB return line
func (e *Environment) Push(line int) error {
	if len(e.gosubs) >= e.limits.MaxStack {
		return berrors.New(berrors.GosubOverflow, "")
	}
	e.gosubs = append(e.gosubs, line)
	return nil
}

// Pop returns the most recent GOSUB return line
func (e *Environment) Pop() (int, error) {
	if len(e.gosubs) == 0 {
		return 0, berrors.New(berrors.ReturnWoGosub, "")
	}
	line := e.gosubs[len(e.gosubs)-1]
	e.gosubs = e.gosubs[:len(e.gosubs)-1]
	return line, nil
}

// Gosubs returns the GOSUB stack, bottom first
func (e *Environment) Gosubs() []int {
	return append([]int(nil), e.gosubs...)
}

// ResetStacks empties the FOR and GOSUB stacks
func (e *Environment) ResetStacks() {
	e.ForLoops = nil
	e.gosubs = nil
}
