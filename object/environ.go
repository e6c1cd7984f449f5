package object

import (
	"math/rand"

	"github.com/navionguy/linebasic/gwtypes"
	"github.com/navionguy/linebasic/program"
)

// Console defines how to collect input and display output
type Console interface {
	// Print outputs the passed string at the curent cursor position,
	// the bytes are passed through untouched
	Print(string)
	// Println prints the string followed by a newline
	Println(string)
	// ReadLine shows the prompt and collects one line of input
	ReadLine(prompt string) (string, error)
	// BreakCheck returns true if a ctrl-c was entered, and clears it
	BreakCheck() bool
}

// Storage saves and restores programs and variables by name
type Storage interface {
	SaveProgram(name string, lines []program.Line) error
	LoadProgram(name string) ([]program.Line, error)
	SaveVars(name string, vars []Variable) error
	LoadVars(name string) ([]Variable, error)
	ListPrograms() ([]string, error)
}

// FileOpener opens data files for OPEN
type FileOpener interface {
	Open(name string, mode gwtypes.AccessMode) (gwtypes.AnOpenFile, error)
}

// Limits caps the size of every table in a session
type Limits struct {
	MaxLines  int   // program lines
	MaxVars   int   // scalar variables
	MaxArrays int   // arrays of each kind
	MaxDims   int   // dimensions per array
	MaxStack  int   // FOR and GOSUB stack depth
	MaxFiles  int   // open file handles, numbered 0..MaxFiles-1
	ZoneWidth int   // PRINT comma zone
	Seed      int64 // RND seed
}

// DefaultLimits are the classic table sizes
func DefaultLimits() Limits {
	return Limits{
		MaxLines:  program.MaxLines,
		MaxVars:   1024,
		MaxArrays: 128,
		MaxDims:   10,
		MaxStack:  256,
		MaxFiles:  16,
		ZoneWidth: 14,
		Seed:      37,
	}
}

// Environment is one interpreter session, everything a running
// program can see or change lives here
type Environment struct {
	ForLoops []ForFrame // any For Loops that are active
	gosubs   []int      // return line numbers for GOSUB/RETURN

	vars      map[string]*Variable
	varOrder  []string
	numArrays map[string]*NumArray
	strArrays map[string]*StrArray

	program *program.Store
	data    DataPool
	files   map[int]*OpenFile

	term    Console
	storage Storage
	opener  FileOpener
	limits  Limits

	rnd     *rand.Rand // random number generator
	traceOn bool       // is tracing turned on
	run     bool       // program is currently executing
	col     int        // console output column
}

// NewTermEnvironment creates a session with the default limits
func NewTermEnvironment(term Console) *Environment {
	return NewEnvironment(term, DefaultLimits())
}

// NewEnvironment creates a fresh session
func NewEnvironment(term Console, lim Limits) *Environment {
	def := DefaultLimits()
	if lim.MaxLines <= 0 {
		lim.MaxLines = def.MaxLines
	}
	if lim.MaxVars <= 0 {
		lim.MaxVars = def.MaxVars
	}
	if lim.MaxArrays <= 0 {
		lim.MaxArrays = def.MaxArrays
	}
	if lim.MaxDims <= 0 {
		lim.MaxDims = def.MaxDims
	}
	if lim.MaxStack <= 0 {
		lim.MaxStack = def.MaxStack
	}
	if lim.MaxFiles <= 0 {
		lim.MaxFiles = def.MaxFiles
	}
	if lim.ZoneWidth <= 0 {
		lim.ZoneWidth = def.ZoneWidth
	}

	e := &Environment{
		term:    term,
		limits:  lim,
		program: program.New(lim.MaxLines),
		files:   make(map[int]*OpenFile),
	}
	e.ClearVars()
	return e
}

// Terminal gives access to the console
func (e *Environment) Terminal() Console {
	return e.term
}

// SetTerminal swaps in a new console
func (e *Environment) SetTerminal(term Console) {
	e.term = term
}

// Limits reports the table sizes for this session
func (e *Environment) Limits() Limits {
	return e.limits
}

// Program returns the program store
func (e *Environment) Program() *program.Store {
	return e.program
}

// Data returns the DATA pool
func (e *Environment) Data() *DataPool {
	return &e.data
}

// SetStorage sets where SAVE/LOAD go
func (e *Environment) SetStorage(st Storage) {
	e.storage = st
}

// Storage returns the SAVE/LOAD collaborator, may be nil
func (e *Environment) Storage() Storage {
	return e.storage
}

// SetFileOpener sets who opens files for OPEN
func (e *Environment) SetFileOpener(fo FileOpener) {
	e.opener = fo
}

// FileOpener returns the OPEN collaborator, may be nil
func (e *Environment) FileOpener() FileOpener {
	return e.opener
}

// SetTrace turns tracing on or off
func (e *Environment) SetTrace(on bool) {
	e.traceOn = on
}

// GetTrace tells if tracing is on
func (e *Environment) GetTrace() bool {
	return e.traceOn
}

// SetRun marks a program as running, or not
func (e *Environment) SetRun(run bool) {
	e.run = run
}

// ProgramRunning is true while RUN is executing lines
func (e *Environment) ProgramRunning() bool {
	return e.run
}

// ConsoleColumn gives the formatter the console's output column
func (e *Environment) ConsoleColumn() *int {
	return &e.col
}

// Random returns the next value in [0,1), the generator is seeded
// the first time it is needed so runs are repeatable
func (e *Environment) Random() float64 {
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(e.limits.Seed))
	}
	return e.rnd.Float64()
}

// Randomize reseeds the generator
func (e *Environment) Randomize(seed int64) {
	e.rnd = rand.New(rand.NewSource(seed))
}

// New wipes the program, variables, stacks, data and open files
func (e *Environment) New() {
	e.program.Clear()
	e.ClearVars()
	e.ResetStacks()
	e.data = DataPool{}
	e.CloseAllFiles()
	e.run = false
}
