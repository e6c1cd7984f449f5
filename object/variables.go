package object

import (
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/token"
)

// VarKind tells numeric and string variables apart
type VarKind int

const (
	NumVar VarKind = iota
	StrVar
)

func (vk VarKind) String() string {
	if vk == StrVar {
		return "S"
	}
	return "N"
}

// Variable is a named scalar
type Variable struct {
	Name string // as first written, lookups ignore case
	Kind VarKind
	Num  float64
	Str  string
}

// Value gives the variable as an Object
func (v *Variable) Value() Object {
	if v.Kind == StrVar {
		return &String{Value: v.Str}
	}
	return &Number{Value: v.Num}
}

// IsStringName is true for names ending in '$'
func IsStringName(name string) bool {
	return strings.HasSuffix(name, "$")
}

// ClearVars forgets every variable and array
func (e *Environment) ClearVars() {
	e.vars = make(map[string]*Variable)
	e.varOrder = nil
	e.numArrays = make(map[string]*NumArray)
	e.strArrays = make(map[string]*StrArray)
}

// ClearScalars forgets the variables but keeps the arrays
func (e *Environment) ClearScalars() {
	e.vars = make(map[string]*Variable)
	e.varOrder = nil
}

// Get attempts to retrieve a variable, nil if not found
func (e *Environment) Get(name string) *Variable {
	return e.vars[token.Upper(name)]
}

// GetNum reads a scalar as a number, unknown names are zero
func (e *Environment) GetNum(name string) float64 {
	v := e.Get(name)
	if v == nil {
		return 0
	}
	if v.Kind == StrVar {
		return Atof(v.Str)
	}
	return v.Num
}

// GetStr reads a scalar as text, unknown names are empty
func (e *Environment) GetStr(name string) string {
	v := e.Get(name)
	if v == nil {
		return ""
	}
	if v.Kind == NumVar {
		return FormatNumber(v.Num)
	}
	return v.Str
}

// SetNum stores a number, the variable becomes numeric
func (e *Environment) SetNum(name string, val float64) error {
	v, err := e.ensureVar(name)
	if err != nil {
		return err
	}
	v.Kind = NumVar
	v.Num = val
	v.Str = ""
	return nil
}

// SetStr stores a copy of the text, the variable becomes a string
func (e *Environment) SetStr(name string, val string) error {
	v, err := e.ensureVar(name)
	if err != nil {
		return err
	}
	v.Kind = StrVar
	v.Str = val
	v.Num = 0
	return nil
}

// Set stores any value
func (e *Environment) Set(name string, val Object) error {
	if s, ok := val.(*String); ok {
		return e.SetStr(name, s.Value)
	}
	return e.SetNum(name, NumberOf(val))
}

func (e *Environment) ensureVar(name string) (*Variable, error) {
	key := token.Upper(name)
	if v, ok := e.vars[key]; ok {
		return v, nil
	}
	if len(e.vars) >= e.limits.MaxVars {
		return nil, berrors.New(berrors.TableFull, "")
	}
	v := &Variable{Name: name}
	e.vars[key] = v
	e.varOrder = append(e.varOrder, key)
	return v, nil
}

// Variables lists the scalars in the order they were created
func (e *Environment) Variables() []Variable {
	vars := make([]Variable, 0, len(e.varOrder))
	for _, k := range e.varOrder {
		vars = append(vars, *e.vars[k])
	}
	return vars
}
