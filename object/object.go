// Package object how the interpreter holds values and session state during execution
package object

import (
	"fmt"
	"strconv"
	"strings"
)

// BuiltinFunction is a function callable from a BASIC expression
type BuiltinFunction func(env *Environment, args ...Object) (Object, error)

// ObjectType can always be displayed as a string
type ObjectType string
type Object interface {
	Type() ObjectType
	Inspect() string
}

const (
	NUMBER_OBJ  = "NUMBER"
	STRING_OBJ  = "STRING"
	BUILTIN_OBJ = "BUILTIN"
)

// Number is the one numeric type, a double
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }

// Inspect renders the value the way PRINT does
func (n *Number) Inspect() string { return FormatNumber(n.Value) }

// String holds a byte string, it may contain any byte value
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }

// Builtin wraps a function with the number of arguments it will take
type Builtin struct {
	Fn      BuiltinFunction
	MinArgs int
	MaxArgs int
	Strs    []bool // which arguments want a string
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function" }

// FormatNumber gives the canonical text for a number, 15 significant digits
func FormatNumber(v float64) string {
	return fmt.Sprintf("%.15g", v)
}

// NumberOf coerces any value to a double
func NumberOf(obj Object) float64 {
	switch o := obj.(type) {
	case *Number:
		return o.Value
	case *String:
		return Atof(o.Value)
	}
	return 0
}

// TextOf gives the text for any value
func TextOf(obj Object) string {
	if obj == nil {
		return ""
	}
	return obj.Inspect()
}

// Atof converts the longest numeric prefix of s, after leading
// blanks, to a double. Text with no numeric prefix is zero.
func Atof(s string) float64 {
	s = strings.TrimLeft(s, " \t\r\n")

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	// an exponent only counts when digits follow it
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		// out of range still gives the signed infinity or zero
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return 0
	}
	return v
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
