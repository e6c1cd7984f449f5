package builtins

import (
	"math"
	"strings"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/object"
)

// Builtins is the fixed function table, keys are upper case names
var Builtins = map[string]*object.Builtin{
	"ABS":   mathFunc(math.Abs),
	"ATN":   mathFunc(math.Atan),
	"COS":   mathFunc(math.Cos),
	"EXP":   mathFunc(math.Exp),
	"INT":   mathFunc(math.Floor),
	"LOG":   mathFunc(math.Log),
	"LOG10": mathFunc(math.Log10),
	"SIN":   mathFunc(math.Sin),
	"SQR":   mathFunc(math.Sqrt),
	"TAN":   mathFunc(math.Tan),
	"SGN": mathFunc(func(v float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	}),
	"POW": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return num(math.Pow(object.NumberOf(args[0]), object.NumberOf(args[1]))), nil
		},
		MinArgs: 2,
		MaxArgs: 2,
	},
	"PI": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return num(math.Pi), nil
		},
	},
	// RND takes an optional argument and ignores it
	"RND": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return num(env.Random()), nil
		},
		MaxArgs: 1,
	},
	"EOF": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			of, err := env.GetFile(int(object.NumberOf(args[0])))
			if err != nil {
				return num(0), err
			}
			if of.File.EOF() {
				return num(1), nil
			}
			return num(0), nil
		},
		MinArgs: 1,
		MaxArgs: 1,
	},
	"LEN": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return num(float64(len(object.TextOf(args[0])))), nil
		},
		MinArgs: 1,
		MaxArgs: 1,
		Strs:    []bool{true},
	},
	// ASC of an empty string is zero
	"ASC": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			s := object.TextOf(args[0])
			if len(s) == 0 {
				return num(0), nil
			}
			return num(float64(s[0])), nil
		},
		MinArgs: 1,
		MaxArgs: 1,
		Strs:    []bool{true},
	},
	"VAL": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return num(object.Atof(object.TextOf(args[0]))), nil
		},
		MinArgs: 1,
		MaxArgs: 1,
		Strs:    []bool{true},
	},
	// CHR$ clamps to a byte, control codes below 32 give nothing
	"CHR$": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			code := int(object.NumberOf(args[0]))
			if code < 0 {
				code = 0
			}
			if code > 255 {
				code = 255
			}
			if code < 32 {
				return str(""), nil
			}
			return str(string([]byte{byte(code)})), nil
		},
		MinArgs: 1,
		MaxArgs: 1,
	},
	"STR$": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return str(object.FormatNumber(object.NumberOf(args[0]))), nil
		},
		MinArgs: 1,
		MaxArgs: 1,
	},
	// SEG$(s$, start[, len]) with a 1-based start, a missing or
	// non-positive length runs to the end of the string
	"SEG$": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			s := object.TextOf(args[0])
			start := 1
			if len(args) > 1 {
				start = int(object.NumberOf(args[1]))
			}
			ln := 0
			if len(args) > 2 {
				ln = int(object.NumberOf(args[2]))
			}
			return str(Seg(s, start, ln)), nil
		},
		MinArgs: 1,
		MaxArgs: 3,
		Strs:    []bool{true, false, false},
	},
	"TRM$": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return str(strings.TrimSpace(object.TextOf(args[0]))), nil
		},
		MinArgs: 1,
		MaxArgs: 1,
		Strs:    []bool{true},
	},
	// POS(haystack$, needle$) is the 1-based position of needle, or 0
	"POS": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return num(float64(strings.Index(object.TextOf(args[0]), object.TextOf(args[1])) + 1)), nil
		},
		MinArgs: 2,
		MaxArgs: 2,
		Strs:    []bool{true, true},
	},
}

// Lookup finds a function by its upper case name
func Lookup(name string) (*object.Builtin, bool) {
	fn, ok := Builtins[name]
	return fn, ok
}

// Call checks the argument count and runs the function
func Call(env *object.Environment, fn *object.Builtin, args ...object.Object) (object.Object, error) {
	if len(args) < fn.MinArgs || len(args) > fn.MaxArgs {
		return num(0), berrors.New(berrors.IllegalFuncCallErr, "")
	}
	return fn.Fn(env, args...)
}

// WantsString tells if argument i is a string
func WantsString(fn *object.Builtin, i int) bool {
	return i < len(fn.Strs) && fn.Strs[i]
}

// Seg is the substring rule of SEG$
func Seg(s string, start, ln int) string {
	i0 := start - 1
	if i0 < 0 {
		i0 = 0
	}
	if i0 > len(s) {
		i0 = len(s)
	}
	l := len(s) - i0
	if ln > 0 && ln < l {
		l = ln
	}
	return s[i0 : i0+l]
}

func mathFunc(fn func(float64) float64) *object.Builtin {
	return &object.Builtin{
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return num(fn(object.NumberOf(args[0]))), nil
		},
		MinArgs: 1,
		MaxArgs: 1,
	}
}

func num(v float64) object.Object {
	return &object.Number{Value: v}
}

func str(s string) object.Object {
	return &object.String{Value: s}
}
