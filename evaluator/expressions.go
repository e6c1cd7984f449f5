package evaluator

import (
	"math"

	"github.com/navionguy/linebasic/berrors"
	"github.com/navionguy/linebasic/builtins"
	"github.com/navionguy/linebasic/lexer"
	"github.com/navionguy/linebasic/object"
	"github.com/navionguy/linebasic/token"
)

// Eval reads one complete expression from lx and gives its numeric value.
// On error the value is zero.
func Eval(lx lexer.TokenSource, env *object.Environment) (float64, error) {
	v, err := evalLogical(lx, env)
	if err != nil {
		return 0, err
	}
	return object.NumberOf(v), nil
}

// EvalValue is Eval that lets a string result stay a string
func EvalValue(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	return evalLogical(lx, env)
}

// AND, OR and XOR combine the integer parts bitwise and then
// collapse the result to 1 or 0
func evalLogical(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	left, err := evalRelational(lx, env)
	if err != nil {
		return left, err
	}

	for {
		op := lx.Current().Type
		if op != token.AND && op != token.OR && op != token.XOR {
			return left, nil
		}
		lx.Advance()

		right, err := evalRelational(lx, env)
		if err != nil {
			return zero(), err
		}

		a := int64(object.NumberOf(left))
		b := int64(object.NumberOf(right))
		var r int64
		switch op {
		case token.AND:
			r = a & b
		case token.OR:
			r = a | b
		case token.XOR:
			r = a ^ b
		}
		left = truth(r != 0)
	}
}

// one comparison at most, two strings compare as text
func evalRelational(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	left, err := evalAdditive(lx, env)
	if err != nil {
		return left, err
	}

	op := lx.Current().Type
	switch op {
	case token.ASSIGN, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE:
	default:
		return left, nil
	}
	lx.Advance()

	right, err := evalAdditive(lx, env)
	if err != nil {
		return zero(), err
	}

	ls, lok := left.(*object.String)
	rs, rok := right.(*object.String)
	if lok && rok {
		return truth(compare(op, compareStrings(ls.Value, rs.Value))), nil
	}

	a := object.NumberOf(left)
	b := object.NumberOf(right)
	switch op {
	case token.ASSIGN:
		return truth(a == b), nil
	case token.NOT_EQ:
		return truth(a != b), nil
	case token.LT:
		return truth(a < b), nil
	case token.GT:
		return truth(a > b), nil
	case token.LTE:
		return truth(a <= b), nil
	}
	return truth(a >= b), nil
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compare(op token.TokenType, c int) bool {
	switch op {
	case token.ASSIGN:
		return c == 0
	case token.NOT_EQ:
		return c != 0
	case token.LT:
		return c < 0
	case token.GT:
		return c > 0
	case token.LTE:
		return c <= 0
	}
	return c >= 0
}

func evalAdditive(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	left, err := evalTerm(lx, env)
	if err != nil {
		return left, err
	}

	for {
		op := lx.Current().Type
		if op != token.PLUS && op != token.MINUS {
			return left, nil
		}
		lx.Advance()

		right, err := evalTerm(lx, env)
		if err != nil {
			return zero(), err
		}
		if op == token.PLUS {
			left = num(object.NumberOf(left) + object.NumberOf(right))
		} else {
			left = num(object.NumberOf(left) - object.NumberOf(right))
		}
	}
}

// division by zero follows IEEE, giving an infinity or NaN
func evalTerm(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	left, err := evalPower(lx, env)
	if err != nil {
		return left, err
	}

	for {
		op := lx.Current().Type
		if op != token.ASTERISK && op != token.SLASH {
			return left, nil
		}
		lx.Advance()

		right, err := evalPower(lx, env)
		if err != nil {
			return zero(), err
		}
		if op == token.ASTERISK {
			left = num(object.NumberOf(left) * object.NumberOf(right))
		} else {
			left = num(object.NumberOf(left) / object.NumberOf(right))
		}
	}
}

// ^ is right associative, 2^3^2 is 2^9
func evalPower(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	base, err := evalUnary(lx, env)
	if err != nil || lx.Current().Type != token.CARAT {
		return base, err
	}
	lx.Advance()

	exp, err := evalPower(lx, env)
	if err != nil {
		return zero(), err
	}
	return num(math.Pow(object.NumberOf(base), object.NumberOf(exp))), nil
}

// unary operators bind tighter than anything else, so -2^2 is 4.
// NOT gives the bitwise complement, NOT 0 is -1.
func evalUnary(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	switch lx.Current().Type {
	case token.MINUS:
		lx.Advance()
		v, err := evalUnary(lx, env)
		return num(-object.NumberOf(v)), err
	case token.PLUS:
		lx.Advance()
		v, err := evalUnary(lx, env)
		return num(object.NumberOf(v)), err
	case token.NOT:
		lx.Advance()
		v, err := evalUnary(lx, env)
		return num(float64(^int64(object.NumberOf(v)))), err
	}
	return evalPrimary(lx, env)
}

func evalPrimary(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	tok := lx.Current()

	switch tok.Type {
	case token.NUMBER:
		lx.Advance()
		return num(tok.Number), nil
	case token.STRING:
		lx.Advance()
		return &object.String{Value: tok.Literal}, nil
	case token.LPAREN:
		lx.Advance()
		v, err := evalLogical(lx, env)
		if err != nil {
			return zero(), err
		}
		// a missing ')' at the end is forgiven
		if lx.Current().Type == token.RPAREN {
			lx.Advance()
		}
		return v, nil
	case token.IDENT:
		return evalIdentifier(lx, env)
	}

	return zero(), berrors.New(berrors.Syntax, "")
}

// an identifier is a function call, an array element or a scalar, tried in that order
func evalIdentifier(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	name := lx.Current().Literal
	lx.Advance()

	if fn, ok := builtins.Lookup(token.Upper(name)); ok {
		return evalFunctionCall(lx, env, fn)
	}

	if lx.Current().Type == token.LPAREN {
		subs, err := evalSubscripts(lx, env)
		if err != nil {
			return zeroFor(name), err
		}
		return env.GetElement(name, subs)
	}

	if v := env.Get(name); v != nil {
		return v.Value(), nil
	}
	return zeroFor(name), nil
}

func evalFunctionCall(lx lexer.TokenSource, env *object.Environment, fn *object.Builtin) (object.Object, error) {
	var args []object.Object

	if lx.Current().Type != token.LPAREN {
		if fn.MinArgs > 0 {
			return zero(), berrors.New(berrors.Syntax, "")
		}
		return builtins.Call(env, fn)
	}
	lx.Advance()

	if lx.Current().Type != token.RPAREN {
		for {
			var arg object.Object
			var err error
			if builtins.WantsString(fn, len(args)) {
				arg, err = evalConcat(lx, env)
			} else {
				arg, err = evalLogical(lx, env)
			}
			if err != nil {
				return zero(), err
			}
			args = append(args, arg)

			if lx.Current().Type != token.COMMA {
				break
			}
			lx.Advance()
		}
	}

	if lx.Current().Type != token.RPAREN {
		return zero(), berrors.New(berrors.Syntax, "")
	}
	lx.Advance()

	return builtins.Call(env, fn, args...)
}

// evalSubscripts reads "(e1, e2, ...)", each value truncated to an integer
func evalSubscripts(lx lexer.TokenSource, env *object.Environment) ([]int, error) {
	if lx.Current().Type != token.LPAREN {
		return nil, berrors.New(berrors.Syntax, "")
	}
	lx.Advance()

	var subs []int
	for {
		v, err := Eval(lx, env)
		if err != nil {
			return nil, err
		}
		subs = append(subs, int(v))

		if lx.Current().Type != token.COMMA {
			break
		}
		lx.Advance()
	}

	if lx.Current().Type != token.RPAREN {
		return nil, berrors.New(berrors.Syntax, "")
	}
	lx.Advance()

	if len(subs) > env.Limits().MaxDims {
		return nil, berrors.New(berrors.TooManySubscripts, "")
	}
	return subs, nil
}

// evalStringTerm reads one item that may be a string. A literal or a
// name ending in '$' gives a string, anything else is an expression.
func evalStringTerm(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	tok := lx.Current()

	switch {
	case tok.Type == token.STRING:
		lx.Advance()
		return &object.String{Value: tok.Literal}, nil
	case tok.Type == token.IDENT && object.IsStringName(tok.Literal):
		return evalIdentifier(lx, env)
	}
	return evalLogical(lx, env)
}

// evalConcat joins terms with '+'. If either side is a string the bytes
// are concatenated, otherwise the two numbers are added.
func evalConcat(lx lexer.TokenSource, env *object.Environment) (object.Object, error) {
	left, err := evalStringTerm(lx, env)
	if err != nil {
		return left, err
	}

	for lx.Current().Type == token.PLUS {
		lx.Advance()
		right, err := evalStringTerm(lx, env)
		if err != nil {
			return left, err
		}

		_, ls := left.(*object.String)
		_, rs := right.(*object.String)
		if ls || rs {
			left = &object.String{Value: object.TextOf(left) + object.TextOf(right)}
		} else {
			left = num(object.NumberOf(left) + object.NumberOf(right))
		}
	}

	return left, nil
}

func num(v float64) object.Object {
	return &object.Number{Value: v}
}

func zero() object.Object {
	return num(0)
}

func zeroFor(name string) object.Object {
	if object.IsStringName(name) {
		return &object.String{}
	}
	return zero()
}

func truth(b bool) object.Object {
	if b {
		return num(1)
	}
	return num(0)
}
