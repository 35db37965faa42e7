package builtins

import (
	"math"
	"math/rand"

	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

// registerMath installs the Math global: a plain object (not a
// constructor, not a prototype) exposing the standard numeric constants
// and unary/binary functions over math/rand and math.
func registerMath(vm *interp.Interp) {
	m := object.New(vm.Proto.Object)
	vm.Heap.Track(m, 0)
	vm.Global.Define("Math", object.Obj(m), object.DONTENUM)

	m.Define("PI", object.Num(math.Pi), object.READONLY|object.DONTENUM|object.DONTDELETE)
	m.Define("E", object.Num(math.E), object.READONLY|object.DONTENUM|object.DONTDELETE)
	m.Define("LN2", object.Num(math.Ln2), object.READONLY|object.DONTENUM|object.DONTDELETE)
	m.Define("LN10", object.Num(math.Log(10)), object.READONLY|object.DONTENUM|object.DONTDELETE)
	m.Define("LOG2E", object.Num(1/math.Ln2), object.READONLY|object.DONTENUM|object.DONTDELETE)
	m.Define("LOG10E", object.Num(1/math.Log(10)), object.READONLY|object.DONTENUM|object.DONTDELETE)
	m.Define("SQRT2", object.Num(math.Sqrt2), object.READONLY|object.DONTENUM|object.DONTDELETE)
	m.Define("SQRT1_2", object.Num(math.Sqrt(0.5)), object.READONLY|object.DONTENUM|object.DONTDELETE)

	unary := func(name string, fn func(float64) float64) {
		native(vm, m, name, 1, func(this object.Value, args []object.Value) (object.Value, error) {
			n, err := reqNumber(vm, args, 0)
			if err != nil {
				return object.Undefined, err
			}
			return object.Num(fn(n)), nil
		})
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("trunc", math.Trunc)
	unary("sqrt", math.Sqrt)
	unary("cbrt", math.Cbrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
	unary("sinh", math.Sinh)
	unary("cosh", math.Cosh)
	unary("tanh", math.Tanh)
	unary("log", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("exp", math.Exp)
	unary("round", func(n float64) float64 {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return n
		}
		return math.Floor(n + 0.5)
	})
	unary("sign", func(n float64) float64 {
		switch {
		case math.IsNaN(n):
			return math.NaN()
		case n > 0:
			return 1
		case n < 0:
			return -1
		default:
			return n
		}
	})

	native(vm, m, "pow", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		base, err := reqNumber(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		exp, err := reqNumber(vm, args, 1)
		if err != nil {
			return object.Undefined, err
		}
		return object.Num(math.Pow(base, exp)), nil
	})
	native(vm, m, "atan2", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		y, err := reqNumber(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		x, err := reqNumber(vm, args, 1)
		if err != nil {
			return object.Undefined, err
		}
		return object.Num(math.Atan2(y, x)), nil
	})
	native(vm, m, "min", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		return mathExtreme(vm, args, math.Inf(1), math.Min)
	})
	native(vm, m, "max", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		return mathExtreme(vm, args, math.Inf(-1), math.Max)
	})
	native(vm, m, "random", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		return object.Num(rand.Float64()), nil
	})
}

func mathExtreme(vm *interp.Interp, args []object.Value, ident float64, combine func(a, b float64) float64) (object.Value, error) {
	acc := ident
	for _, a := range args {
		n, err := toNum(vm, a)
		if err != nil {
			return object.Undefined, err
		}
		if math.IsNaN(n) {
			return object.Num(math.NaN()), nil
		}
		acc = combine(acc, n)
	}
	return object.Num(acc), nil
}
