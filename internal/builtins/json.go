package builtins

import (
	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/jsonvalue"
	"github.com/ppyne/protoscript/internal/object"
)

// registerJSON installs the JSON global with parse/stringify, delegating
// the actual codec work to internal/jsonvalue, which operates directly on
// object.Value/object.Object via the Interp's Caller/heap-tracking surface.
func registerJSON(vm *interp.Interp) {
	j := object.New(vm.Proto.Object)
	vm.Heap.Track(j, 0)
	vm.Global.Define("JSON", object.Obj(j), object.DONTENUM)

	native(vm, j, "parse", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		text, err := reqString(vm, args, 0)
		if err != nil {
			return object.Undefined, err
		}
		v, err := jsonvalue.Parse(vm, text)
		if err != nil {
			return object.Undefined, typeErr("%s", err.Error())
		}
		reviver := argOr(args, 1)
		if object.IsCallable(reviver) {
			v, err = jsonvalue.Revive(vm, v, reviver)
			if err != nil {
				return object.Undefined, err
			}
		}
		return v, nil
	})
	native(vm, j, "stringify", 3, func(this object.Value, args []object.Value) (object.Value, error) {
		indent, err := stringifySpace(vm, argOr(args, 2))
		if err != nil {
			return object.Undefined, err
		}
		s, ok, err := jsonvalue.Stringify(vm, argOr(args, 0), argOr(args, 1), indent)
		if err != nil {
			return object.Undefined, typeErr("%s", err.Error())
		}
		if !ok {
			return object.Undefined, nil
		}
		return object.Str(s), nil
	})
}

func stringifySpace(vm *interp.Interp, v object.Value) (string, error) {
	if v.IsUndefined() {
		return "", nil
	}
	if v.Kind() == object.NumberKind {
		n := int(v.Number())
		if n < 0 {
			n = 0
		}
		if n > 10 {
			n = 10
		}
		out := ""
		for i := 0; i < n; i++ {
			out += " "
		}
		return out, nil
	}
	if v.Kind() == object.StringKind {
		s := v.String()
		if len(s) > 10 {
			s = s[:10]
		}
		return s, nil
	}
	return "", nil
}
