package builtins

import (
	"sort"
	"strings"

	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
	"github.com/ppyne/protoscript/internal/token"
)

func thisArray(this object.Value) (*object.Object, bool) {
	if this.IsObject() && this.Object().Kind == object.ArrayKind {
		return this.Object(), true
	}
	return nil, false
}

func registerArrayPrototype(vm *interp.Interp) {
	proto := vm.Proto.Array

	native(vm, proto, "push", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return object.Undefined, typeErr("Array.prototype.push called on non-array")
		}
		for _, a := range args {
			arr.Push(a)
		}
		return object.Num(float64(arr.Length())), nil
	})
	native(vm, proto, "pop", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok || arr.Length() == 0 {
			return object.Undefined, nil
		}
		n := arr.Length() - 1
		v, _ := arr.GetIndex(n)
		arr.SetLength(float64(n))
		return v, nil
	})
	native(vm, proto, "shift", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok || arr.Length() == 0 {
			return object.Undefined, nil
		}
		first, _ := arr.GetIndex(0)
		n := arr.Length()
		for i := 1; i < n; i++ {
			v, _ := arr.GetIndex(i)
			arr.SetIndex(i-1, v)
		}
		arr.SetLength(float64(n - 1))
		return first, nil
	})
	native(vm, proto, "unshift", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return object.Undefined, typeErr("Array.prototype.unshift called on non-array")
		}
		n := arr.Length()
		shift := len(args)
		for i := n - 1; i >= 0; i-- {
			v, _ := arr.GetIndex(i)
			arr.SetIndex(i+shift, v)
		}
		for i, a := range args {
			arr.SetIndex(i, a)
		}
		return object.Num(float64(arr.Length())), nil
	})
	native(vm, proto, "slice", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		out := object.NewArray(vm.Proto.Array)
		vm.Heap.Track(out, 0)
		if !ok {
			return object.Obj(out), nil
		}
		n := arr.Length()
		start, end, err := sliceBounds(vm, args, n)
		if err != nil {
			return object.Undefined, err
		}
		for i := start; i < end; i++ {
			v, present := arr.GetIndex(i)
			if present {
				out.Push(v)
			} else {
				out.Push(object.Undefined)
			}
		}
		return object.Obj(out), nil
	})
	native(vm, proto, "splice", 2, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		removed := object.NewArray(vm.Proto.Array)
		vm.Heap.Track(removed, 0)
		if !ok {
			return object.Obj(removed), nil
		}
		n := arr.Length()
		start := 0
		if len(args) > 0 {
			s, err := toNum(vm, args[0])
			if err != nil {
				return object.Undefined, err
			}
			start = normalizeIndex(int(s), n)
		}
		deleteCount := n - start
		if len(args) > 1 {
			d, err := toNum(vm, args[1])
			if err != nil {
				return object.Undefined, err
			}
			deleteCount = int(d)
			if deleteCount < 0 {
				deleteCount = 0
			}
			if start+deleteCount > n {
				deleteCount = n - start
			}
		}
		var inserts []object.Value
		if len(args) > 2 {
			inserts = args[2:]
		}
		for i := 0; i < deleteCount; i++ {
			v, _ := arr.GetIndex(start + i)
			removed.Push(v)
		}
		tail := make([]object.Value, 0, n-start-deleteCount)
		for i := start + deleteCount; i < n; i++ {
			v, _ := arr.GetIndex(i)
			tail = append(tail, v)
		}
		w := start
		for _, v := range inserts {
			arr.SetIndex(w, v)
			w++
		}
		for _, v := range tail {
			arr.SetIndex(w, v)
			w++
		}
		arr.SetLength(float64(w))
		return object.Obj(removed), nil
	})
	native(vm, proto, "concat", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		out := object.NewArray(vm.Proto.Array)
		vm.Heap.Track(out, 0)
		arr, ok := thisArray(this)
		if ok {
			for i := 0; i < arr.Length(); i++ {
				v, _ := arr.GetIndex(i)
				out.Push(v)
			}
		}
		for _, a := range args {
			if a.IsObject() && a.Object().Kind == object.ArrayKind {
				other := a.Object()
				for i := 0; i < other.Length(); i++ {
					v, _ := other.GetIndex(i)
					out.Push(v)
				}
			} else {
				out.Push(a)
			}
		}
		return object.Obj(out), nil
	})
	native(vm, proto, "join", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return object.Str(""), nil
		}
		sep := ","
		if len(args) > 0 && !args[0].IsUndefined() {
			s, err := toStr(vm, args[0])
			if err != nil {
				return object.Undefined, err
			}
			sep = s
		}
		parts := make([]string, arr.Length())
		for i := range parts {
			v, present := arr.GetIndex(i)
			if !present || v.IsUndefined() || v.IsNull() {
				parts[i] = ""
				continue
			}
			s, err := toStr(vm, v)
			if err != nil {
				return object.Undefined, err
			}
			parts[i] = s
		}
		return object.Str(strings.Join(parts, sep)), nil
	})
	native(vm, proto, "toString", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return object.Str(""), nil
		}
		parts := make([]string, arr.Length())
		for i := range parts {
			v, present := arr.GetIndex(i)
			if !present || v.IsUndefined() || v.IsNull() {
				continue
			}
			s, err := toStr(vm, v)
			if err != nil {
				return object.Undefined, err
			}
			parts[i] = s
		}
		return object.Str(strings.Join(parts, ",")), nil
	})
	native(vm, proto, "indexOf", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return object.Num(-1), nil
		}
		target := argOr(args, 0)
		for i := 0; i < arr.Length(); i++ {
			v, present := arr.GetIndex(i)
			if present && object.StrictEquals(v, target) {
				return object.Num(float64(i)), nil
			}
		}
		return object.Num(-1), nil
	})
	native(vm, proto, "reverse", 0, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return this, nil
		}
		n := arr.Length()
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			vi, _ := arr.GetIndex(i)
			vj, _ := arr.GetIndex(j)
			arr.SetIndex(i, vj)
			arr.SetIndex(j, vi)
		}
		return this, nil
	})
	native(vm, proto, "sort", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return this, nil
		}
		n := arr.Length()
		vals := make([]object.Value, n)
		for i := range vals {
			vals[i], _ = arr.GetIndex(i)
		}
		var cmp object.NativeFunc
		if len(args) > 0 && object.IsCallable(args[0]) {
			fn := args[0].Object()
			cmp = func(_ object.Value, cargs []object.Value) (object.Value, error) {
				v, c := vm.CallFunction(fn, object.Undefined, cargs, token.Position{})
				return nativeResult(vm, v, c)
			}
		}
		var sortErr error
		sort.SliceStable(vals, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			if cmp != nil {
				r, err := cmp(object.Undefined, []object.Value{vals[i], vals[j]})
				if err != nil {
					sortErr = err
					return false
				}
				n, _ := toNum(vm, r)
				return n < 0
			}
			si, _ := toStr(vm, vals[i])
			sj, _ := toStr(vm, vals[j])
			return si < sj
		})
		if sortErr != nil {
			return object.Undefined, sortErr
		}
		for i, v := range vals {
			arr.SetIndex(i, v)
		}
		return this, nil
	})
	native(vm, proto, "forEach", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		return arrayIterate(vm, this, args, func(v object.Value, i int) (bool, error) {
			_, err := arrayCall(vm, args, v, i, this)
			return true, err
		})
	})
	native(vm, proto, "map", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		out := object.NewArray(vm.Proto.Array)
		vm.Heap.Track(out, 0)
		_, err := arrayIterate(vm, this, args, func(v object.Value, i int) (bool, error) {
			r, err := arrayCall(vm, args, v, i, this)
			if err != nil {
				return false, err
			}
			out.Push(r)
			return true, nil
		})
		if err != nil {
			return object.Undefined, err
		}
		return object.Obj(out), nil
	})
	native(vm, proto, "filter", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		out := object.NewArray(vm.Proto.Array)
		vm.Heap.Track(out, 0)
		_, err := arrayIterate(vm, this, args, func(v object.Value, i int) (bool, error) {
			r, err := arrayCall(vm, args, v, i, this)
			if err != nil {
				return false, err
			}
			if r.ToBoolean() {
				out.Push(v)
			}
			return true, nil
		})
		if err != nil {
			return object.Undefined, err
		}
		return object.Obj(out), nil
	})
	native(vm, proto, "reduce", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arr, ok := thisArray(this)
		if !ok {
			return object.Undefined, typeErr("Array.prototype.reduce called on non-array")
		}
		if len(args) == 0 || !object.IsCallable(args[0]) {
			return object.Undefined, typeErr("reduce callback is not a function")
		}
		fn := args[0].Object()
		var acc object.Value
		start := 0
		if len(args) > 1 {
			acc = args[1]
		} else {
			if arr.Length() == 0 {
				return object.Undefined, typeErr("Reduce of empty array with no initial value")
			}
			acc, _ = arr.GetIndex(0)
			start = 1
		}
		for i := start; i < arr.Length(); i++ {
			v, present := arr.GetIndex(i)
			if !present {
				continue
			}
			r, c := vm.CallFunction(fn, object.Undefined, []object.Value{acc, v, object.Num(float64(i)), this}, token.Position{})
			res, err := nativeResult(vm, r, c)
			if err != nil {
				return object.Undefined, err
			}
			acc = res
		}
		return acc, nil
	})
}

func sliceBounds(vm *interp.Interp, args []object.Value, n int) (int, int, error) {
	start, end := 0, n
	if len(args) > 0 && !args[0].IsUndefined() {
		s, err := toNum(vm, args[0])
		if err != nil {
			return 0, 0, err
		}
		start = normalizeIndex(int(s), n)
	}
	if len(args) > 1 && !args[1].IsUndefined() {
		e, err := toNum(vm, args[1])
		if err != nil {
			return 0, 0, err
		}
		end = normalizeIndex(int(e), n)
	}
	if end < start {
		end = start
	}
	return start, end, nil
}

func normalizeIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	return i
}

func arrayIterate(vm *interp.Interp, this object.Value, args []object.Value, step func(v object.Value, i int) (bool, error)) (object.Value, error) {
	arr, ok := thisArray(this)
	if !ok {
		return object.Undefined, typeErr("array iteration method called on non-array")
	}
	if len(args) == 0 || !object.IsCallable(args[0]) {
		return object.Undefined, typeErr("callback is not a function")
	}
	for i := 0; i < arr.Length(); i++ {
		v, present := arr.GetIndex(i)
		if !present {
			continue
		}
		if more, err := step(v, i); err != nil || !more {
			return object.Undefined, err
		}
	}
	return object.Undefined, nil
}

func arrayCall(vm *interp.Interp, args []object.Value, v object.Value, i int, arrVal object.Value) (object.Value, error) {
	fn := args[0].Object()
	var thisArg object.Value = object.Undefined
	if len(args) > 1 {
		thisArg = args[1]
	}
	r, c := vm.CallFunction(fn, thisArg, []object.Value{v, object.Num(float64(i)), arrVal}, token.Position{})
	return nativeResult(vm, r, c)
}

func registerArrayConstructor(vm *interp.Interp) {
	ctor := constructor(vm, "Array", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arr := object.NewArray(vm.Proto.Array)
		vm.Heap.Track(arr, int64(len(args)*16))
		if len(args) == 1 && args[0].Kind() == object.NumberKind {
			if err := arr.SetLength(args[0].Number()); err != nil {
				return object.Undefined, err
			}
			return object.Obj(arr), nil
		}
		for i, a := range args {
			arr.SetIndex(i, a)
		}
		return object.Obj(arr), nil
	}, vm.Proto.Array)
	native(vm, ctor, "isArray", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		arg := argOr(args, 0)
		return object.Bool(arg.IsObject() && arg.Object().Kind == object.ArrayKind), nil
	})
}
