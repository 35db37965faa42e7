package builtins

import (
	"fmt"

	"github.com/ppyne/protoscript/internal/interp"
	"github.com/ppyne/protoscript/internal/object"
)

// registerIO installs the host-facing print/println globals: arguments
// are stringified with ToString (invoking user toString/valueOf methods)
// and written to vm.Output. If vm.Output is nil, calls are silently
// discarded, so embedding code that never wires an output sink still
// runs scripts without a panic.
func registerIO(vm *interp.Interp) {
	write := func(args []object.Value, newline bool) (object.Value, error) {
		if vm.Output == nil {
			return object.Undefined, nil
		}
		for _, a := range args {
			s, err := toStr(vm, a)
			if err != nil {
				return object.Undefined, err
			}
			fmt.Fprint(vm.Output, s)
		}
		if newline {
			fmt.Fprintln(vm.Output)
		}
		return object.Undefined, nil
	}
	native(vm, vm.Global, "print", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		return write(args, false)
	})
	native(vm, vm.Global, "println", 1, func(this object.Value, args []object.Value) (object.Value, error) {
		return write(args, true)
	})
}
