package popup

import (
	"reflect"
)

// bindArguments makes sure view is bound to a VM and hands it args.
//
// An empty binding context gets a freshly resolved VM. A binding context of
// any other type is a TypeMismatchError and SetArguments is not called.
func bindArguments[VM ArgumentsViewModel](s *Service, view View, args Arguments) error {
	if isNil(view.BindingContext()) {
		vm, err := ResolveViewModel[VM](s)
		if err != nil {
			return err
		}
		view.SetBindingContext(vm)
	}

	vm, err := boundAs[VM](view)
	if err != nil {
		return err
	}
	vm.SetArguments(args)
	return nil
}

// attachViewModel binds the caller's vm to view. A view pre-bound to a
// compatible view-model is rebound to vm; an incompatible one is an error.
func attachViewModel[VM ViewModel](view View, vm VM) error {
	if !isNil(view.BindingContext()) {
		if _, err := boundAs[VM](view); err != nil {
			return err
		}
	}
	view.SetBindingContext(vm)
	return nil
}

// boundAs returns view's binding context as a VM, or a TypeMismatchError.
func boundAs[VM ViewModel](view View) (VM, error) {
	current := view.BindingContext()
	vm, ok := current.(VM)
	if !ok || isNil(current) {
		var zero VM
		return zero, &TypeMismatchError{
			View:     reflect.TypeOf(view),
			Expected: typeOf[VM](),
			Actual:   reflect.TypeOf(current),
		}
	}
	return vm, nil
}
