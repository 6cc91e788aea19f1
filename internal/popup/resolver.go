package popup

import (
	"reflect"
)

// ServiceProvider is the read side of the DI collaborator.
type ServiceProvider interface {
	GetService(t reflect.Type) (any, bool)
}

// ResolveView builds a fresh view for vmType.
func (s *Service) ResolveView(vmType reflect.Type) (View, error) {
	viewType, ok := s.registry.Lookup(vmType)
	if !ok {
		return nil, &UnregisteredViewModelError{ViewModel: vmType}
	}

	v, ok := s.services.GetService(viewType)
	if !ok || isNil(v) {
		return nil, &ResolutionError{Type: viewType, ViewModel: vmType}
	}
	view, ok := v.(View)
	if !ok {
		return nil, &ResolutionError{Type: viewType, ViewModel: vmType}
	}
	return view, nil
}

// ResolveViewModel builds a fresh VM. VM must have been registered.
func ResolveViewModel[VM ViewModel](s *Service) (VM, error) {
	var zero VM
	vmType := typeOf[VM]()
	if _, ok := s.registry.Lookup(vmType); !ok {
		return zero, &UnregisteredViewModelError{ViewModel: vmType}
	}

	v, ok := s.services.GetService(vmType)
	if !ok || isNil(v) {
		return zero, &ResolutionError{Type: vmType}
	}
	vm, ok := v.(VM)
	if !ok {
		return zero, &ResolutionError{Type: vmType}
	}
	return vm, nil
}

// isNil reports true for nil interfaces and typed nil pointers, maps,
// slices, funcs and channels.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
