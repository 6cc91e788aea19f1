package popup

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNullArgument          = errors.New("required argument is nil")
	ErrUnregisteredViewModel = errors.New("view-model is not registered")
	ErrResolutionFailure     = errors.New("unable to resolve type")
	ErrTypeMismatch          = errors.New("unexpected binding context type")
	ErrNoActiveScreen        = errors.New("no active screen")
	ErrDuplicateRegistration = errors.New("view-model is already registered")
	ErrRegistrySealed        = errors.New("registry is sealed")
	ErrAbstractView          = errors.New("view type must be concrete")
	ErrAbstractViewModel     = errors.New("interface view-model needs a factory")
	ErrCanceled              = errors.New("popup request canceled")
)

func nullArgument(name string) error {
	return fmt.Errorf("%w: %s", ErrNullArgument, name)
}

// UnregisteredViewModelError names a view-model type with no paired view.
type UnregisteredViewModelError struct {
	ViewModel reflect.Type
}

func (e *UnregisteredViewModelError) Error() string {
	return fmt.Sprintf("unable to resolve popup type for %s: please make sure that you have called popup.Register", typeName(e.ViewModel))
}

func (e *UnregisteredViewModelError) Unwrap() error { return ErrUnregisteredViewModel }

// ResolutionError reports that the service provider could not build Type,
// or built something that is not usable as one.
type ResolutionError struct {
	Type      reflect.Type
	ViewModel reflect.Type
}

func (e *ResolutionError) Error() string {
	if e.ViewModel != nil && e.ViewModel != e.Type {
		return fmt.Sprintf("unable to resolve type %s for %s: please make sure that you have called popup.Register",
			typeName(e.Type), typeName(e.ViewModel))
	}
	return fmt.Sprintf("unable to resolve type %s: please make sure that you have called popup.Register", typeName(e.Type))
}

func (e *ResolutionError) Unwrap() error { return ErrResolutionFailure }

// TypeMismatchError reports a view whose binding context already holds a
// view-model of the wrong type.
type TypeMismatchError struct {
	View     reflect.Type
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("unexpected type has been assigned to the binding context of %s: expected type %s but was %s",
		typeName(e.View), typeName(e.Expected), typeName(e.Actual))
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
