package container

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrNilType          = errors.New("service type cannot be nil")
	ErrNotConstructible = errors.New("service type has no default constructor")
)

// Factory builds a fresh instance of a service.
type Factory func() any

// Container maps service types to transient factories.
type Container struct {
	mu        sync.RWMutex
	factories map[reflect.Type]Factory
}

// New returns an empty container.
func New() *Container {
	return &Container{factories: make(map[reflect.Type]Factory)}
}

// AddTransient registers t with factory f. A nil f installs the default
// constructor, which yields a zeroed value of t (for pointer types a pointer
// to a new zeroed struct). Re-registering t replaces the earlier factory.
func (c *Container) AddTransient(t reflect.Type, f func() any) error {
	if t == nil {
		return ErrNilType
	}
	factory := Factory(f)
	if factory == nil {
		def, err := defaultFactory(t)
		if err != nil {
			return err
		}
		factory = def
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[t] = factory
	return nil
}

// GetService runs the factory registered for t. It reports false when t is
// unknown or the factory returned nil.
func (c *Container) GetService(t reflect.Type) (any, bool) {
	c.mu.RLock()
	factory, ok := c.factories[t]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	v := factory()
	if isNil(v) {
		return nil, false
	}
	return v, true
}

func defaultFactory(t reflect.Type) (Factory, error) {
	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		return func() any { return reflect.New(elem).Interface() }, nil
	case reflect.Struct:
		return func() any { return reflect.New(t).Elem().Interface() }, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotConstructible, t)
	}
}

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
