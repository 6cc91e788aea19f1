// Package container is a minimal dependency-injection container with
// transient lifetimes only: every GetService call runs the registered
// factory again, so no instance is ever shared between callers.
//
// Registration is keyed by reflect.Type and is expected to happen during
// start-up. Lookups are safe for concurrent use.
//
//	c := container.New()
//	_ = c.AddTransient(reflect.TypeOf(&GreetingViewModel{}), nil)
//	vm, ok := c.GetService(reflect.TypeOf(&GreetingViewModel{}))
package container
