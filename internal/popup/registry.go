package popup

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/zjrosen/poptart/internal/log"
)

// ServiceCollection is the write side of the DI collaborator.
type ServiceCollection interface {
	// AddTransient makes t resolvable, building a new instance per request.
	// A nil factory asks for the collaborator's default constructor.
	AddTransient(t reflect.Type, factory func() any) error
}

// Entry is one view-model → view pairing.
type Entry struct {
	ViewModel reflect.Type
	View      reflect.Type
}

// Registry maps view-model types to view types.
//
// It has one writer phase followed by a read-only phase: register every
// pairing during start-up, then call Seal. Lookups are safe for concurrent
// use at any time.
type Registry struct {
	mu     sync.RWMutex
	views  map[reflect.Type]reflect.Type
	sealed bool
}

// NewRegistry returns an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{views: make(map[reflect.Type]reflect.Type)}
}

// Register pairs view-model VM with view V and registers both with services
// as transient. Nil factories fall back to the collaborator's default
// constructor.
//
// Registering the same VM twice fails with ErrDuplicateRegistration, and
// registering after Seal fails with ErrRegistrySealed. An interface VM needs
// a factory. If services rejects the view-model after accepting the view,
// the view factory stays with services but no pairing is recorded, so the
// registry never resolves it.
func Register[VM ViewModel, V View](r *Registry, services ServiceCollection, newView func() V, newViewModel func() VM) error {
	vmType, viewType := typeOf[VM](), typeOf[V]()
	if viewType.Kind() == reflect.Interface {
		return fmt.Errorf("%w: %s", ErrAbstractView, viewType)
	}
	if vmType.Kind() == reflect.Interface && newViewModel == nil {
		return fmt.Errorf("%w: %s", ErrAbstractViewModel, vmType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrySealed, vmType)
	}
	if existing, ok := r.views[vmType]; ok {
		return fmt.Errorf("%w: %s is paired with %s", ErrDuplicateRegistration, vmType, existing)
	}

	var viewFactory, vmFactory func() any
	if newView != nil {
		viewFactory = func() any { return newView() }
	}
	if newViewModel != nil {
		vmFactory = func() any { return newViewModel() }
	}
	if err := services.AddTransient(viewType, viewFactory); err != nil {
		return fmt.Errorf("registering view %s: %w", viewType, err)
	}
	if err := services.AddTransient(vmType, vmFactory); err != nil {
		return fmt.Errorf("registering view-model %s: %w", vmType, err)
	}

	r.views[vmType] = viewType
	log.Debug(log.CatRegistry, "registered popup", "view_model", vmType, "view", viewType)
	return nil
}

// Lookup returns the view type paired with vmType.
func (r *Registry) Lookup(vmType reflect.Type) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[vmType]
	return v, ok
}

// Entries returns every pairing sorted by view-model type name.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	entries := make([]Entry, 0, len(r.views))
	for vm, v := range r.views {
		entries = append(entries, Entry{ViewModel: vm, View: v})
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ViewModel.String() < entries[j].ViewModel.String()
	})
	return entries
}

// Len returns the number of pairings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}

// Seal ends the registration phase.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
	log.Debug(log.CatRegistry, "registry sealed", "entries", r.Len())
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
