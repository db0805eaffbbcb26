package attrkey

import (
	"fmt"
	"sync"

	"github.com/specialistvlad/factgraph/internal/nestedset"
)

// Option configures a key at registration.
type Option func(*keyOptions)

type keyOptions struct {
	exportName string
}

// Exported puts the key on the export allow-list under the given name.
func Exported(name string) Option {
	return func(o *keyOptions) {
		o.exportName = name
	}
}

// Registry is the closed set of keys known to the process. Registration is
// expected to happen during package initialization; lookups are safe for
// concurrent use at any time.
type Registry struct {
	mu       sync.RWMutex
	ordered  []AnyKey
	byName   map[string]AnyKey
	byExport map[string]AnyKey
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]AnyKey),
		byExport: make(map[string]AnyKey),
	}
}

// Register defines a new key in r. It panics if the name or export name is
// already taken, or if an export name is requested for an element type that
// cannot cross the export bridge. These are programmer errors in the static
// key catalog.
func Register[E comparable](r *Registry, name string, order nestedset.Order, opts ...Option) *Key[E] {
	var o keyOptions
	for _, opt := range opts {
		opt(&o)
	}

	k := &Key[E]{name: name, order: order, exportName: o.exportName}
	if name == "" {
		panic("attrkey: key name must not be empty")
	}
	if o.exportName != "" && !exportable(k.ElemType()) {
		panic(fmt.Sprintf("attrkey: key %q with element type %s cannot be exported", name, k.ElemType()))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byName[name]; dup {
		panic(fmt.Sprintf("attrkey: duplicate key %q", name))
	}
	if o.exportName != "" {
		if _, dup := r.byExport[o.exportName]; dup {
			panic(fmt.Sprintf("attrkey: duplicate export name %q", o.exportName))
		}
		r.byExport[o.exportName] = k
	}
	r.byName[name] = k
	r.ordered = append(r.ordered, k)
	return k
}

// Lookup finds a key by its name.
func (r *Registry) Lookup(name string) (AnyKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.byName[name]
	return k, ok
}

// LookupExport finds an exportable key by its export name. Unregistered and
// non-exportable names are simply not found.
func (r *Registry) LookupExport(name string) (AnyKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.byExport[name]
	return k, ok
}

// All returns every key in registration order.
func (r *Registry) All() []AnyKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]AnyKey(nil), r.ordered...)
}

// Exported returns the export allow-list in registration order.
func (r *Registry) Exported() []AnyKey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []AnyKey
	for _, k := range r.ordered {
		if _, ok := k.ExportName(); ok {
			out = append(out, k)
		}
	}
	return out
}
