package modality

import (
	"sort"

	"github.com/BaSui01/modality/types"
)

// Registry maps each modality to the handler that owns it.
//
// A Registry has no internal locking. Register must not run concurrently
// with lookups; callers sharing one Registry arrange that themselves.
type Registry struct {
	handlers   map[types.Modality]Handler
	generation uint64
}

// NewRegistry creates a registry holding the given handlers. Later handlers
// replace earlier ones for the same modality.
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{handlers: make(map[types.Modality]Handler, len(handlers))}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

// DefaultRegistry creates a fresh registry with the built-in text and
// structured handlers.
func DefaultRegistry() *Registry {
	return NewRegistry(NewTextHandler(), NewStructuredHandler())
}

// Register inserts or replaces the handler for h.Modality(). Nil is ignored.
func (r *Registry) Register(h Handler) {
	if h == nil {
		return
	}
	r.handlers[h.Modality()] = h
	r.generation++
}

// Generation counts successful Register calls. It changes whenever the
// handler set may have changed, so derived data can be keyed by it.
func (r *Registry) Generation() uint64 {
	return r.generation
}

// Lookup returns the handler bound to m.
func (r *Registry) Lookup(m types.Modality) (Handler, bool) {
	h, ok := r.handlers[m]
	return h, ok
}

// Len returns the number of registered modalities.
func (r *Registry) Len() int {
	return len(r.handlers)
}

// Modalities returns the registered modalities, recognized tags first in
// declaration order, then any other tags by name.
func (r *Registry) Modalities() []types.Modality {
	out := make([]types.Modality, 0, len(r.handlers))
	for m := range r.handlers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		oi, oj := out[i].Ordinal(), out[j].Ordinal()
		switch {
		case oi >= 0 && oj >= 0:
			return oi < oj
		case oi >= 0:
			return true
		case oj >= 0:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}

// Clone returns an independent copy. Handlers themselves are shared.
func (r *Registry) Clone() *Registry {
	cp := &Registry{
		handlers:   make(map[types.Modality]Handler, len(r.handlers)),
		generation: r.generation,
	}
	for m, h := range r.handlers {
		cp.handlers[m] = h
	}
	return cp
}
