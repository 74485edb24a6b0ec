package registry

import (
	"sync"

	"github.com/evidentia/opshub/internal/model"
)

// Registry holds one Unit per open connection, in insertion order. All
// mutation goes through the hub's single event loop, the lock only guards
// read-only snapshots taken from the HTTP api.
type Registry struct {
	mx    sync.RWMutex
	items map[string]*model.Unit
	order []string
}

func New() *Registry {
	return &Registry{
		items: make(map[string]*model.Unit),
	}
}

// Store inserts or fully replaces the entry for the unit's connection.
// A replaced entry keeps its original position in the broadcast order.
func (r *Registry) Store(u *model.Unit) {
	if u == nil {
		return
	}

	r.mx.Lock()
	defer r.mx.Unlock()

	id := u.GetConnectionID()

	if _, ok := r.items[id]; !ok {
		r.order = append(r.order, id)
	}

	r.items[id] = u
}

// Upsert creates a fresh entry or shallow-merges fields into an existing one.
func (r *Registry) Upsert(connectionID string, fields map[string]any) *model.Unit {
	r.mx.Lock()
	defer r.mx.Unlock()

	if u, ok := r.items[connectionID]; ok {
		u.Patch(fields)

		return u
	}

	u := model.NewUnit(connectionID, fields)
	r.items[connectionID] = u
	r.order = append(r.order, connectionID)

	return u
}

func (r *Registry) Get(connectionID string) *model.Unit {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return r.items[connectionID]
}

func (r *Registry) Has(connectionID string) bool {
	r.mx.RLock()
	defer r.mx.RUnlock()

	_, ok := r.items[connectionID]

	return ok
}

// Remove is idempotent, removing an absent id is a no-op.
func (r *Registry) Remove(connectionID string) {
	r.mx.Lock()
	defer r.mx.Unlock()

	if _, ok := r.items[connectionID]; !ok {
		return
	}

	delete(r.items, connectionID)

	for i, id := range r.order {
		if id == connectionID {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}
}

func (r *Registry) Len() int {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return len(r.items)
}

// Snapshot returns the current units in insertion order, ready to broadcast.
func (r *Registry) Snapshot() []*model.WebUnit {
	r.mx.RLock()
	defer r.mx.RUnlock()

	res := make([]*model.WebUnit, 0, len(r.order))

	for _, id := range r.order {
		if u, ok := r.items[id]; ok {
			res = append(res, u.ToWeb())
		}
	}

	return res
}

func (r *Registry) ForEach(f func(u *model.Unit) bool) {
	r.mx.RLock()
	defer r.mx.RUnlock()

	for _, id := range r.order {
		if u, ok := r.items[id]; ok {
			if !f(u) {
				return
			}
		}
	}
}
