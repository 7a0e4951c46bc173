// Package registry holds the per-view entity collections. A Registry is the
// sole owner of its items; callers only ever see copies.
package registry

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/educa-portal/internal/models"
	appErrors "github.com/noah-isme/educa-portal/pkg/errors"
)

// ListFunc fetches the collection for a scope (a course id, a section id, or
// empty for unscoped lists).
type ListFunc[T any] func(ctx context.Context, token, scope string) ([]T, error)

// CreateFunc creates an entity upstream.
type CreateFunc[T any] func(ctx context.Context, token string, payload interface{}) (*T, string, error)

// UpdateFunc updates an entity upstream.
type UpdateFunc[T any] func(ctx context.Context, token string, id models.ID, payload interface{}) (*T, string, error)

// Source wires a registry to its endpoints. Create and Update are optional.
type Source[T any] struct {
	List   ListFunc[T]
	Create CreateFunc[T]
	Update UpdateFunc[T]
}

// Registry is an ordered, id-keyed collection of one entity type.
type Registry[T any] struct {
	name   string
	token  string
	idOf   func(T) models.ID
	src    Source[T]
	logger *zap.Logger

	mu    sync.RWMutex
	items []T
}

// New constructs a Registry bound to the bearer credential of one view.
func New[T any](name, token string, idOf func(T) models.ID, src Source[T], logger *zap.Logger) *Registry[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry[T]{name: name, token: token, idOf: idOf, src: src, logger: logger.With(zap.String("registry", name))}
}

func (r *Registry[T]) credential(op string) error {
	if r.token == "" {
		r.logger.Warn("operation not attempted: no stored credential", zap.String("operation", op))
		return appErrors.ErrMissingCredential
	}
	return nil
}

// FetchAll replaces the collection with the upstream list. On failure the
// previous items are kept and the error is logged and returned.
func (r *Registry[T]) FetchAll(ctx context.Context, scope string) error {
	if err := r.credential("fetch"); err != nil {
		return err
	}
	if r.src.List == nil {
		return appErrors.Clone(appErrors.ErrInternal, r.name+" cannot be listed")
	}
	items, err := r.src.List(ctx, r.token, scope)
	if err != nil {
		r.logger.Error("fetch failed", zap.String("scope", scope), zap.Error(err))
		return err
	}
	if items == nil {
		items = []T{}
	}
	r.mu.Lock()
	r.items = items
	r.mu.Unlock()
	return nil
}

// Load seeds the collection with items that were fetched elsewhere, e.g. a
// roster embedded in a section.
func (r *Registry[T]) Load(items []T) {
	cp := make([]T, len(items))
	copy(cp, items)
	r.mu.Lock()
	r.items = cp
	r.mu.Unlock()
}

// Items returns a copy of the collection.
func (r *Registry[T]) Items() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of items.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Get returns the item with id.
func (r *Registry[T]) Get(id models.ID) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if r.idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Remove drops every item with id from local state. No request is issued.
func (r *Registry[T]) Remove(id models.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0:0]
	removed := 0
	for _, it := range r.items {
		if r.idOf(it) == id {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	r.items = kept
	return removed
}

// Take removes the first item with id and reports where it was, so the
// removal can be undone with Restore.
func (r *Registry[T]) Take(id models.ID) (int, T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if r.idOf(it) == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return i, it, true
		}
	}
	var zero T
	return -1, zero, false
}

// Restore puts item back at index, clamped to the current length.
func (r *Registry[T]) Restore(index int, item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 {
		index = 0
	}
	if index > len(r.items) {
		index = len(r.items)
	}
	items := make([]T, 0, len(r.items)+1)
	items = append(items, r.items[:index]...)
	items = append(items, item)
	items = append(items, r.items[index:]...)
	r.items = items
}

// Replace swaps the item sharing item's id, or appends it when absent.
func (r *Registry[T]) Replace(item T) {
	id := r.idOf(item)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if r.idOf(it) == id {
			r.items[i] = item
			return
		}
	}
	r.items = append(r.items, item)
}

// Mutate applies fn to the item with id and reports whether it was found.
func (r *Registry[T]) Mutate(id models.ID, fn func(T) T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if r.idOf(it) == id {
			r.items[i] = fn(it)
			return true
		}
	}
	return false
}

// Create creates upstream and appends the result. On failure nothing changes.
func (r *Registry[T]) Create(ctx context.Context, payload interface{}) (*T, string, error) {
	if err := r.credential("create"); err != nil {
		return nil, "", err
	}
	if r.src.Create == nil {
		return nil, "", appErrors.Clone(appErrors.ErrInternal, r.name+" cannot be created")
	}
	created, msg, err := r.src.Create(ctx, r.token, payload)
	if err != nil {
		r.logger.Info("create rejected", zap.Error(err))
		return nil, "", err
	}
	if created != nil {
		if r.idOf(*created).IsZero() {
			r.mu.Lock()
			r.items = append(r.items, *created)
			r.mu.Unlock()
		} else {
			r.Replace(*created)
		}
	}
	return created, msg, nil
}

// Update updates upstream and replaces the local item. On failure nothing
// changes.
func (r *Registry[T]) Update(ctx context.Context, id models.ID, payload interface{}) (*T, string, error) {
	if err := r.credential("update"); err != nil {
		return nil, "", err
	}
	if r.src.Update == nil {
		return nil, "", appErrors.Clone(appErrors.ErrInternal, r.name+" cannot be updated")
	}
	updated, msg, err := r.src.Update(ctx, r.token, id, payload)
	if err != nil {
		r.logger.Info("update rejected", zap.String("id", id.String()), zap.Error(err))
		return nil, "", err
	}
	if updated != nil {
		if r.idOf(*updated).IsZero() {
			// some endpoints answer with a message only
			return updated, msg, nil
		}
		r.Replace(*updated)
	}
	return updated, msg, nil
}
