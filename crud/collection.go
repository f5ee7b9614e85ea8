// Package crud is the single list/create/update/delete component used by every
// admin entity. A Collection keeps the last list the backend returned and only
// changes it after the backend acknowledges a mutation.
package crud

import (
	"context"
	"sync"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/utils"
)

// Backend is the remote side of an entity
type Backend[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload T) (T, error)
	Update(ctx context.Context, id int64, payload T) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Descriptor names an entity and tells the collection how to handle it
type Descriptor[T any] struct {
	// Name is the route segment, e.g. "categorias"
	Name string
	// Label is used in messages shown to the admin
	Label string
	ID    func(T) int64
	SetID func(*T, int64)
	// Validate normalizes the payload in place and rejects bad input
	Validate func(*T) error
}

// Collection is the admin's local copy of one entity list
type Collection[T any] struct {
	desc    Descriptor[T]
	backend Backend[T]

	mu    sync.RWMutex
	items []T
}

// NewCollection creates an empty collection
func NewCollection[T any](desc Descriptor[T], backend Backend[T]) *Collection[T] {
	return &Collection[T]{desc: desc, backend: backend}
}

// Descriptor returns the entity description
func (c *Collection[T]) Descriptor() Descriptor[T] {
	return c.desc
}

// List replaces the local list with the backend's
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	items, err := c.backend.List(ctx)
	if err != nil {
		utils.LogError("Failed to list %s: %v", c.desc.Name, err)
		return nil, apiclient.AsAppError(err, "No se pudo cargar "+c.desc.Label)
	}

	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.mu.Unlock()
	return c.Snapshot(), nil
}

// Create validates payload, sends it and appends what the backend returns
func (c *Collection[T]) Create(ctx context.Context, payload T) (T, error) {
	var zero T
	if err := c.validate(&payload); err != nil {
		return zero, err
	}

	created, err := c.backend.Create(ctx, payload)
	if err != nil {
		utils.LogError("Failed to create %s: %v", c.desc.Name, err)
		return zero, apiclient.AsAppError(err, "No se pudo crear "+c.desc.Label)
	}

	c.mu.Lock()
	c.items = append(c.items, created)
	c.mu.Unlock()
	utils.LogInfo("Created %s %d", c.desc.Name, c.desc.ID(created))
	return created, nil
}

// Update validates payload, sends it and replaces the matching local entry
func (c *Collection[T]) Update(ctx context.Context, id int64, payload T) (T, error) {
	var zero T
	if id <= 0 {
		return zero, utils.BadRequestError(utils.ErrInvalidID, nil)
	}
	if err := c.validate(&payload); err != nil {
		return zero, err
	}

	updated, err := c.backend.Update(ctx, id, payload)
	if err != nil {
		utils.LogError("Failed to update %s %d: %v", c.desc.Name, id, err)
		return zero, apiclient.AsAppError(err, "No se pudo actualizar "+c.desc.Label)
	}
	// Some endpoints reply with an empty body
	if c.desc.ID(updated) == 0 {
		updated = payload
		c.desc.SetID(&updated, id)
	}

	c.mu.Lock()
	for i := range c.items {
		if c.desc.ID(c.items[i]) == id {
			c.items[i] = updated
			break
		}
	}
	c.mu.Unlock()
	utils.LogInfo("Updated %s %d", c.desc.Name, id)
	return updated, nil
}

// Delete removes id on the backend and then locally
func (c *Collection[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return utils.BadRequestError(utils.ErrInvalidID, nil)
	}

	if err := c.backend.Delete(ctx, id); err != nil {
		utils.LogError("Failed to delete %s %d: %v", c.desc.Name, id, err)
		return apiclient.AsAppError(err, "No se pudo eliminar "+c.desc.Label)
	}

	c.mu.Lock()
	for i := range c.items {
		if c.desc.ID(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	utils.LogInfo("Deleted %s %d", c.desc.Name, id)
	return nil
}

// Snapshot returns a copy of the local list
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) validate(payload *T) error {
	if c.desc.Validate == nil {
		return nil
	}
	if err := c.desc.Validate(payload); err != nil {
		return utils.UnprocessableError(utils.ErrInvalidPayload, err)
	}
	return nil
}
