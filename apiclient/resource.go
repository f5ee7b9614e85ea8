package apiclient

import (
	"context"
	"fmt"
)

// Paths locates the four admin operations of an entity on the backend. Update
// and Delete are formats taking the entity id.
type Paths struct {
	List   string
	Create string
	Update string
	Delete string
}

// Resource is the list/create/update/delete surface of one backend entity
type Resource[T any] struct {
	client *Client
	paths  Paths
}

// NewResource binds paths to client
func NewResource[T any](client *Client, paths Paths) *Resource[T] {
	return &Resource[T]{client: client, paths: paths}
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.Get(ctx, r.paths.List, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Resource[T]) Create(ctx context.Context, payload T) (T, error) {
	var out T
	err := r.client.Post(ctx, r.paths.Create, payload, &out)
	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, id int64, payload T) (T, error) {
	var out T
	err := r.client.Put(ctx, fmt.Sprintf(r.paths.Update, id), payload, &out)
	return out, err
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.Delete(ctx, fmt.Sprintf(r.paths.Delete, id))
}
