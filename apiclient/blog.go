package apiclient

import (
	"context"
	"fmt"

	"github.com/aromanza/gateway/models"
)

// Admin paths of blog entities
var (
	PostPaths = Paths{
		List:   "/api/posts",
		Create: "/api/posts/agregarPost",
		Update: "/api/posts/actualizarPost/%d",
		Delete: "/api/posts/eliminar/%d",
	}
	PostCategoryPaths = Paths{
		List:   "/api/categorias-blog/listarCategoriaBlog",
		Create: "/api/categorias-blog/agregarCategoriaBlog",
		Update: "/api/categorias-blog/%d",
		Delete: "/api/categorias-blog/%d",
	}
)

// Blog reads posts and their categories
type Blog struct {
	client *Client
}

func NewBlog(client *Client) *Blog {
	return &Blog{client: client}
}

func (b *Blog) Posts(ctx context.Context) ([]models.Post, error) {
	out := []models.Post{}
	if err := b.client.Get(ctx, PostPaths.List, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Blog) Post(ctx context.Context, id int64) (*models.Post, error) {
	var out models.Post
	if err := b.client.Get(ctx, fmt.Sprintf("/api/posts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *Blog) Categories(ctx context.Context) ([]models.PostCategory, error) {
	out := []models.PostCategory{}
	if err := b.client.Get(ctx, PostCategoryPaths.List, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
