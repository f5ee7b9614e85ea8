package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/aromanza/gateway/models"
)

// Admin paths of the catalog entities
var (
	ProductPaths = Paths{
		List:   "/api/productos/listado",
		Create: "/api/productos/agregar",
		Update: "/api/productos/editar/%d",
		Delete: "/api/productos/eliminar/%d",
	}
	CategoryPaths = Paths{
		List:   "/api/categorias/listar",
		Create: "/api/categorias/agregar",
		Update: "/api/categorias/editar/%d",
		Delete: "/api/categorias/eliminar/%d",
	}
	FragrancePaths = Paths{
		List:   "/api/fragancias/listar",
		Create: "/api/fragancias/agregar",
		Update: "/api/fragancias/editar/%d",
		Delete: "/api/fragancias/eliminarFragancias/%d",
	}
	AttributePaths = Paths{
		List:   "/api/atributos/listadoAtributos",
		Create: "/api/atributos/agregar",
		Update: "/api/atributos/editar/%d",
		Delete: "/api/atributos/eliminar/%d",
	}
)

// Catalog reads the public product catalog
type Catalog struct {
	client *Client
}

func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// Summary returns one page of the catalog
func (c *Catalog) Summary(ctx context.Context, page, size int) (*models.ProductPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out models.ProductPage
	if err := c.client.Get(ctx, "/api/productos/resumen", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Product returns one product with its offers
func (c *Catalog) Product(ctx context.Context, id int64) (*models.Product, error) {
	var out models.Product
	if err := c.client.Get(ctx, fmt.Sprintf("/api/productos/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Featured returns the top products of a category
func (c *Catalog) Featured(ctx context.Context, categoryID int64) ([]models.FeaturedProduct, error) {
	out := []models.FeaturedProduct{}
	if err := c.client.Get(ctx, fmt.Sprintf("/api/productos/top5/%d", categoryID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Related returns products of categoryID other than excludeID
func (c *Catalog) Related(ctx context.Context, categoryID, excludeID int64) ([]models.Product, error) {
	q := url.Values{}
	q.Set("categoriaId", strconv.FormatInt(categoryID, 10))
	q.Set("excludeId", strconv.FormatInt(excludeID, 10))

	out := []models.Product{}
	if err := c.client.Get(ctx, "/api/productos/relacionados", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories returns the public category list
func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	if err := c.client.Get(ctx, "/api/categoria/listadoCat", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Fragrances returns the public fragrance list
func (c *Catalog) Fragrances(ctx context.Context) ([]models.Fragrance, error) {
	out := []models.Fragrance{}
	if err := c.client.Get(ctx, "/api/fragancias/listadoFragancias", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Attributes returns the public attribute list
func (c *Catalog) Attributes(ctx context.Context) ([]models.Attribute, error) {
	out := []models.Attribute{}
	if err := c.client.Get(ctx, "/api/atributos/listadoAtributos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
