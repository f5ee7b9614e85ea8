package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/pricing"
	"github.com/aromanza/gateway/utils"
)

// maxFilterPages bounds how much of the catalog a filter request walks
const maxFilterPages = 25

// ProductController serves the public catalog
type ProductController struct {
	Catalog *apiclient.Catalog
	Clock   Clock
}

// ListProducts returns one page of the catalog with sale prices
func (pc *ProductController) ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")
	p := utils.NewPagination(c)

	page, err := pc.Catalog.Summary(c.Request.Context(), p.Page, p.Size)
	if err != nil {
		utils.LogError("Failed to fetch products page %d: %v", p.Page, err)
		upstreamError(c, "No se pudieron cargar los productos", err)
		return
	}
	products := page.Content
	if products == nil {
		products = []models.Product{}
	}
	pricing.Annotate(products, pc.Clock.now())

	utils.LogInfo("Retrieved %d products for page %d", len(products), p.Page)
	utils.SuccessWithPage(c, "Productos obtenidos", products, p, page.Last)
}

// GetProduct returns a product with its sale price and the offer in effect
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidProductID)
	if !ok {
		return
	}
	utils.LogInfo("GetProduct called for product %d", id)

	product, err := pc.Catalog.Product(c.Request.Context(), id)
	if err != nil {
		utils.LogError("Failed to fetch product %d: %v", id, err)
		upstreamError(c, "No se pudo cargar el producto", err)
		return
	}

	now := pc.Clock.now()
	product.FinalPrice = pricing.NetPrice(*product, now)
	data := gin.H{"producto": product}
	if offer, ok := pricing.EffectiveOffer(product.Offers, now); ok {
		data["oferta"] = offer
	}
	utils.Success(c, "Producto obtenido", data)
}

// FeaturedProducts returns the highlights of a category
func (pc *ProductController) FeaturedProducts(c *gin.Context) {
	categoryID, ok := paramID(c, "categoriaId", utils.ErrInvalidID)
	if !ok {
		return
	}

	products, err := pc.Catalog.Featured(c.Request.Context(), categoryID)
	if err != nil {
		utils.LogError("Failed to fetch featured products of category %d: %v", categoryID, err)
		upstreamError(c, "No se pudieron cargar los destacados", err)
		return
	}
	utils.Success(c, "Productos destacados", products)
}

// RelatedProducts returns products of the same category as :id
func (pc *ProductController) RelatedProducts(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidProductID)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	product, err := pc.Catalog.Product(ctx, id)
	if err != nil {
		upstreamError(c, "No se pudo cargar el producto", err)
		return
	}
	related, err := pc.Catalog.Related(ctx, product.CategoryID, product.ID)
	if err != nil {
		utils.LogError("Failed to fetch products related to %d: %v", id, err)
		upstreamError(c, "No se pudieron cargar los productos relacionados", err)
		return
	}

	out := related[:0]
	for _, r := range related {
		if r.ID != product.ID {
			out = append(out, r)
		}
	}
	pricing.Annotate(out, pc.Clock.now())
	utils.Success(c, "Productos relacionados", out)
}

// ProductFilter narrows the catalog the way the storefront sidebar does
type ProductFilter struct {
	CategoryID int64
	Fragrance  string
	Min        decimal.NullDecimal
	Max        decimal.NullDecimal
	Query      string
}

// Match reports whether p passes the filter. Prices compare against the sale price.
func (f ProductFilter) Match(p models.Product) bool {
	if f.CategoryID > 0 && p.CategoryID != f.CategoryID {
		return false
	}
	if f.Fragrance != "" && !p.HasFragrance(f.Fragrance) {
		return false
	}
	if f.Min.Valid && p.FinalPrice.LessThan(f.Min.Decimal) {
		return false
	}
	if f.Max.Valid && p.FinalPrice.GreaterThan(f.Max.Decimal) {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query)) {
		return false
	}
	return true
}

func parseFilter(c *gin.Context) (ProductFilter, error) {
	var f ProductFilter
	var errs utils.FieldValidationErrors

	if v := c.Query("categoria"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			errs.Add("categoria", "Categoría inválida")
		}
		f.CategoryID = id
	}
	for name, dst := range map[string]*decimal.NullDecimal{"min": &f.Min, "max": &f.Max} {
		v := c.Query(name)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			errs.Add(name, "Precio inválido")
			continue
		}
		*dst = decimal.NewNullDecimal(d)
	}
	if f.Min.Valid && f.Max.Valid && f.Min.Decimal.GreaterThan(f.Max.Decimal) {
		errs.Add("min", "El mínimo supera al máximo")
	}
	f.Fragrance = strings.TrimSpace(c.Query("fragancia"))
	f.Query = strings.TrimSpace(c.Query("q"))
	return f, errs.Err()
}

// FilterProducts walks the catalog pages and keeps the products that match
func (pc *ProductController) FilterProducts(c *gin.Context) {
	utils.LogInfo("FilterProducts called")
	filter, err := parseFilter(c)
	if err != nil {
		utils.BadRequest(c, utils.ErrInvalidPayload, err.Error())
		return
	}

	ctx := c.Request.Context()
	now := pc.Clock.now()
	matched := []models.Product{}
	for page := 0; page < maxFilterPages; page++ {
		res, err := pc.Catalog.Summary(ctx, page, utils.MaxPageSize)
		if err != nil {
			utils.LogError("Failed to fetch products page %d while filtering: %v", page, err)
			upstreamError(c, "No se pudieron cargar los productos", err)
			return
		}
		pricing.Annotate(res.Content, now)
		for _, p := range res.Content {
			if filter.Match(p) {
				matched = append(matched, p)
			}
		}
		if res.Last || len(res.Content) == 0 {
			break
		}
	}

	utils.LogInfo("Filter matched %d products", len(matched))
	utils.Success(c, "Productos filtrados", matched)
}

// ListFilters returns the public category, fragrance and attribute lists
// used to build the catalog filters.
func (pc *ProductController) ListFilters(c *gin.Context) {
	ctx := c.Request.Context()

	categories, err := pc.Catalog.Categories(ctx)
	if err != nil {
		upstreamError(c, "No se pudieron cargar las categorías", err)
		return
	}
	fragrances, err := pc.Catalog.Fragrances(ctx)
	if err != nil {
		upstreamError(c, "No se pudieron cargar las fragancias", err)
		return
	}
	attributes, err := pc.Catalog.Attributes(ctx)
	if err != nil {
		upstreamError(c, "No se pudieron cargar los atributos", err)
		return
	}

	utils.Success(c, "Filtros del catálogo", gin.H{
		"categorias": categories,
		"fragancias": fragrances,
		"atributos":  attributes,
	})
}
