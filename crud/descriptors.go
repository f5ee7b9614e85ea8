package crud

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

var Users = Descriptor[models.UserPayload]{
	Name:  "usuarios",
	Label: "el usuario",
	ID:    func(u models.UserPayload) int64 { return u.ID },
	SetID: func(u *models.UserPayload, id int64) { u.ID = id },
	Validate: func(u *models.UserPayload) error {
		var errs utils.FieldValidationErrors
		u.Name = strings.TrimSpace(u.Name)
		u.Email = strings.TrimSpace(u.Email)
		if !utils.ValidateName(u.Name, 2, 50) {
			errs.Add("nombre", "El nombre debe tener entre 2 y 50 caracteres")
		}
		if !utils.ValidateEmail(u.Email) {
			errs.Add("email", "Email inválido")
		}
		if u.Role == "" {
			u.Role = models.RoleUser
		}
		if u.Role != models.RoleUser && u.Role != models.RoleAdmin {
			errs.Add("rol", "Rol inválido")
		}
		if u.Password != "" && len(u.Password) < utils.MinPasswordLength {
			errs.Add("password", "La contraseña es demasiado corta")
		}
		return errs.Err()
	},
}

var Products = Descriptor[models.Product]{
	Name:  "productos",
	Label: "el producto",
	ID:    func(p models.Product) int64 { return p.ID },
	SetID: func(p *models.Product, id int64) { p.ID = id },
	Validate: func(p *models.Product) error {
		var errs utils.FieldValidationErrors
		p.Name = strings.TrimSpace(p.Name)
		if !utils.ValidateName(p.Name, 1, 150) {
			errs.Add("nombre", "El nombre es obligatorio")
		}
		if p.Price.IsNegative() {
			errs.Add("precio", "El precio no puede ser negativo")
		}
		if p.WholesalePrice.IsNegative() {
			errs.Add("precioMayorista", "El precio mayorista no puede ser negativo")
		}
		if p.Stock < 0 {
			errs.Add("stock", "El stock no puede ser negativo")
		}
		// precioFinal is derived, never sent
		p.FinalPrice = decimal.Zero
		return errs.Err()
	},
}

var Categories = Descriptor[models.Category]{
	Name:  "categorias",
	Label: "la categoría",
	ID:    func(c models.Category) int64 { return c.ID },
	SetID: func(c *models.Category, id int64) { c.ID = id },
	Validate: func(c *models.Category) error {
		c.Normalize()
		return requireName(c.Name, 100)
	},
}

var Fragrances = Descriptor[models.Fragrance]{
	Name:  "fragancias",
	Label: "la fragancia",
	ID:    func(f models.Fragrance) int64 { return f.ID },
	SetID: func(f *models.Fragrance, id int64) { f.ID = id },
	Validate: func(f *models.Fragrance) error {
		f.Name = strings.TrimSpace(f.Name)
		return requireName(f.Name, 100)
	},
}

var Attributes = Descriptor[models.Attribute]{
	Name:  "atributos",
	Label: "el atributo",
	ID:    func(a models.Attribute) int64 { return a.ID },
	SetID: func(a *models.Attribute, id int64) { a.ID = id },
	Validate: func(a *models.Attribute) error {
		a.Name = strings.TrimSpace(a.Name)
		return requireName(a.Name, 100)
	},
}

var Offers = Descriptor[models.Offer]{
	Name:  "ofertas",
	Label: "la oferta",
	ID:    func(o models.Offer) int64 { return o.ID },
	SetID: func(o *models.Offer, id int64) { o.ID = id },
	Validate: func(o *models.Offer) error {
		var errs utils.FieldValidationErrors
		if o.ProductID <= 0 {
			errs.Add("productoId", "Producto obligatorio")
		}
		if !o.Kind.Valid() {
			errs.Add("tipoDescuento", "Tipo de descuento inválido")
		}
		if o.Value.IsNegative() {
			errs.Add("valorDescuento", "El descuento no puede ser negativo")
		}
		if o.Kind == models.DiscountPercentage && o.Value.GreaterThan(decimal.NewFromInt(100)) {
			errs.Add("valorDescuento", "El porcentaje no puede superar 100")
		}
		if o.StartDate.IsSet() && o.EndDate.IsSet() && o.EndDate.Time.Before(o.StartDate.Time) {
			errs.Add("fechaFin", "La fecha de fin es anterior a la de inicio")
		}
		return errs.Err()
	},
}

var Posts = Descriptor[models.Post]{
	Name:  "posts",
	Label: "el post",
	ID:    func(p models.Post) int64 { return p.ID },
	SetID: func(p *models.Post, id int64) { p.ID = id },
	Validate: func(p *models.Post) error {
		var errs utils.FieldValidationErrors
		p.Title = strings.TrimSpace(p.Title)
		if !utils.ValidateName(p.Title, 1, 200) {
			errs.Add("titulo", "El título es obligatorio")
		}
		if strings.TrimSpace(p.Content) == "" && strings.TrimSpace(p.Summary) == "" {
			errs.Add("contenido", "El contenido es obligatorio")
		}
		return errs.Err()
	},
}

var PostCategories = Descriptor[models.PostCategory]{
	Name:  "categorias-blog",
	Label: "la categoría del blog",
	ID:    func(c models.PostCategory) int64 { return c.ID },
	SetID: func(c *models.PostCategory, id int64) { c.ID = id },
	Validate: func(c *models.PostCategory) error {
		c.Name = strings.TrimSpace(c.Name)
		c.Description = strings.TrimSpace(c.Description)
		return requireName(c.Name, 100)
	},
}

func requireName(name string, max int) error {
	if !utils.ValidateName(name, 1, max) {
		var errs utils.FieldValidationErrors
		errs.Add("nombre", "El nombre es obligatorio")
		return errs
	}
	return nil
}
