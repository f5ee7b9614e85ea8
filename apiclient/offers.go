package apiclient

import (
	"context"

	"github.com/aromanza/gateway/models"
)

// OfferPaths are the admin paths of offers
var OfferPaths = Paths{
	List:   "/api/ofertas/listar",
	Create: "/api/ofertas/agregar",
	Update: "/api/ofertas/editar/%d",
	Delete: "/api/ofertas/eliminar/%d",
}

// Offers reads the public offer listings
type Offers struct {
	client *Client
}

func NewOffers(client *Client) *Offers {
	return &Offers{client: client}
}

// Carousel returns the home page carousel subset
func (o *Offers) Carousel(ctx context.Context) ([]models.CarouselOffer, error) {
	out := []models.CarouselOffer{}
	if err := o.client.Get(ctx, "/api/ofertas/carrusel", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// WithPrices returns every offer together with the price of its product
func (o *Offers) WithPrices(ctx context.Context) ([]models.Offer, error) {
	out := []models.Offer{}
	if err := o.client.Get(ctx, "/api/ofertas/conPrecio", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// All returns the full admin listing
func (o *Offers) All(ctx context.Context) ([]models.Offer, error) {
	out := []models.Offer{}
	if err := o.client.Get(ctx, OfferPaths.List, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
