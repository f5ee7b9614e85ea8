// Package pricing decides which offer applies to a product and what the product
// sells for. It is the only place discounts are derived.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aromanza/gateway/models"
)

var hundred = decimal.NewFromInt(100)

// IsActive reports whether offer is in effect at now: flagged active, not past
// the end of its last day, and not before the start of its first day.
func IsActive(offer models.Offer, now time.Time) bool {
	if !offer.Active {
		return false
	}
	loc := now.Location()
	if offer.EndDate.IsSet() && offer.EndDate.EndOfDay(loc).Before(now) {
		return false
	}
	if offer.StartDate.IsSet() && offer.StartDate.StartOfDay(loc).After(now) {
		return false
	}
	return true
}

// Partition splits offers into those in effect at now and the rest, keeping
// their order.
func Partition(offers []models.Offer, now time.Time) (active, expired []models.Offer) {
	active = make([]models.Offer, 0, len(offers))
	expired = make([]models.Offer, 0)
	for _, o := range offers {
		if IsActive(o, now) {
			active = append(active, o)
		} else {
			expired = append(expired, o)
		}
	}
	return active, expired
}

// EffectiveOffer returns the first offer in effect at now
func EffectiveOffer(offers []models.Offer, now time.Time) (models.Offer, bool) {
	for _, o := range offers {
		if IsActive(o, now) {
			return o, true
		}
	}
	return models.Offer{}, false
}

// Apply returns base reduced by offer, never below zero. Unknown discount
// kinds leave the price untouched.
func Apply(base decimal.Decimal, offer models.Offer) decimal.Decimal {
	var net decimal.Decimal
	switch offer.Kind {
	case models.DiscountPercentage:
		net = base.Sub(base.Mul(offer.Value).Div(hundred))
	case models.DiscountFixedAmount:
		net = base.Sub(offer.Value)
	default:
		net = base
	}
	return floorAtZero(net).Round(2)
}

// NetPrice is the price product sells for at now. A product whose offers were
// not sent (summary listings) keeps the sale price the backend computed.
func NetPrice(product models.Product, now time.Time) decimal.Decimal {
	if product.Offers == nil && product.FinalPrice.IsPositive() {
		return floorAtZero(product.FinalPrice).Round(2)
	}
	offer, ok := EffectiveOffer(product.Offers, now)
	if !ok {
		return floorAtZero(product.Price).Round(2)
	}
	return Apply(product.Price, offer)
}

// Annotate fills FinalPrice on every product in place
func Annotate(products []models.Product, now time.Time) {
	for i := range products {
		products[i].FinalPrice = NetPrice(products[i], now)
	}
}

// AnnotateOffers fills the discounted price of each offer from its own price
func AnnotateOffers(offers []models.Offer) {
	for i := range offers {
		offers[i].DiscountPrice = Apply(offers[i].Price, offers[i])
	}
}

func floorAtZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
