// Package cart holds the shopping cart of one visitor. Every mutation is
// written through to a Store so the cart survives across requests.
package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/pricing"
	"github.com/aromanza/gateway/utils"
)

// Cart is the set of products a visitor intends to buy
type Cart struct {
	mu        sync.Mutex
	visitorID string
	store     Store
	lines     []models.CartLine
	now       func() time.Time
}

// Option configures a Cart
type Option func(*Cart)

// WithClock overrides the clock used to pick the offer in effect
func WithClock(now func() time.Time) Option {
	return func(c *Cart) { c.now = now }
}

// Load rehydrates the visitor's cart from store. A snapshot that cannot be
// decoded is deleted and the cart starts empty. Errors are returned only when
// the store itself fails.
func Load(ctx context.Context, store Store, visitorID string, opts ...Option) (*Cart, error) {
	c := &Cart{
		visitorID: visitorID,
		store:     store,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	raw, err := store.Load(ctx, visitorID)
	switch {
	case errors.Is(err, ErrSnapshotNotFound):
		return c, nil
	case err != nil:
		return nil, errors.Wrap(err, "load cart snapshot")
	}

	lines, err := decode(raw)
	if err != nil {
		utils.LogDebug("Discarding corrupt cart snapshot for visitor %s: %v", visitorID, err)
		if err := store.Delete(ctx, visitorID); err != nil {
			return nil, errors.Wrap(err, "delete corrupt cart snapshot")
		}
		return c, nil
	}
	c.lines = lines
	return c, nil
}

// VisitorID returns the owner of the cart
func (c *Cart) VisitorID() string {
	return c.visitorID
}

// Add puts product in the cart with quantity 1, or increments it when it is
// already there.
func (c *Cart) Add(ctx context.Context, product models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(product.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.persist(ctx)
	}

	c.lines = append(c.lines, models.CartLine{
		ProductID:      product.ID,
		Name:           product.Name,
		UnitPriceGross: product.Price,
		UnitPriceNet:   pricing.NetPrice(product, c.now()),
		ImageURL:       product.ImageURL,
		Quantity:       1,
	})
	return c.persist(ctx)
}

// Increment adds one unit of productID. Absent products are ignored.
func (c *Cart) Increment(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(productID); i >= 0 {
		c.lines[i].Quantity++
	}
	return c.persist(ctx)
}

// Decrement removes one unit of productID but never goes below 1; use Remove
// to drop the line.
func (c *Cart) Decrement(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(productID); i >= 0 && c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
	}
	return c.persist(ctx)
}

// Remove deletes the line of productID
func (c *Cart) Remove(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	return c.persist(ctx)
}

// Clear empties the cart
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	return c.persist(ctx)
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Quantity returns the quantity of productID, 0 when absent
func (c *Cart) Quantity(productID int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.index(productID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.lines) == 0
}

// Totals computes gross, net and discount over all lines
func (c *Cart) Totals() models.CartTotals {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Totals(c.lines)
}

// Totals computes the aggregate amounts of lines. Discount is always Gross - Net.
func Totals(lines []models.CartLine) models.CartTotals {
	gross := decimal.Zero
	net := decimal.Zero
	items := 0
	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		gross = gross.Add(l.UnitPriceGross.Mul(qty))
		net = net.Add(l.UnitPriceNet.Mul(qty))
		items += l.Quantity
	}
	return models.CartTotals{
		Gross:    gross,
		Net:      net,
		Discount: gross.Sub(net),
		Items:    items,
	}
}

// OrderDetails converts the cart into the lines sent to the backend at checkout
func (c *Cart) OrderDetails() []models.OrderDetail {
	c.mu.Lock()
	defer c.mu.Unlock()

	details := make([]models.OrderDetail, 0, len(c.lines))
	for _, l := range c.lines {
		details = append(details, models.OrderDetail{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.UnitPriceNet,
		})
	}
	return details
}

func (c *Cart) index(productID int64) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) persist(ctx context.Context) error {
	raw, err := encode(c.lines)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := c.store.Save(ctx, c.visitorID, raw); err != nil {
		return errors.Wrap(err, "save cart snapshot")
	}
	return nil
}

func encode(lines []models.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return json.Marshal(lines)
}

// decode parses a snapshot and rejects any that breaks the cart invariants
func decode(raw []byte) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(lines))
	for _, l := range lines {
		if l.ProductID <= 0 {
			return nil, errors.Errorf("invalid product id %d", l.ProductID)
		}
		if l.Quantity < 1 {
			return nil, errors.Errorf("invalid quantity %d for product %d", l.Quantity, l.ProductID)
		}
		if seen[l.ProductID] {
			return nil, errors.Errorf("duplicate product %d", l.ProductID)
		}
		seen[l.ProductID] = true
	}
	return lines, nil
}
