package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromanza/gateway/models"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

var now = time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

func date(t time.Time) models.Date {
	return models.NewDate(t)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		base  decimal.Decimal
		offer models.Offer
		want  decimal.Decimal
	}{
		{
			name:  "percentage 10% off 100",
			base:  d("100"),
			offer: models.Offer{Kind: models.DiscountPercentage, Value: d("10")},
			want:  d("90"),
		},
		{
			name:  "percentage rounds to cents",
			base:  d("19.99"),
			offer: models.Offer{Kind: models.DiscountPercentage, Value: d("15")},
			want:  d("16.99"),
		},
		{
			name:  "percentage above 100 clamps to zero",
			base:  d("50"),
			offer: models.Offer{Kind: models.DiscountPercentage, Value: d("150")},
			want:  d("0"),
		},
		{
			name:  "fixed amount",
			base:  d("100"),
			offer: models.Offer{Kind: models.DiscountFixedAmount, Value: d("25.50")},
			want:  d("74.50"),
		},
		{
			name:  "fixed amount equal to price",
			base:  d("100"),
			offer: models.Offer{Kind: models.DiscountFixedAmount, Value: d("100")},
			want:  d("0"),
		},
		{
			name:  "fixed amount above price clamps to zero",
			base:  d("100"),
			offer: models.Offer{Kind: models.DiscountFixedAmount, Value: d("250")},
			want:  d("0"),
		},
		{
			name:  "unknown kind keeps price",
			base:  d("80"),
			offer: models.Offer{Kind: "BOGO", Value: d("30")},
			want:  d("80"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(tt.base, tt.offer)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestApply_ZeroValueKeepsPrice(t *testing.T) {
	for _, kind := range []models.DiscountKind{models.DiscountPercentage, models.DiscountFixedAmount} {
		got := Apply(d("123.45"), models.Offer{Kind: kind, Value: decimal.Zero})
		assert.True(t, d("123.45").Equal(got), "kind %s: got %s", kind, got)
	}
}

func TestIsActive(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name  string
		offer models.Offer
		want  bool
	}{
		{"flag off", models.Offer{Active: false}, false},
		{"no dates", models.Offer{Active: true}, true},
		{"ended yesterday", models.Offer{Active: true, EndDate: date(yesterday)}, false},
		{"ends today", models.Offer{Active: true, EndDate: date(now)}, true},
		{"ends tomorrow", models.Offer{Active: true, EndDate: date(tomorrow)}, true},
		{"starts tomorrow", models.Offer{Active: true, StartDate: date(tomorrow)}, false},
		{"started today", models.Offer{Active: true, StartDate: date(now)}, true},
		{"window around now", models.Offer{Active: true, StartDate: date(yesterday), EndDate: date(tomorrow)}, true},
		{"flag off inside window", models.Offer{Active: false, StartDate: date(yesterday), EndDate: date(tomorrow)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsActive(tt.offer, now))
		})
	}
}

func TestPartition(t *testing.T) {
	offers := []models.Offer{
		{ID: 1, Active: true, EndDate: date(now.AddDate(0, 0, -1))},
		{ID: 2, Active: true},
		{ID: 3, Active: false},
		{ID: 4, Active: true, EndDate: date(now)},
	}

	active, expired := Partition(offers, now)

	require.Len(t, active, 2)
	require.Len(t, expired, 2)
	assert.Equal(t, int64(2), active[0].ID)
	assert.Equal(t, int64(4), active[1].ID)
	assert.Equal(t, int64(1), expired[0].ID)
	assert.Equal(t, int64(3), expired[1].ID)
}

func TestEffectiveOffer_SkipsExpiredEvenWhenFlagged(t *testing.T) {
	offers := []models.Offer{
		{ID: 1, Active: true, Kind: models.DiscountPercentage, Value: d("50"), EndDate: date(now.AddDate(0, 0, -3))},
		{ID: 2, Active: true, Kind: models.DiscountPercentage, Value: d("10")},
	}

	got, ok := EffectiveOffer(offers, now)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.ID)
}

func TestNetPrice(t *testing.T) {
	product := models.Product{
		ID:    1,
		Price: d("100"),
		Offers: []models.Offer{
			{Active: false, Kind: models.DiscountFixedAmount, Value: d("60")},
			{Active: true, Kind: models.DiscountPercentage, Value: d("10")},
		},
	}
	assert.True(t, d("90").Equal(NetPrice(product, now)))

	product.Offers = nil
	assert.True(t, d("100").Equal(NetPrice(product, now)))
}

func TestNetPrice_KeepsBackendPriceWithoutOffers(t *testing.T) {
	summary := models.Product{ID: 1, Price: d("100"), FinalPrice: d("80")}
	assert.True(t, d("80").Equal(NetPrice(summary, now)))

	// an explicit empty list means no offer is running
	summary.Offers = []models.Offer{}
	assert.True(t, d("100").Equal(NetPrice(summary, now)))

	summary.Offers = []models.Offer{{Active: true, Kind: models.DiscountPercentage, Value: d("50")}}
	assert.True(t, d("50").Equal(NetPrice(summary, now)))
}

func TestAnnotate(t *testing.T) {
	products := []models.Product{
		{ID: 1, Price: d("100"), Offers: []models.Offer{{Active: true, Kind: models.DiscountFixedAmount, Value: d("30")}}},
		{ID: 2, Price: d("40")},
		{ID: 3, Price: d("60"), FinalPrice: d("45")},
	}

	Annotate(products, now)

	assert.True(t, d("70").Equal(products[0].FinalPrice))
	assert.True(t, d("40").Equal(products[1].FinalPrice))
	assert.True(t, d("45").Equal(products[2].FinalPrice))
}

func TestAnnotateOffers(t *testing.T) {
	offers := []models.Offer{
		{Price: d("200"), Kind: models.DiscountPercentage, Value: d("25")},
	}
	AnnotateOffers(offers)
	assert.True(t, d("150").Equal(offers[0].DiscountPrice))
}
