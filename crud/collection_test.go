package crud

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

// fakeBackend keeps categories in a map and fails on demand
type fakeBackend struct {
	items  map[int64]models.Category
	nextID int64
	fail   error
	calls  int
	// emptyReplies makes Update answer like endpoints that send no body
	emptyReplies bool
}

func newFakeBackend(items ...models.Category) *fakeBackend {
	f := &fakeBackend{items: map[int64]models.Category{}, nextID: 100}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeBackend) List(context.Context) ([]models.Category, error) {
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([]models.Category, 0, len(f.items))
	for id := int64(1); id <= f.nextID; id++ {
		if it, ok := f.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeBackend) Create(_ context.Context, c models.Category) (models.Category, error) {
	f.calls++
	if f.fail != nil {
		return models.Category{}, f.fail
	}
	f.nextID++
	c.ID = f.nextID
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeBackend) Update(_ context.Context, id int64, c models.Category) (models.Category, error) {
	f.calls++
	if f.fail != nil {
		return models.Category{}, f.fail
	}
	if _, ok := f.items[id]; !ok {
		return models.Category{}, &apiclient.StatusError{Status: http.StatusNotFound, Message: "Categoría no encontrada"}
	}
	c.ID = id
	f.items[id] = c
	if f.emptyReplies {
		return models.Category{}, nil
	}
	return c, nil
}

func (f *fakeBackend) Delete(_ context.Context, id int64) error {
	f.calls++
	if f.fail != nil {
		return f.fail
	}
	if _, ok := f.items[id]; !ok {
		return &apiclient.StatusError{Status: http.StatusNotFound, Message: "Categoría no encontrada"}
	}
	delete(f.items, id)
	return nil
}

func loaded(t *testing.T, backend *fakeBackend) *Collection[models.Category] {
	t.Helper()
	col := NewCollection(Categories, backend)
	_, err := col.List(context.Background())
	require.NoError(t, err)
	return col
}

func TestCollection_List(t *testing.T) {
	backend := newFakeBackend(models.Category{ID: 1, Name: "Florales"}, models.Category{ID: 2, Name: "Cítricos"})
	col := NewCollection(Categories, backend)

	items, err := col.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, items, col.Snapshot())
}

func TestCollection_CreateAppendsServerEntity(t *testing.T) {
	col := loaded(t, newFakeBackend(models.Category{ID: 1, Name: "Florales"}))

	created, err := col.Create(context.Background(), models.Category{Name: "  Amaderados "})
	require.NoError(t, err)
	assert.Equal(t, int64(101), created.ID)
	assert.Equal(t, "Amaderados", created.Name)

	snap := col.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, created, snap[1])
}

func TestCollection_UpdateReplacesMatchingEntry(t *testing.T) {
	col := loaded(t, newFakeBackend(models.Category{ID: 1, Name: "Florales"}, models.Category{ID: 2, Name: "Cítricos"}))

	_, err := col.Update(context.Background(), 2, models.Category{Name: "Frescos"})
	require.NoError(t, err)

	snap := col.Snapshot()
	assert.Equal(t, "Florales", snap[0].Name)
	assert.Equal(t, "Frescos", snap[1].Name)
}

func TestCollection_UpdateWithEmptyReplyKeepsID(t *testing.T) {
	backend := newFakeBackend(models.Category{ID: 7, Name: "Florales"})
	backend.emptyReplies = true
	col := loaded(t, backend)

	updated, err := col.Update(context.Background(), 7, models.Category{Name: "Cítricos"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated.ID)
	assert.Equal(t, "Cítricos", updated.Name)
	assert.Equal(t, []models.Category{{ID: 7, Name: "Cítricos"}}, col.Snapshot())

	require.NoError(t, col.Delete(context.Background(), 7))
	assert.Empty(t, col.Snapshot())
}

func TestCollection_DeleteRemovesEntry(t *testing.T) {
	col := loaded(t, newFakeBackend(models.Category{ID: 1, Name: "Florales"}, models.Category{ID: 2, Name: "Cítricos"}))

	require.NoError(t, col.Delete(context.Background(), 1))
	snap := col.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(2), snap[0].ID)
}

func TestCollection_DeleteMissingLeavesStateUntouched(t *testing.T) {
	col := loaded(t, newFakeBackend(models.Category{ID: 1, Name: "Florales"}))
	before := col.Snapshot()

	var err error
	require.NotPanics(t, func() {
		err = col.Delete(context.Background(), 42)
	})
	require.Error(t, err)
	assert.True(t, utils.IsNotFoundError(err))
	assert.Equal(t, before, col.Snapshot())
}

func TestCollection_FailureLeavesStateUntouched(t *testing.T) {
	backend := newFakeBackend(models.Category{ID: 1, Name: "Florales"})
	col := loaded(t, backend)
	before := col.Snapshot()
	backend.fail = errors.New("connection reset")

	_, err := col.Create(context.Background(), models.Category{Name: "Nueva"})
	require.Error(t, err)
	_, err = col.Update(context.Background(), 1, models.Category{Name: "Otra"})
	require.Error(t, err)
	require.Error(t, col.Delete(context.Background(), 1))

	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	assert.Equal(t, before, col.Snapshot())
}

func TestCollection_ValidationStopsBeforeBackend(t *testing.T) {
	backend := newFakeBackend()
	col := NewCollection(Categories, backend)

	_, err := col.Create(context.Background(), models.Category{Name: "   "})
	require.Error(t, err)
	assert.True(t, utils.IsValidationError(err))
	assert.Equal(t, 0, backend.calls)
	assert.Empty(t, col.Snapshot())
}

func TestCollection_RejectsInvalidID(t *testing.T) {
	backend := newFakeBackend()
	col := NewCollection(Categories, backend)

	_, err := col.Update(context.Background(), 0, models.Category{Name: "x"})
	assert.True(t, utils.IsBadRequestError(err))
	assert.True(t, utils.IsBadRequestError(col.Delete(context.Background(), -1)))
	assert.Equal(t, 0, backend.calls)
}

func TestOffersDescriptor(t *testing.T) {
	valid := models.Offer{ProductID: 3, Kind: models.DiscountPercentage, Value: decimal.NewFromInt(20)}
	require.NoError(t, Offers.Validate(&valid))

	tooMuch := valid
	tooMuch.Value = decimal.NewFromInt(120)
	assert.Error(t, Offers.Validate(&tooMuch))

	unknown := valid
	unknown.Kind = "BOGO"
	assert.Error(t, Offers.Validate(&unknown))
}

func TestUsersDescriptorDefaultsRole(t *testing.T) {
	u := models.UserPayload{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, Users.Validate(&u))
	assert.Equal(t, models.RoleUser, u.Role)

	u.Role = "ROOT"
	assert.Error(t, Users.Validate(&u))
}
