package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-engine/internal/catalog"
	"github.com/DRSN-tech/catalog-engine/internal/cfg"
	"github.com/DRSN-tech/catalog-engine/pkg/cache"
	"github.com/DRSN-tech/catalog-engine/pkg/e"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/DRSN-tech/catalog-engine/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `code,name,price,stock_quantity,min_order_quantity,description
DSK-0001,Desk Oak,249.99,5,2,"Solid oak office desk"
DSK-0002,Desk Walnut,289.99,12,1,Walnut veneer desk
CHR-0001,Office Chair Basic,89.90,40,1,Mesh back office chair
CHR-0002,Office Chair Ergo,219.00,0,1,Ergonomic chair with lumbar support
`

func newTestUC(t *testing.T) *CatalogUseCase {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))

	store := catalog.NewStore(&cfg.CatalogCfg{
		Path:      path,
		Delimiter: ',',
		CategoryNames: map[string]string{
			"DSK": "Desks",
			"CHR": "Chairs",
		},
	}, logger.NewNop())

	memo := cache.New[any](time.Minute, time.Hour, logger.NewNop())
	t.Cleanup(memo.Stop)

	return NewCatalogUC(store, memo, ratelimit.New(5, time.Second), logger.NewNop())
}

func TestSearch(t *testing.T) {
	uc := newTestUC(t)

	res, err := uc.Search(context.Background(), &SearchReq{Query: "DSK-0001"})
	require.NoError(t, err)

	require.NotZero(t, res.Total)
	assert.Equal(t, "DSK-0001", res.Matches[0].Product.Code)
	assert.Equal(t, 1.0, res.Matches[0].Confidence)
	assert.Equal(t, "Desks", res.Matches[0].Product.CategoryName)
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	uc := newTestUC(t)

	_, err := uc.Search(context.Background(), &SearchReq{Query: "   "})
	assert.ErrorIs(t, err, e.ErrQueryRequired)
}

func TestSearch_RepeatedQueryServedFromCache(t *testing.T) {
	uc := newTestUC(t)

	_, err := uc.Search(context.Background(), &SearchReq{Query: "desk"})
	require.NoError(t, err)

	before := uc.memo.Stats().Hits
	_, err = uc.Search(context.Background(), &SearchReq{Query: "desk"})
	require.NoError(t, err)

	assert.Greater(t, uc.memo.Stats().Hits, before)
}

func TestGetProduct(t *testing.T) {
	uc := newTestUC(t)

	info, err := uc.GetProduct(context.Background(), "chr-0001")
	require.NoError(t, err)
	assert.Equal(t, "CHR-0001", info.Code)
	assert.Equal(t, "Chairs", info.CategoryName)

	_, err = uc.GetProduct(context.Background(), "XXX-9999")
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	_, err = uc.GetProduct(context.Background(), "")
	assert.ErrorIs(t, err, e.ErrCodeRequired)
}

func TestValidateLine_ResolvedBySKU(t *testing.T) {
	uc := newTestUC(t)

	res, err := uc.ValidateLine(context.Background(), &ValidateLineReq{SKU: "DSK-0001", Quantity: 3})
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Empty(t, res.Issues)
	assert.Equal(t, 1.0, res.Confidence)
	require.NotNil(t, res.Product)
	assert.Equal(t, "DSK-0001", res.Product.Code)
}

func TestValidateLine_ResolvedByDescription(t *testing.T) {
	uc := newTestUC(t)

	// Артикул отсутствует, но описание однозначно указывает на товар.
	res, err := uc.ValidateLine(context.Background(), &ValidateLineReq{
		Description: "dsk-0002",
		Quantity:    2,
	})
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	require.NotNil(t, res.Product)
	assert.Equal(t, "DSK-0002", res.Product.Code)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestValidateLine_LowConfidenceNotAutoResolved(t *testing.T) {
	uc := newTestUC(t)

	// "walnut" дает лишь совпадение по имени (0.6) — ниже порога авторазрешения.
	res, err := uc.ValidateLine(context.Background(), &ValidateLineReq{
		Description: "walnut",
		Quantity:    1,
	})
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	assert.Nil(t, res.Product)
	assert.Contains(t, res.Issues, "SKU not found")
	assert.NotEmpty(t, res.Suggestions, "name overlap must produce did-you-mean suggestions")
}

func TestValidateLine_QuantityRequired(t *testing.T) {
	uc := newTestUC(t)

	_, err := uc.ValidateLine(context.Background(), &ValidateLineReq{SKU: "DSK-0001"})
	assert.ErrorIs(t, err, e.ErrQuantityRequired)
}

func TestValidateLine_Idempotent(t *testing.T) {
	uc := newTestUC(t)

	req := &ValidateLineReq{SKU: "DSK-0001", Quantity: 1}

	first, err := uc.ValidateLine(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.ValidateLine(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidateOrder(t *testing.T) {
	uc := newTestUC(t)

	res, err := uc.ValidateOrder(context.Background(), &ValidateOrderReq{
		Lines: []ValidateLineReq{
			{SKU: "DSK-0001", Quantity: 3},
			{SKU: "CHR-0002", Quantity: 1}, // нет на складе
		},
	})
	require.NoError(t, err)

	assert.False(t, res.IsValid, "one invalid line makes the order invalid")
	require.Len(t, res.Lines, 2)
	assert.True(t, res.Lines[0].IsValid)
	assert.False(t, res.Lines[1].IsValid)
	assert.Contains(t, res.Lines[1].Issues, "out of stock")
}

func TestValidateOrder_Empty(t *testing.T) {
	uc := newTestUC(t)

	_, err := uc.ValidateOrder(context.Background(), &ValidateOrderReq{})
	assert.ErrorIs(t, err, e.ErrEmptyOrder)
}

func TestSuggestions(t *testing.T) {
	uc := newTestUC(t)

	res, err := uc.Suggestions(context.Background(), &SearchReq{Query: "DSK-000", Limit: 3})
	require.NoError(t, err)

	require.Equal(t, 2, res.Total)
	assert.Equal(t, "DSK-0001", res.Matches[0].Product.Code)
	assert.Equal(t, "DSK-0002", res.Matches[1].Product.Code)
}

func TestCategories(t *testing.T) {
	uc := newTestUC(t)

	categories, err := uc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "CHR", categories[0].Code)
	assert.Equal(t, "DSK", categories[1].Code)
}

func TestProductsByCategory(t *testing.T) {
	uc := newTestUC(t)

	products, err := uc.ProductsByCategory(context.Background(), &CategoryProductsReq{Code: "chr"})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = uc.ProductsByCategory(context.Background(), &CategoryProductsReq{Code: ""})
	assert.ErrorIs(t, err, e.ErrCodeRequired)
}

func TestStats(t *testing.T) {
	uc := newTestUC(t)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Catalog.TotalProducts)
	assert.Equal(t, 1, stats.Catalog.OutOfStock)
	assert.Equal(t, 5, stats.RateLimit.Max)
	assert.Equal(t, 5, stats.RateLimit.Remaining)
	assert.Equal(t, 1, stats.RateLimit.WindowSeconds)
}

func TestReady(t *testing.T) {
	uc := newTestUC(t)

	assert.False(t, uc.Ready(context.Background()), "catalog is loaded lazily")

	_, err := uc.Stats(context.Background())
	require.NoError(t, err)

	assert.True(t, uc.Ready(context.Background()))
}
