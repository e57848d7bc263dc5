package matcher

import (
	"testing"

	"github.com/DRSN-tech/catalog-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureProducts() []domain.Product {
	mk := func(code, name, description string) domain.Product {
		return domain.Product{
			Code:        code,
			Name:        name,
			Price:       decimal.NewFromInt(100),
			Stock:       10,
			MinOrderQty: 1,
			Description: description,
		}
	}

	return []domain.Product{
		mk("DSK-0001", "Desk Oak", "Solid oak office desk"),
		mk("DSK-0002", "Desk Walnut", "Walnut veneer desk"),
		mk("CHR-0001", "Office Chair", "Mesh back chair for the office"),
		mk("LMP-0001", "Desk Lamp", "LED lamp for any desk"),
		mk("ACC-0001", "Monitor Stand", "Bamboo stand, fits on a desk"),
	}
}

func TestSearch_ExactCodeOutranksEverything(t *testing.T) {
	results := Search(fixtureProducts(), "DSK-0001", 0)

	require.NotEmpty(t, results)
	assert.Equal(t, "DSK-0001", results[0].Product.Code)
	assert.Equal(t, 1.0, results[0].Confidence)
	assert.Equal(t, domain.MatchExactCode, results[0].Kind)

	for _, c := range results[1:] {
		assert.Less(t, c.Confidence, 1.0)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	lower := Search(fixtureProducts(), "dsk-0001", 0)
	upper := Search(fixtureProducts(), "DSK-0001", 0)

	require.NotEmpty(t, lower)
	assert.Equal(t, 1.0, lower[0].Confidence)
	assert.Equal(t, lower[0].Product.Code, upper[0].Product.Code)
}

func TestSearch_ConfidenceTiers(t *testing.T) {
	products := fixtureProducts()

	// Вхождение в артикул
	byCode := Search(products, "DSK", 0)
	require.NotEmpty(t, byCode)
	assert.Equal(t, 0.8, byCode[0].Confidence)
	assert.Equal(t, domain.MatchPartialCode, byCode[0].Kind)

	// Вхождение в имя
	byName := Search(products, "chair", 0)
	require.Len(t, byName, 1)
	assert.Equal(t, 0.6, byName[0].Confidence)
	assert.Equal(t, domain.MatchNameSubstring, byName[0].Kind)

	// Вхождение только в описание
	byDescr := Search(products, "bamboo", 0)
	require.Len(t, byDescr, 1)
	assert.Equal(t, 0.4, byDescr[0].Confidence)
	assert.Equal(t, domain.MatchDescrSubstring, byDescr[0].Kind)
}

func TestSearch_BestRuleWins(t *testing.T) {
	// "desk" входит и в имя, и в описание DSK-0001 — берется лучшая оценка (имя).
	results := Search(fixtureProducts(), "desk", 0)

	require.NotEmpty(t, results)
	for _, c := range results {
		if c.Product.Code == "DSK-0001" {
			assert.Equal(t, 0.6, c.Confidence)
			assert.Equal(t, domain.MatchNameSubstring, c.Kind)
			return
		}
	}
	t.Fatal("DSK-0001 not found in results")
}

func TestSearch_TiesKeepCatalogOrder(t *testing.T) {
	results := Search(fixtureProducts(), "DSK", 0)

	require.Len(t, results, 2)
	assert.Equal(t, "DSK-0001", results[0].Product.Code)
	assert.Equal(t, "DSK-0002", results[1].Product.Code)
}

func TestSearch_EmptyQuery(t *testing.T) {
	assert.Empty(t, Search(fixtureProducts(), "", 0))
}

func TestSearch_NoMatches(t *testing.T) {
	assert.Empty(t, Search(fixtureProducts(), "query longer than any product field by far", 0))
	assert.Empty(t, Search(fixtureProducts(), "XXX-9999", 0))
}

func TestSearch_LimitTruncates(t *testing.T) {
	results := Search(fixtureProducts(), "desk", 2)
	assert.Len(t, results, 2)
}

func TestSearch_Deterministic(t *testing.T) {
	first := Search(fixtureProducts(), "desk", 0)
	second := Search(fixtureProducts(), "desk", 0)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Product.Code, second[i].Product.Code)
		assert.Equal(t, first[i].Confidence, second[i].Confidence)
	}
}

func TestSuggest_CodeMatchOutranksNameMatch(t *testing.T) {
	products := fixtureProducts()

	results := Suggest(products, "lmp", 0)
	require.Len(t, results, 1)
	assert.Equal(t, "LMP-0001", results[0].Product.Code)

	// Смешанный случай: один товар совпадает артикулом, другой — именем.
	// Совпадение по артикулу впереди независимо от лексического порядка имен.
	mixed := Suggest([]domain.Product{
		{Code: "AAA-0001", Name: "Key Holder"},
		{Code: "KEY-0001", Name: "Zeta Box"},
	}, "key", 0)
	require.Len(t, mixed, 2)
	assert.Equal(t, "KEY-0001", mixed[0].Product.Code, "code match ranks above name-only match")
	assert.Equal(t, "AAA-0001", mixed[1].Product.Code)
}

func TestSuggest_NameTiesLexical(t *testing.T) {
	products := []domain.Product{
		{Code: "AAA-0001", Name: "Zebra Stand"},
		{Code: "BBB-0001", Name: "Alpha Stand"},
	}

	results := Suggest(products, "stand", 0)
	require.Len(t, results, 2)
	assert.Equal(t, "Alpha Stand", results[0].Product.Name)
	assert.Equal(t, "Zebra Stand", results[1].Product.Name)
}

func TestSuggest_IgnoresDescription(t *testing.T) {
	// "bamboo" есть только в описании — подсказки по описанию не ищут.
	assert.Empty(t, Suggest(fixtureProducts(), "bamboo", 0))
}

func TestSuggest_EmptyQuery(t *testing.T) {
	assert.Empty(t, Suggest(fixtureProducts(), "", 0))
}
