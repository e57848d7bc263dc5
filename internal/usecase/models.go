package usecase

import (
	"time"

	"github.com/DRSN-tech/catalog-engine/internal/catalog"
	"github.com/DRSN-tech/catalog-engine/internal/domain"
	"github.com/DRSN-tech/catalog-engine/pkg/cache"
	"github.com/shopspring/decimal"
)

// SEARCH

// SearchReq — запрос поиска или подсказок по каталогу.
type SearchReq struct {
	Query string
	Limit int
}

// MatchInfo — один кандидат совпадения с оценкой уверенности.
type MatchInfo struct {
	Product    ProductInfo `json:"product"`
	Confidence float64     `json:"confidence"`
	Kind       string      `json:"match_kind"`
}

// SearchRes — ранжированная выдача поиска.
type SearchRes struct {
	Matches []MatchInfo `json:"matches"`
	Total   int         `json:"total"`
}

// ProductInfo — DTO товара для внешнего использования.
type ProductInfo struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock_quantity"`
	MinOrderQty  int             `json:"min_order_quantity"`
	Description  string          `json:"description"`
	CategoryCode string          `json:"category_code"`
	CategoryName string          `json:"category_name"`
}

// VALIDATION

// ValidateLineReq — строка заказа, извлеченная из письма: артикул и количество
// обязательны для проверки; описание используется для разрешения артикула,
// когда он отсутствует или не найден.
type ValidateLineReq struct {
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

// ValidateLineRes — вердикт по одной строке заказа.
type ValidateLineRes struct {
	IsValid     bool         `json:"is_valid"`
	Product     *ProductInfo `json:"product,omitempty"`
	Confidence  float64      `json:"confidence,omitempty"`
	Issues      []string     `json:"issues"`
	Suggestions []string     `json:"suggestions"`
}

// ValidateOrderReq — запрос проверки всех строк извлеченного заказа.
type ValidateOrderReq struct {
	Lines []ValidateLineReq `json:"lines"`
}

// ValidateOrderRes — повердиктный результат: заказ валиден, только если
// валидна каждая его строка.
type ValidateOrderRes struct {
	IsValid bool              `json:"is_valid"`
	Lines   []ValidateLineRes `json:"lines"`
}

// CATEGORIES / STATS

// CategoryInfo — DTO категории.
type CategoryInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CategoryProductsReq — запрос товаров одной категории.
type CategoryProductsReq struct {
	Code  string
	Limit int
}

// RateLimitInfo — снимок состояния ограничителя для отчетности.
type RateLimitInfo struct {
	Max           int       `json:"max"`
	Remaining     int       `json:"remaining"`
	ResetAt       time.Time `json:"reset_at"`
	WindowSeconds int       `json:"window_seconds"`
}

// StatsRes — сводные показатели движка для health-отчетности.
type StatsRes struct {
	Catalog   catalog.Stats `json:"catalog"`
	Cache     cache.Stats   `json:"cache"`
	RateLimit RateLimitInfo `json:"rate_limit"`
}

// MAPPERS

func NewProductInfo(p *domain.Product) ProductInfo {
	return ProductInfo{
		Code:         p.Code,
		Name:         p.Name,
		Price:        p.Price,
		Stock:        p.Stock,
		MinOrderQty:  p.MinOrderQty,
		Description:  p.Description,
		CategoryCode: p.Category.Code,
		CategoryName: p.Category.Name,
	}
}

func NewMatchInfo(c domain.MatchCandidate) MatchInfo {
	return MatchInfo{
		Product:    NewProductInfo(c.Product),
		Confidence: c.Confidence,
		Kind:       string(c.Kind),
	}
}

func NewSearchRes(candidates []domain.MatchCandidate) *SearchRes {
	matches := make([]MatchInfo, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, NewMatchInfo(c))
	}

	return &SearchRes{
		Matches: matches,
		Total:   len(matches),
	}
}

func NewCategoryInfo(c domain.Category) CategoryInfo {
	return CategoryInfo{
		Code: c.Code,
		Name: c.Name,
	}
}

func NewValidateLineRes(outcome *domain.ValidationOutcome, confidence float64) *ValidateLineRes {
	res := &ValidateLineRes{
		IsValid:     outcome.IsValid,
		Confidence:  confidence,
		Issues:      outcome.Issues,
		Suggestions: outcome.Suggestions,
	}
	if res.Issues == nil {
		res.Issues = []string{}
	}
	if res.Suggestions == nil {
		res.Suggestions = []string{}
	}

	if outcome.Product != nil {
		info := NewProductInfo(outcome.Product)
		res.Product = &info
	}

	return res
}
