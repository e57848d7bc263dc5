package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/DRSN-tech/catalog-engine/internal/catalog"
	"github.com/DRSN-tech/catalog-engine/internal/domain"
	"github.com/DRSN-tech/catalog-engine/internal/matcher"
	"github.com/DRSN-tech/catalog-engine/internal/validator"
	"github.com/DRSN-tech/catalog-engine/pkg/cache"
	"github.com/DRSN-tech/catalog-engine/pkg/e"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/DRSN-tech/catalog-engine/pkg/ratelimit"
)

// autoResolveConfidence — минимальная уверенность, при которой лучший кандидат
// поиска по описанию принимается как разрешенный артикул без участия человека.
const autoResolveConfidence = 0.8

// CatalogUseCase реализует бизнес-логику сопоставления и проверки строк заказа
// поверх неизменяемого снапшота каталога.
type CatalogUseCase struct {
	store   CatalogStore
	memo    *cache.Cache[any]
	limiter RateLimiter
	logger  logger.Logger
}

func NewCatalogUC(store CatalogStore, memo *cache.Cache[any], limiter RateLimiter, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		store:   store,
		memo:    memo,
		limiter: limiter,
		logger:  logger,
	}
}

// Search возвращает ранжированную выдачу по свободнотекстовому запросу.
// Повторные запросы с теми же аргументами обслуживаются из кэша.
func (c *CatalogUseCase) Search(ctx context.Context, req *SearchReq) (*SearchRes, error) {
	const op = "CatalogUseCase.Search"

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, e.ErrQueryRequired
	}

	key := fmt.Sprintf("search:%s:%d", strings.ToLower(query), req.Limit)
	res, err := c.memo.GetOrCompute(key, func() (any, error) {
		products, err := c.store.AllProducts()
		if err != nil {
			return nil, err
		}

		return NewSearchRes(matcher.Search(products, query, req.Limit)), nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res.(*SearchRes), nil
}

// GetProduct выполняет точный поиск по артикулу. Промах — штатный негативный
// результат (ErrProductNotFound), а не сбой.
func (c *CatalogUseCase) GetProduct(ctx context.Context, code string) (*ProductInfo, error) {
	if strings.TrimSpace(code) == "" {
		return nil, e.ErrCodeRequired
	}

	product, err := c.store.FindByCode(code)
	if err != nil {
		return nil, err
	}

	info := NewProductInfo(product)
	return &info, nil
}

// Suggestions возвращает кандидатов «возможно, вы имели в виду» по фрагменту
// артикула или имени. Ранжирование отличается от общего поиска.
func (c *CatalogUseCase) Suggestions(ctx context.Context, req *SearchReq) (*SearchRes, error) {
	const op = "CatalogUseCase.Suggestions"

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, e.ErrQueryRequired
	}

	products, err := c.store.AllProducts()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewSearchRes(matcher.Suggest(products, query, req.Limit)), nil
}

// ValidateLine проверяет одну извлеченную из письма строку заказа.
// Отсутствующее количество отклоняется до любого обращения к каталогу.
func (c *CatalogUseCase) ValidateLine(ctx context.Context, req *ValidateLineReq) (*ValidateLineRes, error) {
	const op = "CatalogUseCase.ValidateLine"

	if req.Quantity < 1 {
		return nil, e.ErrQuantityRequired
	}

	products, err := c.store.AllProducts()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, confidence := c.resolve(req, products)

	attempted := req.SKU
	if attempted == "" {
		attempted = req.Description
	}

	outcome, err := validator.Validate(products, product, attempted, req.Quantity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewValidateLineRes(outcome, confidence), nil
}

// ValidateOrder проверяет все строки извлеченного заказа.
// Заказ валиден, только если валидна каждая строка.
func (c *CatalogUseCase) ValidateOrder(ctx context.Context, req *ValidateOrderReq) (*ValidateOrderRes, error) {
	const op = "CatalogUseCase.ValidateOrder"

	if len(req.Lines) == 0 {
		return nil, e.ErrEmptyOrder
	}

	res := &ValidateOrderRes{
		IsValid: true,
		Lines:   make([]ValidateLineRes, 0, len(req.Lines)),
	}

	for i := range req.Lines {
		line, err := c.ValidateLine(ctx, &req.Lines[i])
		if err != nil {
			return nil, e.Wrap(fmt.Sprintf("%s: line %d", op, i), err)
		}

		if !line.IsValid {
			res.IsValid = false
		}

		res.Lines = append(res.Lines, *line)
	}

	return res, nil
}

// Categories возвращает все категории каталога.
func (c *CatalogUseCase) Categories(ctx context.Context) ([]CategoryInfo, error) {
	categories, err := c.store.Categories()
	if err != nil {
		return nil, err
	}

	infos := make([]CategoryInfo, 0, len(categories))
	for _, cat := range categories {
		infos = append(infos, NewCategoryInfo(cat))
	}

	return infos, nil
}

// ProductsByCategory возвращает товары категории. Повторные запросы с теми же
// аргументами — частый случай, поэтому результат кэшируется.
func (c *CatalogUseCase) ProductsByCategory(ctx context.Context, req *CategoryProductsReq) ([]ProductInfo, error) {
	const op = "CatalogUseCase.ProductsByCategory"

	if strings.TrimSpace(req.Code) == "" {
		return nil, e.ErrCodeRequired
	}

	key := fmt.Sprintf("category:%s:%d", strings.ToUpper(req.Code), req.Limit)
	res, err := c.memo.GetOrCompute(key, func() (any, error) {
		products, err := c.store.ByCategory(req.Code, req.Limit)
		if err != nil {
			return nil, err
		}

		infos := make([]ProductInfo, 0, len(products))
		for i := range products {
			infos = append(infos, NewProductInfo(&products[i]))
		}

		return infos, nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res.([]ProductInfo), nil
}

// Stats собирает показатели каталога, кэша и ограничителя для health-отчетности.
func (c *CatalogUseCase) Stats(ctx context.Context) (*StatsRes, error) {
	const op = "CatalogUseCase.Stats"

	stats, err := c.memo.GetOrCompute("stats", func() (any, error) {
		return c.store.Stats()
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return &StatsRes{
		Catalog: stats.(catalog.Stats),
		Cache:   c.memo.Stats(),
		RateLimit: RateLimitInfo{
			Max:           c.limiter.Max(),
			Remaining:     c.limiter.Remaining(ratelimit.DefaultIdentity),
			ResetAt:       c.limiter.ResetTime(ratelimit.DefaultIdentity),
			WindowSeconds: int(c.limiter.Window().Seconds()),
		},
	}, nil
}

// Ready сообщает, загружен ли каталог (для liveness-проверки).
func (c *CatalogUseCase) Ready(ctx context.Context) bool {
	return c.store.Loaded()
}

// resolve определяет товар по строке заказа: сначала точный поиск по артикулу,
// затем, если артикул отсутствует или не найден, лучший кандидат поиска
// по описанию с достаточной уверенностью.
func (c *CatalogUseCase) resolve(req *ValidateLineReq, products []domain.Product) (*domain.Product, float64) {
	if req.SKU != "" {
		if product, err := c.store.FindByCode(req.SKU); err == nil {
			return product, 1.0
		}
	}

	if req.Description != "" {
		candidates := matcher.Search(products, req.Description, 1)
		if len(candidates) > 0 && candidates[0].Confidence >= autoResolveConfidence {
			c.logger.Debugf("resolved %q to %s with confidence %.2f",
				req.Description, candidates[0].Product.Code, candidates[0].Confidence)
			return candidates[0].Product, candidates[0].Confidence
		}
	}

	return nil, 0
}
