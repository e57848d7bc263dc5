// Package catalog хранит загруженный из файла каталог товаров
// как неизменяемый снапшот в памяти.
package catalog

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/DRSN-tech/catalog-engine/internal/cfg"
	"github.com/DRSN-tech/catalog-engine/internal/domain"
	"github.com/DRSN-tech/catalog-engine/pkg/e"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/shopspring/decimal"
)

// lowStockThreshold — граница, ниже которой остаток считается низким (для статистики).
const lowStockThreshold = 10

// Stats — агрегированные показатели каталога для health-отчетности.
type Stats struct {
	TotalProducts int             `json:"total_products"`
	OutOfStock    int             `json:"out_of_stock"`
	LowStock      int             `json:"low_stock"`
	InStock       int             `json:"in_stock"`
	AveragePrice  decimal.Decimal `json:"average_price"`
}

// Store загружает файл каталога ровно один раз и обслуживает запросы
// по построенному индексу. После завершения загрузки состояние не меняется,
// поэтому все чтения свободны от блокировок.
type Store struct {
	cfg    *cfg.CatalogCfg
	logger logger.Logger

	loadOnce sync.Once
	loadErr  error
	loaded   atomic.Bool

	byCode     map[string]*domain.Product // ключ — артикул в нижнем регистре
	ordered    []*domain.Product          // порядок следования записей в файле
	categories []domain.Category          // дедуплицированы по коду, отсортированы
}

func NewStore(cfg *cfg.CatalogCfg, logger logger.Logger) *Store {
	return &Store{
		cfg:    cfg,
		logger: logger,
		byCode: make(map[string]*domain.Product),
	}
}

// EnsureLoaded лениво выполняет загрузку каталога. При конкурентных вызовах
// разбор файла выполняется ровно один раз; все вызывающие получают общий результат.
func (s *Store) EnsureLoaded() error {
	s.loadOnce.Do(func() {
		s.loadErr = s.load()
		if s.loadErr == nil {
			s.loaded.Store(true)
		}
	})

	return s.loadErr
}

// Loaded сообщает, завершилась ли загрузка успешно.
func (s *Store) Loaded() bool {
	return s.loaded.Load()
}

// FindByCode выполняет точный поиск по артикулу без учета регистра.
// Возвращает копию товара, чтобы вызывающий не мог изменить состояние хранилища.
func (s *Store) FindByCode(code string) (*domain.Product, error) {
	if err := s.EnsureLoaded(); err != nil {
		return nil, err
	}

	p, ok := s.byCode[strings.ToLower(code)]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	return cloneProduct(p), nil
}

// AllProducts возвращает защитную копию всех товаров в порядке загрузки.
func (s *Store) AllProducts() ([]domain.Product, error) {
	if err := s.EnsureLoaded(); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(s.ordered))
	for _, p := range s.ordered {
		products = append(products, *cloneProduct(p))
	}

	return products, nil
}

// ByCategory возвращает товары категории, не более limit штук.
func (s *Store) ByCategory(code string, limit int) ([]domain.Product, error) {
	const defaultLimit = 50

	if err := s.EnsureLoaded(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultLimit
	}

	code = strings.ToUpper(code)

	products := make([]domain.Product, 0)
	for _, p := range s.ordered {
		if p.Category.Code != code {
			continue
		}

		products = append(products, *cloneProduct(p))
		if len(products) >= limit {
			break
		}
	}

	return products, nil
}

// Categories возвращает все категории каталога, отсортированные по коду.
func (s *Store) Categories() ([]domain.Category, error) {
	if err := s.EnsureLoaded(); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, len(s.categories))
	copy(categories, s.categories)

	return categories, nil
}

// Stats вычисляет агрегированные показатели каталога по требованию.
func (s *Store) Stats() (Stats, error) {
	if err := s.EnsureLoaded(); err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalProducts: len(s.ordered),
		AveragePrice:  decimal.Zero,
	}

	sum := decimal.Zero
	for _, p := range s.ordered {
		sum = sum.Add(p.Price)

		switch {
		case p.Stock == 0:
			stats.OutOfStock++
		case p.Stock < lowStockThreshold:
			stats.LowStock++
		default:
			stats.InStock++
		}
	}

	if stats.TotalProducts > 0 {
		stats.AveragePrice = sum.DivRound(decimal.NewFromInt(int64(stats.TotalProducts)), 2)
	}

	return stats, nil
}

// publish фиксирует результат разбора. Вызывается один раз из load.
func (s *Store) publish(products []*domain.Product, categories map[string]domain.Category) {
	s.ordered = products

	s.byCode = make(map[string]*domain.Product, len(products))
	for _, p := range products {
		s.byCode[strings.ToLower(p.Code)] = p
	}

	s.categories = make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		s.categories = append(s.categories, c)
	}
	sort.Slice(s.categories, func(i, j int) bool {
		return s.categories[i].Code < s.categories[j].Code
	})
}

func cloneProduct(p *domain.Product) *domain.Product {
	cp := *p
	cp.Tags = append([]string(nil), p.Tags...)
	return &cp
}
