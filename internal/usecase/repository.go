package usecase

import (
	"time"

	"github.com/DRSN-tech/catalog-engine/internal/catalog"
	"github.com/DRSN-tech/catalog-engine/internal/domain"
)

type CatalogStore interface {
	EnsureLoaded() error
	Loaded() bool
	FindByCode(code string) (*domain.Product, error)
	AllProducts() ([]domain.Product, error)
	ByCategory(code string, limit int) ([]domain.Product, error)
	Categories() ([]domain.Category, error)
	Stats() (catalog.Stats, error)
}

type RateLimiter interface {
	Max() int
	Window() time.Duration
	Remaining(identity string) int
	ResetTime(identity string) time.Time
}
