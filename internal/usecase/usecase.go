package usecase

import "context"

type CatalogUC interface {
	Search(ctx context.Context, req *SearchReq) (*SearchRes, error)
	GetProduct(ctx context.Context, code string) (*ProductInfo, error)
	Suggestions(ctx context.Context, req *SearchReq) (*SearchRes, error)
	ValidateLine(ctx context.Context, req *ValidateLineReq) (*ValidateLineRes, error)
	ValidateOrder(ctx context.Context, req *ValidateOrderReq) (*ValidateOrderRes, error)
	Categories(ctx context.Context) ([]CategoryInfo, error)
	ProductsByCategory(ctx context.Context, req *CategoryProductsReq) ([]ProductInfo, error)
	Stats(ctx context.Context) (*StatsRes, error)
	Ready(ctx context.Context) bool
}
