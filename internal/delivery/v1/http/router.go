package http

import (
	_ "github.com/DRSN-tech/catalog-engine/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/catalog-engine/internal/usecase"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/DRSN-tech/catalog-engine/pkg/ratelimit"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router  *chi.Mux
	limiter *ratelimit.Limiter
	logger  logger.Logger
}

func NewRouter(router *chi.Mux, limiter *ratelimit.Limiter, logger logger.Logger) *Router {
	return &Router{router: router, limiter: limiter, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC) {
	catalogHandler := NewCatalogHandler(catalogUC, r.logger)
	orderHandler := NewOrderHandler(catalogUC, r.logger)

	r.router.Use(RequestID)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Get("/healthz", catalogHandler.health)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(RateLimit(r.limiter, r.logger))

		registerCatalogRoutes(v1, catalogHandler)
		registerOrderRoutes(v1, orderHandler)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/search", h.searchProducts)
		pr.Get("/suggestions", h.suggestProducts)
		pr.Get("/{code}", h.getProduct)
	})

	router.Route("/categories", func(cat chi.Router) {
		cat.Get("/", h.listCategories)
		cat.Get("/{code}/products", h.categoryProducts)
	})

	router.Get("/stats", h.engineStats)
}

func registerOrderRoutes(router chi.Router, h *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Post("/validate", h.validateOrder)
	})
}
