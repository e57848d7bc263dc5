package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-engine/internal/usecase"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// searchProducts
//
//	@Summary		Поиск товаров по каталогу
//	@Description	Ранжированная выдача по фрагменту артикула, имени или описания
//	@Tags			products
//	@Produce		json
//	@Param			q		query		string	true	"Поисковый запрос"
//	@Param			limit	query		int		false	"Максимум результатов (по умолчанию 20)"
//	@Success		200		{object}	usecase.SearchRes
//	@Failure		400		{object}	ErrorResponse	"Пустой запрос"
//	@Router			/products/search [get]
func (h *CatalogHandler) searchProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.catalogUsecase.Search(r.Context(), &usecase.SearchReq{
		Query: r.URL.Query().Get("q"),
		Limit: limit,
	})
	if err != nil {
		h.logger.Warnf("search failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// getProduct
//
//	@Summary	Точный поиск товара по артикулу
//	@Tags		products
//	@Produce	json
//	@Param		code	path		string	true	"Артикул товара"
//	@Success	200		{object}	usecase.ProductInfo
//	@Failure	404		{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{code} [get]
func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalogUsecase.GetProduct(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// suggestProducts
//
//	@Summary		Подсказки «возможно, вы имели в виду»
//	@Description	Кандидаты по фрагменту артикула или имени; совпадение по артикулу ранжируется выше
//	@Tags			products
//	@Produce		json
//	@Param			q		query		string	true	"Фрагмент артикула или имени"
//	@Param			limit	query		int		false	"Максимум результатов"
//	@Success		200		{object}	usecase.SearchRes
//	@Router			/products/suggestions [get]
func (h *CatalogHandler) suggestProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.catalogUsecase.Suggestions(r.Context(), &usecase.SearchReq{
		Query: r.URL.Query().Get("q"),
		Limit: limit,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// listCategories
//
//	@Summary	Список категорий каталога
//	@Tags		categories
//	@Produce	json
//	@Success	200	{array}	usecase.CategoryInfo
//	@Router		/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalogUsecase.Categories(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// categoryProducts
//
//	@Summary	Товары одной категории
//	@Tags		categories
//	@Produce	json
//	@Param		code	path		string	true	"Код категории"
//	@Param		limit	query		int		false	"Максимум результатов"
//	@Success	200		{array}		usecase.ProductInfo
//	@Router		/categories/{code}/products [get]
func (h *CatalogHandler) categoryProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimitQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.catalogUsecase.ProductsByCategory(r.Context(), &usecase.CategoryProductsReq{
		Code:  chi.URLParam(r, "code"),
		Limit: limit,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

// engineStats
//
//	@Summary	Показатели движка: каталог, кэш, ограничитель
//	@Tags		stats
//	@Produce	json
//	@Success	200	{object}	usecase.StatsRes
//	@Router		/stats [get]
func (h *CatalogHandler) engineStats(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalogUsecase.Stats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}

func (h *CatalogHandler) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{
		"status":         "ok",
		"catalog_loaded": h.catalogUsecase.Ready(r.Context()),
	}

	if !h.catalogUsecase.Ready(r.Context()) {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}

	WriteSuccess(w, status, body)
}
