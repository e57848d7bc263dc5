package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/catalog-engine/internal/usecase"
	"github.com/DRSN-tech/catalog-engine/pkg/e"
	"github.com/DRSN-tech/catalog-engine/pkg/logger"
)

type OrderHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewOrderHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// validateOrderBody принимает обе формы тела: заказ из нескольких строк
// или одну строку без обертки lines.
type validateOrderBody struct {
	Lines       []usecase.ValidateLineReq `json:"lines"`
	SKU         string                    `json:"sku"`
	Description string                    `json:"description"`
	Quantity    int                       `json:"quantity"`
}

// validateOrder
//
//	@Summary		Проверка извлеченного заказа по каталогу
//	@Description	Для каждой строки: разрешение артикула, остаток, минимальный объем заказа
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		validateOrderBody	true	"Строки заказа"
//	@Success		200		{object}	usecase.ValidateOrderRes
//	@Failure		400		{object}	ErrorResponse	"Отсутствует количество или пустой заказ"
//	@Router			/orders/validate [post]
func (h *OrderHandler) validateOrder(w http.ResponseWriter, r *http.Request) {
	var body validateOrderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.ErrStatusBadRequest)
		return
	}

	lines := body.Lines
	if len(lines) == 0 && (body.SKU != "" || body.Description != "" || body.Quantity != 0) {
		lines = []usecase.ValidateLineReq{{
			SKU:         body.SKU,
			Description: body.Description,
			Quantity:    body.Quantity,
		}}
	}

	res, err := h.catalogUsecase.ValidateOrder(r.Context(), &usecase.ValidateOrderReq{Lines: lines})
	if err != nil {
		h.logger.Warnf("order validation failed: %v", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, res)
}
