// Package validator проверяет строку заказа на покупаемость:
// разрешился ли артикул, достаточен ли остаток, соблюден ли минимальный
// объем заказа. Негативные результаты — обычные значения вердикта,
// а не ошибки; они отдаются клиенту напрямую.
package validator

import (
	"fmt"

	"github.com/DRSN-tech/catalog-engine/internal/domain"
	"github.com/DRSN-tech/catalog-engine/internal/matcher"
	"github.com/DRSN-tech/catalog-engine/pkg/e"
)

// suggestionLimit — число подсказок «возможно, вы имели в виду» для неизвестного артикула.
const suggestionLimit = 3

// Validate формирует вердикт для одной строки заказа.
// product — результат разрешения артикула (nil, если артикул не найден),
// snapshot — полный каталог для построения подсказок.
// Отсутствующее или неположительное количество — ошибка вызывающего,
// проверяется до любого обращения к каталогу.
//
// Порядок проверок фиксирован: артикул не найден, нет на складе,
// недостаточный остаток, ниже минимального объема заказа. Проверки остатка
// и минимального объема независимы и могут сработать одновременно.
func Validate(snapshot []domain.Product, product *domain.Product, code string, quantity int) (*domain.ValidationOutcome, error) {
	if quantity < 1 {
		return nil, e.ErrQuantityRequired
	}

	outcome := domain.NewValidationOutcome(product)

	if product == nil {
		outcome.AddIssue("SKU not found")
		for _, c := range matcher.Suggest(snapshot, code, suggestionLimit) {
			outcome.AddSuggestion(fmt.Sprintf("did you mean %q (%s)?", c.Product.Code, c.Product.Name))
		}

		return outcome, nil
	}

	switch {
	case product.Stock == 0:
		outcome.AddIssue("out of stock")
	case quantity > product.Stock:
		outcome.AddIssue(fmt.Sprintf("insufficient stock (%d requested, %d available)", quantity, product.Stock))
		outcome.AddSuggestion(fmt.Sprintf("reduce quantity to %d", product.Stock))
	}

	if quantity < product.MinOrderQty {
		outcome.AddIssue(fmt.Sprintf("below minimum order quantity (%d < %d)", quantity, product.MinOrderQty))
		outcome.AddSuggestion(fmt.Sprintf("increase to at least %d", product.MinOrderQty))
	}

	return outcome, nil
}
