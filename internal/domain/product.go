package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога. Создается один раз при загрузке
// каталога и после публикации снапшота не изменяется.
type Product struct {
	Code        string          // уникальный артикул (SKU)
	Name        string
	Price       decimal.Decimal // неотрицательная цена
	Stock       int             // остаток на складе, >= 0
	MinOrderQty int             // минимальный объем заказа, >= 1
	Description string
	Category    Category
	Tags        []string // нормализованные ключевые слова из имени и описания
}

func NewProduct(code, name string, price decimal.Decimal, stock, minOrderQty int, description string) *Product {
	if minOrderQty < 1 {
		minOrderQty = 1
	}

	return &Product{
		Code:        code,
		Name:        name,
		Price:       price,
		Stock:       stock,
		MinOrderQty: minOrderQty,
		Description: description,
	}
}
