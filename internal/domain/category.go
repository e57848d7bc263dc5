package domain

import "strings"

// Category описывает категорию товара, выводимую из префикса артикула.
type Category struct {
	Code       string
	Name       string
	ParentCode string
}

func NewCategory(code, name string) *Category {
	return &Category{
		Code: code,
		Name: name,
	}
}

// CategoryCodeOf возвращает код категории — префикс артикула до первого разделителя.
// Для артикула без разделителя категорией считается весь артикул.
func CategoryCodeOf(productCode string) string {
	if idx := strings.IndexAny(productCode, "-_."); idx > 0 {
		return strings.ToUpper(productCode[:idx])
	}

	return strings.ToUpper(productCode)
}
