package e

import "fmt"

var (
	// Ошибки загрузки каталога
	ErrCatalogUnavailable = fmt.Errorf("catalog source unavailable")
	ErrCatalogNotLoaded   = fmt.Errorf("catalog not loaded")
	ErrMalformedRecord    = fmt.Errorf("malformed catalog record")

	// Логические результаты запросов (не исключения — отдаются клиенту как есть)
	ErrProductNotFound = fmt.Errorf("product not found")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrQuantityRequired = fmt.Errorf("quantity is required and must be positive")
	ErrQueryRequired    = fmt.Errorf("search query is required")
	ErrCodeRequired     = fmt.Errorf("product code is required")
	ErrInvalidLimit     = fmt.Errorf("limit must be positive")
	ErrEmptyOrder       = fmt.Errorf("order contains no lines")

	// 429 Too Many Requests
	ErrRateLimited = fmt.Errorf("rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
