package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DRSN-tech/catalog-engine/internal/domain"
	"github.com/DRSN-tech/catalog-engine/pkg/e"
	"github.com/shopspring/decimal"
)

// requiredFields — минимальное число полей записи:
// артикул, имя, цена, остаток, минимальный объем заказа, описание.
const requiredFields = 6

// load разбирает файл каталога. Отсутствие или нечитаемость файла фатальны,
// битая запись пропускается с предупреждением, загрузка продолжается.
func (s *Store) load() error {
	f, err := os.Open(s.cfg.Path)
	if err != nil {
		s.logger.Errorf(err, "failed to open catalog file %s", s.cfg.Path)
		return e.Wrap(s.cfg.Path, e.ErrCatalogUnavailable)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = s.cfg.Delimiter
	reader.FieldsPerRecord = -1 // число полей проверяется построчно

	// Первая строка — заголовок
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			s.publish(nil, map[string]domain.Category{})
			s.logger.Warnf("catalog file %s is empty", s.cfg.Path)
			return nil
		}

		s.logger.Errorf(err, "failed to read catalog header")
		return e.Wrap(s.cfg.Path, e.ErrCatalogUnavailable)
	}

	var (
		products   []*domain.Product
		index      = make(map[string]int) // артикул в нижнем регистре -> позиция в products
		categories = make(map[string]domain.Category)
		skipped    int
		lineNo     = 1
	)

	for {
		lineNo++

		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logger.Warnf("line %d: %v: %v", lineNo, e.ErrMalformedRecord, err)
			skipped++
			continue
		}

		product, err := s.parseRecord(fields)
		if err != nil {
			s.logger.Warnf("line %d: %v: %v", lineNo, e.ErrMalformedRecord, err)
			skipped++
			continue
		}

		key := strings.ToLower(product.Code)
		if pos, ok := index[key]; ok {
			// Дубликат артикула: побеждает последняя запись. Считаем это
			// проблемой качества данных, а не штатной ситуацией.
			s.logger.Warnf("line %d: duplicate product code %s, later record wins", lineNo, product.Code)
			products[pos] = product
		} else {
			index[key] = len(products)
			products = append(products, product)
		}

		if _, ok := categories[product.Category.Code]; !ok {
			categories[product.Category.Code] = product.Category
		}
	}

	s.publish(products, categories)
	s.logger.Infof("catalog loaded: %d products, %d categories, %d records skipped",
		len(products), len(categories), skipped)

	return nil
}

// parseRecord превращает одну запись файла в товар.
func (s *Store) parseRecord(fields []string) (*domain.Product, error) {
	if len(fields) < requiredFields {
		return nil, fmt.Errorf("expected at least %d fields, got %d", requiredFields, len(fields))
	}

	code := strings.TrimSpace(fields[0])
	if code == "" {
		return nil, fmt.Errorf("empty product code")
	}

	name := strings.TrimSpace(fields[1])
	if name == "" {
		return nil, fmt.Errorf("empty product name")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", fields[2])
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("negative price %s", price)
	}

	stock, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil || stock < 0 {
		return nil, fmt.Errorf("invalid stock quantity %q", fields[3])
	}

	minOrderQty, err := parseMinOrderQty(fields[4])
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(fields[5])

	product := domain.NewProduct(code, name, price, stock, minOrderQty, description)
	product.Category = s.resolveCategory(code)
	product.Tags = extractTags(name, description)

	return product, nil
}

// parseMinOrderQty разбирает минимальный объем заказа.
// Пустое поле означает значение по умолчанию (1).
func parseMinOrderQty(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}

	moq, err := strconv.Atoi(raw)
	if err != nil || moq < 1 {
		return 0, fmt.Errorf("invalid min order quantity %q", raw)
	}

	return moq, nil
}

// resolveCategory определяет категорию по префиксу артикула.
// Неизвестный префикс попадает в категорию Unknown.
func (s *Store) resolveCategory(productCode string) domain.Category {
	code := domain.CategoryCodeOf(productCode)

	name, ok := s.cfg.CategoryNames[code]
	if !ok {
		name = "Unknown"
	}

	return domain.Category{Code: code, Name: name}
}

// extractTags строит набор ключевых слов в нижнем регистре из имени и описания.
func extractTags(name, description string) []string {
	const minTagLen = 3

	seen := make(map[string]struct{})
	var tags []string

	for _, word := range strings.FieldsFunc(strings.ToLower(name+" "+description), isWordSeparator) {
		if len(word) < minTagLen {
			continue
		}

		if _, ok := seen[word]; ok {
			continue
		}

		seen[word] = struct{}{}
		tags = append(tags, word)
	}

	return tags
}

func isWordSeparator(r rune) bool {
	return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
}
