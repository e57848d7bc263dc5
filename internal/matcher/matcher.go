// Package matcher ранжирует товары каталога по свободнотекстовому запросу
// и присваивает кандидатам оценку уверенности в диапазоне [0, 1].
// Все функции детерминированы и не имеют внутреннего состояния.
package matcher

import (
	"sort"
	"strings"

	"github.com/DRSN-tech/catalog-engine/internal/domain"
)

// DefaultLimit — лимит выдачи, если вызывающий его не задал.
const DefaultLimit = 20

// Оценки уверенности по правилам совпадения.
const (
	scoreExactCode   = 1.0
	scorePartialCode = 0.8
	scoreName        = 0.6
	scoreDescription = 0.4
)

// Search ранжирует товары по запросу. Для каждого товара берется лучшее
// из правил: точное совпадение артикула, вхождение в артикул, вхождение
// в имя, вхождение в описание. Кандидаты с нулевой оценкой отбрасываются.
// Порядок детерминирован: сортировка по убыванию уверенности стабильна,
// равные оценки сохраняют порядок следования товаров в каталоге.
func Search(products []domain.Product, query string, limit int) []domain.MatchCandidate {
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := strings.ToLower(query)
	if q == "" {
		return nil
	}

	var candidates []domain.MatchCandidate
	for i := range products {
		confidence, kind := scoreProduct(&products[i], q)
		if confidence == 0 {
			continue
		}

		candidates = append(candidates, domain.MatchCandidate{
			Product:    &products[i],
			Confidence: confidence,
			Kind:       kind,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates
}

// Suggest — поиск для восстановления «возможно, вы имели в виду».
// Совпадения ищутся только по артикулу и имени. Любое совпадение по артикулу
// ранжируется выше совпадения только по имени независимо от длины вхождения;
// оставшиеся связки разрешаются лексикографическим порядком имени товара.
func Suggest(products []domain.Product, query string, limit int) []domain.MatchCandidate {
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := strings.ToLower(query)
	if q == "" {
		return nil
	}

	var candidates []domain.MatchCandidate
	for i := range products {
		p := &products[i]

		codeLower := strings.ToLower(p.Code)
		nameLower := strings.ToLower(p.Name)

		switch {
		case codeLower == q:
			candidates = append(candidates, domain.MatchCandidate{
				Product: p, Confidence: scoreExactCode, Kind: domain.MatchExactCode,
			})
		case strings.Contains(codeLower, q):
			candidates = append(candidates, domain.MatchCandidate{
				Product: p, Confidence: scorePartialCode, Kind: domain.MatchPartialCode,
			})
		case strings.Contains(nameLower, q):
			candidates = append(candidates, domain.MatchCandidate{
				Product: p, Confidence: scoreName, Kind: domain.MatchNameSubstring,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		iCode := isCodeMatch(candidates[i].Kind)
		jCode := isCodeMatch(candidates[j].Kind)
		if iCode != jCode {
			return iCode
		}

		return candidates[i].Product.Name < candidates[j].Product.Name
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates
}

// scoreProduct возвращает лучшую оценку товара для запроса q (в нижнем регистре).
func scoreProduct(p *domain.Product, q string) (float64, domain.MatchKind) {
	codeLower := strings.ToLower(p.Code)

	if codeLower == q {
		return scoreExactCode, domain.MatchExactCode
	}
	if strings.Contains(codeLower, q) {
		return scorePartialCode, domain.MatchPartialCode
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return scoreName, domain.MatchNameSubstring
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return scoreDescription, domain.MatchDescrSubstring
	}

	return 0, ""
}

func isCodeMatch(kind domain.MatchKind) bool {
	return kind == domain.MatchExactCode || kind == domain.MatchPartialCode
}
