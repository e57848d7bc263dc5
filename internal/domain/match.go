package domain

// MatchKind обозначает правило, по которому товар совпал с запросом.
type MatchKind string

const (
	MatchExactCode      MatchKind = "exact_code"
	MatchPartialCode    MatchKind = "partial_code"
	MatchNameSubstring  MatchKind = "name_substring"
	MatchDescrSubstring MatchKind = "description_substring"
)

// MatchCandidate — кандидат совпадения в рамках одного поискового запроса.
// Не сохраняется; живет только внутри вызова поиска.
type MatchCandidate struct {
	Product    *Product
	Confidence float64 // [0, 1]
	Kind       MatchKind
}
