package domain

// ValidationOutcome — вердикт проверки одной строки заказа.
// Формируется заново на каждый вызов валидации.
type ValidationOutcome struct {
	IsValid     bool
	Product     *Product // nil, если артикул не разрешен
	Issues      []string
	Suggestions []string
}

func NewValidationOutcome(product *Product) *ValidationOutcome {
	return &ValidationOutcome{
		IsValid: true,
		Product: product,
	}
}

// AddIssue добавляет проблему и переводит вердикт в невалидный.
func (v *ValidationOutcome) AddIssue(issue string) {
	v.IsValid = false
	v.Issues = append(v.Issues, issue)
}

func (v *ValidationOutcome) AddSuggestion(suggestion string) {
	v.Suggestions = append(v.Suggestions, suggestion)
}
