package validation

// Severity важность замечания валидации
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// FindingKind этап валидации, породивший замечание
type FindingKind string

const (
	KindStructure   FindingKind = "structure"
	KindType        FindingKind = "type"
	KindRange       FindingKind = "range"
	KindContent     FindingKind = "content"
	KindMedical     FindingKind = "medical"
	KindConsistency FindingKind = "consistency"
)

// ValidationFinding одно замечание к отчету
type ValidationFinding struct {
	Kind     FindingKind `json:"kind" example:"structure"`
	Field    string      `json:"field" example:"overallMentalHealthScore"`
	Message  string      `json:"message" example:"отсутствует обязательное поле"`
	Severity Severity    `json:"severity" example:"critical"`
}

// ValidationResult итог валидации отчета. Создается заново на каждый
// вызов и после возврата не изменяется.
type ValidationResult struct {
	Passed       bool                `json:"passed"`
	QualityScore int                 `json:"quality_score"` // 0..100
	Errors       []ValidationFinding `json:"errors"`
	Warnings     []ValidationFinding `json:"warnings"`
}

// Штрафы к баллу качества по важности ошибки
var severityDeductions = map[Severity]int{
	SeverityCritical: 25,
	SeverityHigh:     15,
	SeverityMedium:   10,
	SeverityLow:      5,
}

const warningDeduction = 3

// collector накапливает замечания по ходу этапов валидации
type collector struct {
	errors   []ValidationFinding
	warnings []ValidationFinding
}

func newCollector() *collector {
	return &collector{
		errors:   make([]ValidationFinding, 0),
		warnings: make([]ValidationFinding, 0),
	}
}

func (c *collector) addError(kind FindingKind, field, message string, severity Severity) {
	c.errors = append(c.errors, ValidationFinding{
		Kind: kind, Field: field, Message: message, Severity: severity,
	})
}

func (c *collector) addWarning(kind FindingKind, field, message string, severity Severity) {
	c.warnings = append(c.warnings, ValidationFinding{
		Kind: kind, Field: field, Message: message, Severity: severity,
	})
}

func (c *collector) hasCritical() bool {
	for _, f := range c.errors {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// result считает балл качества и вердикт.
// Балл стартует со 100, ошибки штрафуются по важности, предупреждения
// фиксированно; итог зажимается в [0,100]. Отчет проходит только если
// балл не ниже порога И нет ни одного critical: высокий балл не может
// перекрыть критическое нарушение безопасности.
func (c *collector) result(passThreshold int) ValidationResult {
	score := 100
	for _, f := range c.errors {
		score -= severityDeductions[f.Severity]
	}
	score -= warningDeduction * len(c.warnings)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return ValidationResult{
		Passed:       score >= passThreshold && !c.hasCritical(),
		QualityScore: score,
		Errors:       c.errors,
		Warnings:     c.warnings,
	}
}
