package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/internal/models"
)

// ValidatorConfig настраиваемые пороги валидатора.
// Порог прохождения и допуск согласованности - продуктовые константы,
// не выведенные инварианты, поэтому вынесены в конфигурацию.
type ValidatorConfig struct {
	PassThreshold        int     // минимальный балл качества (по умолчанию 70)
	ConsistencyTolerance float64 // допустимое расхождение общего и среднего баллов (20)
	MinSummaryRunes      int     // минимальная длина краткого описания
	MinAnalysisRunes     int     // минимальная длина детального анализа
	MinRecommendations   int     // минимальное число рекомендаций
}

// DefaultValidatorConfig пороги по умолчанию
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		PassThreshold:        70,
		ConsistencyTolerance: 20,
		MinSummaryRunes:      20,
		MinAnalysisRunes:     50,
		MinRecommendations:   2,
	}
}

// ReportValidator многоэтапный валидатор AI-отчетов о здоровье.
// Без состояния и без I/O: безопасен для параллельных вызовов,
// на одинаковый вход всегда отвечает одинаковым результатом.
type ReportValidator struct {
	cfg ValidatorConfig
}

// NewReportValidator создает валидатор; нулевые поля конфигурации
// заменяются значениями по умолчанию
func NewReportValidator(cfg ValidatorConfig) *ReportValidator {
	def := DefaultValidatorConfig()
	if cfg.PassThreshold <= 0 {
		cfg.PassThreshold = def.PassThreshold
	}
	if cfg.ConsistencyTolerance <= 0 {
		cfg.ConsistencyTolerance = def.ConsistencyTolerance
	}
	if cfg.MinSummaryRunes <= 0 {
		cfg.MinSummaryRunes = def.MinSummaryRunes
	}
	if cfg.MinAnalysisRunes <= 0 {
		cfg.MinAnalysisRunes = def.MinAnalysisRunes
	}
	if cfg.MinRecommendations <= 0 {
		cfg.MinRecommendations = def.MinRecommendations
	}
	return &ReportValidator{cfg: cfg}
}

// Validate разбирает сырой JSON отчета и прогоняет все этапы проверки
func (v *ReportValidator) Validate(raw []byte) ValidationResult {
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		c := newCollector()
		c.addError(KindStructure, "report", "отчет не является JSON-объектом", SeverityCritical)
		return c.result(v.cfg.PassThreshold)
	}
	return v.ValidateObject(obj)
}

// ValidateObject валидирует уже разобранный отчет. Этапы выполняются
// по порядку и не прерываются: каждый добавляет свои замечания.
// Сырой объект один раз типизируется на границе (структура + типы),
// дальнейшие этапы работают только с типизированной структурой.
func (v *ReportValidator) ValidateObject(obj map[string]interface{}) ValidationResult {
	c := newCollector()

	report := v.parseReport(obj, c)
	v.checkRanges(report, c)
	v.checkEnums(report, c)
	v.checkConsistency(report, c)
	v.checkMedicalContent(report, c)
	v.checkCompleteness(obj, report, c)

	return c.result(v.cfg.PassThreshold)
}

// ----- Этапы 1-2: структура и типы -----

func (v *ReportValidator) parseReport(obj map[string]interface{}, c *collector) *models.AIHealthReport {
	report := &models.AIHealthReport{
		Scores:          make(map[string]*models.MetricScore),
		RiskAssessments: make(map[string]*models.RiskAssessment),
	}

	report.OverallMentalHealthScore = requiredNumber(obj, "", "overallMentalHealthScore", SeverityCritical, c)
	report.HealthStatus = requiredString(obj, "", "healthStatus", SeverityHigh, c)
	report.Summary = requiredString(obj, "", "summary", SeverityHigh, c)
	report.DetailedAnalysis = optionalString(obj, "", "detailedAnalysis", c)
	report.Recommendations = requiredStringArray(obj, "", "recommendations", SeverityHigh, c)
	report.GeneratedAt = optionalString(obj, "", "generatedAt", c)
	report.ModelVersion = optionalString(obj, "", "modelVersion", c)

	scores := requiredObject(obj, "", "scores", SeverityHigh, c)
	for _, key := range sortedRawKeys(scores) {
		path := "scores." + key
		sub, ok := scores[key].(map[string]interface{})
		if !ok || sub == nil {
			c.addError(KindType, path, "ожидался объект оценки метрики", SeverityHigh)
			continue
		}
		report.Scores[key] = &models.MetricScore{
			RawScore:          optionalNumber(sub, path, "rawScore", c),
			StandardizedScore: requiredNumber(sub, path, "standardizedScore", SeverityHigh, c),
			Percentile:        requiredNumber(sub, path, "percentile", SeverityHigh, c),
			Grade:             requiredString(sub, path, "grade", SeverityHigh, c),
			Confidence:        requiredNumber(sub, path, "confidence", SeverityHigh, c),
			Interpretation:    optionalString(sub, path, "interpretation", c),
		}
	}

	risks := requiredObject(obj, "", "riskAssessments", SeverityHigh, c)
	for _, key := range sortedRawKeys(risks) {
		path := "riskAssessments." + key
		sub, ok := risks[key].(map[string]interface{})
		if !ok || sub == nil {
			c.addError(KindType, path, "ожидался объект оценки риска", SeverityHigh)
			continue
		}
		report.RiskAssessments[key] = &models.RiskAssessment{
			RiskLevel:     requiredString(sub, path, "riskLevel", SeverityHigh, c),
			Score:         requiredNumber(sub, path, "score", SeverityHigh, c),
			Confidence:    requiredNumber(sub, path, "confidence", SeverityHigh, c),
			Indicators:    requiredStringArray(sub, path, "indicators", SeverityHigh, c),
			ClinicalNotes: requiredString(sub, path, "clinicalNotes", SeverityHigh, c),
			Severity:      requiredString(sub, path, "severity", SeverityHigh, c),
			Urgency:       requiredString(sub, path, "urgency", SeverityHigh, c),
		}
	}

	return report
}

// ----- Этап 3: числовые диапазоны -----

func (v *ReportValidator) checkRanges(r *models.AIHealthReport, c *collector) {
	inRange := func(path string, val *float64, lo, hi float64, sev Severity) {
		if val == nil {
			return
		}
		if math.IsNaN(*val) || *val < lo || *val > hi {
			c.addError(KindRange, path,
				fmt.Sprintf("значение %g вне диапазона [%g, %g]", *val, lo, hi), sev)
		}
	}

	inRange("overallMentalHealthScore", r.OverallMentalHealthScore, 0, 100, SeverityHigh)

	for _, key := range sortedScoreKeys(r.Scores) {
		s := r.Scores[key]
		path := "scores." + key
		inRange(path+".rawScore", s.RawScore, 0, 100, SeverityHigh)
		inRange(path+".standardizedScore", s.StandardizedScore, 0, 100, SeverityHigh)
		inRange(path+".percentile", s.Percentile, 0, 100, SeverityMedium)
		inRange(path+".confidence", s.Confidence, 0, 1, SeverityMedium)
	}

	for _, key := range sortedRiskKeys(r.RiskAssessments) {
		ra := r.RiskAssessments[key]
		path := "riskAssessments." + key
		inRange(path+".score", ra.Score, 0, 100, SeverityHigh)
		inRange(path+".confidence", ra.Confidence, 0, 1, SeverityMedium)
	}
}

// ----- Этап 4: перечислимые значения -----

func (v *ReportValidator) checkEnums(r *models.AIHealthReport, c *collector) {
	for _, key := range sortedScoreKeys(r.Scores) {
		s := r.Scores[key]
		if s.Grade != "" && !allowedGrades[strings.ToLower(s.Grade)] {
			c.addError(KindContent, "scores."+key+".grade",
				fmt.Sprintf("недопустимая оценка %q", s.Grade), SeverityMedium)
		}
	}

	for _, key := range sortedRiskKeys(r.RiskAssessments) {
		ra := r.RiskAssessments[key]
		path := "riskAssessments." + key
		if ra.RiskLevel != "" && !allowedRiskLevels[strings.ToLower(ra.RiskLevel)] {
			c.addError(KindContent, path+".riskLevel",
				fmt.Sprintf("недопустимый уровень риска %q", ra.RiskLevel), SeverityMedium)
		}
		if ra.Severity != "" && !allowedSeverities[strings.ToLower(ra.Severity)] {
			c.addError(KindContent, path+".severity",
				fmt.Sprintf("недопустимая важность %q", ra.Severity), SeverityLow)
		}
		if ra.Urgency != "" && !allowedUrgencies[strings.ToLower(ra.Urgency)] {
			c.addError(KindContent, path+".urgency",
				fmt.Sprintf("недопустимая срочность %q", ra.Urgency), SeverityLow)
		}
	}
}

// ----- Этап 5: согласованность полей -----

func (v *ReportValidator) checkConsistency(r *models.AIHealthReport, c *collector) {
	// Оценка должна соответствовать корзине процентиля
	for _, key := range sortedScoreKeys(r.Scores) {
		s := r.Scores[key]
		if s.Percentile == nil || s.Grade == "" {
			continue
		}
		expected := gradeForPercentile(*s.Percentile)
		if !strings.EqualFold(s.Grade, expected) {
			c.addError(KindConsistency, "scores."+key+".grade",
				fmt.Sprintf("оценка %q не соответствует процентилю %g (ожидалась %q)",
					s.Grade, *s.Percentile, expected), SeverityMedium)
		}
	}

	// Общий балл не должен сильно расходиться со средним компонентов.
	// Расхождение - предупреждение: у выводов LLM есть естественный разброс.
	if r.OverallMentalHealthScore != nil && len(r.Scores) > 0 {
		sum, count := 0.0, 0
		for _, key := range sortedScoreKeys(r.Scores) {
			if s := r.Scores[key]; s.StandardizedScore != nil {
				sum += *s.StandardizedScore
				count++
			}
		}
		if count > 0 {
			avg := sum / float64(count)
			if math.Abs(*r.OverallMentalHealthScore-avg) > v.cfg.ConsistencyTolerance {
				c.addWarning(KindConsistency, "overallMentalHealthScore",
					fmt.Sprintf("общий балл %g расходится со средним компонентов %.1f больше чем на %g",
						*r.OverallMentalHealthScore, avg, v.cfg.ConsistencyTolerance), SeverityMedium)
			}
		}
	}

	// Текстовый статус не должен противоречить общему баллу
	if r.OverallMentalHealthScore != nil && r.HealthStatus != "" {
		tier := statusTierFor(r.HealthStatus)
		score := *r.OverallMentalHealthScore
		switch {
		case tier > 0 && tier <= 2 && score >= 80:
			c.addError(KindConsistency, "healthStatus",
				fmt.Sprintf("высокий общий балл %g при тревожном статусе %q", score, r.HealthStatus),
				SeverityHigh)
		case tier == 3 && score <= 40:
			c.addError(KindConsistency, "healthStatus",
				fmt.Sprintf("низкий общий балл %g при благополучном статусе %q", score, r.HealthStatus),
				SeverityHigh)
		}
	}
}

// ----- Этап 6: медицинская безопасность текста -----

func (v *ReportValidator) checkMedicalContent(r *models.AIHealthReport, c *collector) {
	blob := strings.ToLower(collectReportText(r))
	if blob == "" {
		return
	}

	for _, phrase := range dangerousMedicalPhrases {
		if strings.Contains(blob, phrase) {
			c.addError(KindMedical, "text",
				fmt.Sprintf("запрещенная медицинская директива: %q", phrase), SeverityCritical)
		}
	}

	for _, term := range cautionaryMedicalTerms {
		if strings.Contains(blob, term) {
			c.addWarning(KindMedical, "text",
				fmt.Sprintf("диагностическая формулировка: %q", term), SeverityLow)
		}
	}
}

// ----- Этап 7: эвристики полноты -----

func (v *ReportValidator) checkCompleteness(obj map[string]interface{}, r *models.AIHealthReport, c *collector) {
	if _, present := obj["summary"]; present {
		if utf8.RuneCountInString(r.Summary) < v.cfg.MinSummaryRunes {
			c.addWarning(KindContent, "summary",
				fmt.Sprintf("краткое описание короче %d символов", v.cfg.MinSummaryRunes), SeverityLow)
		}
	}

	if r.DetailedAnalysis != "" && utf8.RuneCountInString(r.DetailedAnalysis) < v.cfg.MinAnalysisRunes {
		c.addWarning(KindContent, "detailedAnalysis",
			fmt.Sprintf("детальный анализ короче %d символов", v.cfg.MinAnalysisRunes), SeverityLow)
	}

	if r.Recommendations != nil {
		switch {
		case len(r.Recommendations) == 0:
			c.addWarning(KindContent, "recommendations", "список рекомендаций пуст", SeverityLow)
		case len(r.Recommendations) < v.cfg.MinRecommendations:
			c.addWarning(KindContent, "recommendations",
				fmt.Sprintf("рекомендаций меньше %d", v.cfg.MinRecommendations), SeverityLow)
		}
	}
}

// ----- Извлечение полей на границе -----

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func requiredNumber(obj map[string]interface{}, base, name string, missing Severity, c *collector) *float64 {
	path := joinPath(base, name)
	raw, present := obj[name]
	if !present || raw == nil {
		c.addError(KindStructure, path, "отсутствует обязательное поле", missing)
		return nil
	}
	num, ok := raw.(float64)
	if !ok {
		c.addError(KindType, path, "ожидалось число", SeverityHigh)
		return nil
	}
	return &num
}

func optionalNumber(obj map[string]interface{}, base, name string, c *collector) *float64 {
	raw, present := obj[name]
	if !present || raw == nil {
		return nil
	}
	num, ok := raw.(float64)
	if !ok {
		c.addError(KindType, joinPath(base, name), "ожидалось число", SeverityHigh)
		return nil
	}
	return &num
}

func requiredString(obj map[string]interface{}, base, name string, missing Severity, c *collector) string {
	path := joinPath(base, name)
	raw, present := obj[name]
	if !present || raw == nil {
		c.addError(KindStructure, path, "отсутствует обязательное поле", missing)
		return ""
	}
	str, ok := raw.(string)
	if !ok {
		c.addError(KindType, path, "ожидалась строка", SeverityMedium)
		return ""
	}
	return str
}

func optionalString(obj map[string]interface{}, base, name string, c *collector) string {
	raw, present := obj[name]
	if !present || raw == nil {
		return ""
	}
	str, ok := raw.(string)
	if !ok {
		c.addError(KindType, joinPath(base, name), "ожидалась строка", SeverityMedium)
		return ""
	}
	return str
}

func requiredStringArray(obj map[string]interface{}, base, name string, missing Severity, c *collector) []string {
	path := joinPath(base, name)
	raw, present := obj[name]
	if !present || raw == nil {
		c.addError(KindStructure, path, "отсутствует обязательное поле", missing)
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		c.addError(KindType, path, "ожидался массив строк", SeverityMedium)
		return nil
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		str, ok := item.(string)
		if !ok {
			c.addError(KindType, fmt.Sprintf("%s[%d]", path, i), "ожидалась строка", SeverityMedium)
			continue
		}
		out = append(out, str)
	}
	return out
}

func requiredObject(obj map[string]interface{}, base, name string, missing Severity, c *collector) map[string]interface{} {
	path := joinPath(base, name)
	raw, present := obj[name]
	if !present || raw == nil {
		c.addError(KindStructure, path, "отсутствует обязательное поле", missing)
		return nil
	}
	sub, ok := raw.(map[string]interface{})
	if !ok {
		c.addError(KindType, path, "ожидался объект", SeverityHigh)
		return nil
	}
	return sub
}

// ----- Вспомогательное -----

// Ключи карт обходятся в отсортированном порядке: результат валидации
// обязан быть одинаковым для одинакового входа.

func sortedRawKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedScoreKeys(m map[string]*models.MetricScore) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedRiskKeys(m map[string]*models.RiskAssessment) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func collectReportText(r *models.AIHealthReport) string {
	parts := make([]string, 0, 16)

	appendNonEmpty := func(s string) {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}

	appendNonEmpty(r.HealthStatus)
	appendNonEmpty(r.Summary)
	appendNonEmpty(r.DetailedAnalysis)

	for _, key := range sortedScoreKeys(r.Scores) {
		appendNonEmpty(r.Scores[key].Interpretation)
	}
	for _, key := range sortedRiskKeys(r.RiskAssessments) {
		ra := r.RiskAssessments[key]
		appendNonEmpty(ra.ClinicalNotes)
		for _, indicator := range ra.Indicators {
			appendNonEmpty(indicator)
		}
	}
	for _, rec := range r.Recommendations {
		appendNonEmpty(rec)
	}

	return strings.Join(parts, "\n")
}
