package models

// AIHealthReport типизированная структура AI-отчета о ментальном здоровье.
// Сырые ответы LLM проходят через границу валидации один раз: отсутствие
// и несоответствие типов фиксируются как findings, дальше логика работает
// только с этой структурой. Указатели отличают "поле отсутствует" от нуля.
type AIHealthReport struct {
	OverallMentalHealthScore *float64                   `json:"overallMentalHealthScore" example:"82"`
	HealthStatus             string                     `json:"healthStatus" example:"양호"`
	Summary                  string                     `json:"summary"`
	DetailedAnalysis         string                     `json:"detailedAnalysis,omitempty"`
	Scores                   map[string]*MetricScore    `json:"scores"`
	RiskAssessments          map[string]*RiskAssessment `json:"riskAssessments"`
	Recommendations          []string                   `json:"recommendations"`
	GeneratedAt              string                     `json:"generatedAt,omitempty"`
	ModelVersion             string                     `json:"modelVersion,omitempty"`
}

// MetricScore стандартизированная оценка одной метрики в отчете
type MetricScore struct {
	RawScore          *float64 `json:"rawScore,omitempty" example:"64.5"`
	StandardizedScore *float64 `json:"standardizedScore" example:"71"`     // 0..100
	Percentile        *float64 `json:"percentile" example:"78"`            // 0..100
	Grade             string   `json:"grade" example:"good"`               // excellent/good/normal/borderline/attention
	Confidence        *float64 `json:"confidence" example:"0.92"`          // 0..1
	Interpretation    string   `json:"interpretation,omitempty"`
}

// RiskAssessment структурированный под-отчет о риске (депрессия, тревожность и т.п.)
type RiskAssessment struct {
	RiskLevel     string   `json:"riskLevel" example:"low"` // low/moderate/high/critical
	Score         *float64 `json:"score" example:"18"`      // 0..100
	Confidence    *float64 `json:"confidence" example:"0.85"`
	Indicators    []string `json:"indicators"`
	ClinicalNotes string   `json:"clinicalNotes"`
	Severity      string   `json:"severity" example:"none"`   // none/mild/moderate/severe
	Urgency       string   `json:"urgency" example:"routine"` // routine/monitor/consult/immediate
}
