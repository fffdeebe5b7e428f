package validation

// Допустимые значения перечислимых полей отчета
var (
	allowedRiskLevels = map[string]bool{
		"low": true, "moderate": true, "high": true, "critical": true,
	}
	allowedGrades = map[string]bool{
		"excellent": true, "good": true, "normal": true,
		"borderline": true, "attention": true,
	}
	allowedSeverities = map[string]bool{
		"none": true, "mild": true, "moderate": true, "severe": true,
	}
	allowedUrgencies = map[string]bool{
		"routine": true, "monitor": true, "consult": true, "immediate": true,
	}
)

// gradeForPercentile ожидаемая оценка для процентиля
func gradeForPercentile(p float64) string {
	switch {
	case p >= 95:
		return "excellent"
	case p >= 75:
		return "good"
	case p >= 25:
		return "normal"
	case p >= 5:
		return "borderline"
	default:
		return "attention"
	}
}

// statusTiers соответствие текстовых статусов здоровья уровням.
// Отчеты приходят на корейском и английском; таблица - данные, не код.
// Уровни: 3 - благополучно, 2 - требует внимания, 1 - риск.
var statusTiers = []struct {
	Label string
	Tier  int
}{
	{"주의 필요", 2},
	{"관리 필요", 2},
	{"위험", 1},
	{"심각", 1},
	{"양호", 3},
	{"좋음", 3},
	{"건강", 3},
	{"보통", 2},
	{"주의", 2},
	{"excellent", 3},
	{"good", 3},
	{"stable", 3},
	{"healthy", 3},
	{"fair", 2},
	{"caution", 2},
	{"needs attention", 2},
	{"attention", 2},
	{"at risk", 1},
	{"poor", 1},
	{"critical", 1},
}

// statusTierFor определяет уровень статуса по подстроке; первый
// совпавший элемент таблицы побеждает (более длинные ярлыки выше).
// 0 - статус не распознан, проверка согласованности пропускается.
func statusTierFor(status string) int {
	for _, entry := range statusTiers {
		if containsFold(status, entry.Label) {
			return entry.Tier
		}
	}
	return 0
}

// dangerousMedicalPhrases директивные медицинские формулировки,
// запрещенные в AI-отчетах: любое совпадение - critical, независимо
// от остальных оценок.
var dangerousMedicalPhrases = []string{
	"약을 중단",
	"약 복용을 중단",
	"복용을 중단",
	"복용을 멈추",
	"치료를 중단",
	"병원에 갈 필요가 없",
	"의사와 상담할 필요가 없",
	"진료를 받지 않아도",
	"stop taking your medication",
	"stop taking medication",
	"stop your medication",
	"discontinue your medication",
	"discontinue medication",
	"discontinue treatment",
	"no need to see a doctor",
	"no need to visit a doctor",
	"do not see a doctor",
	"avoid seeing a doctor",
	"skip your doctor",
	"ignore your symptoms",
	"medication is unnecessary",
}

// cautionaryMedicalTerms диагностические формулировки: нежелательны,
// но не опасны - только предупреждение.
var cautionaryMedicalTerms = []string{
	"진단",
	"처방",
	"diagnosis",
	"diagnose",
	"prescription",
	"prescribe",
}
