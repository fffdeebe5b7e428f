package ranges

import "strings"

// OccupationCategory закрытый набор категорий профессий
type OccupationCategory string

const (
	OccupationHighStress OccupationCategory = "high-stress"
	OccupationLowStress  OccupationCategory = "low-stress"
	OccupationCognitive  OccupationCategory = "cognitive"
	OccupationPhysical   OccupationCategory = "physical"
	OccupationGeneral    OccupationCategory = "general"
)

// occupationKeywords таблица классификации профессий: данные, не код.
// Профили приходят на английском и корейском, сопоставление по подстроке
// без учёта регистра. Порядок категорий фиксирован: первая совпавшая побеждает.
var occupationCategoryOrder = []OccupationCategory{
	OccupationHighStress,
	OccupationCognitive,
	OccupationPhysical,
	OccupationLowStress,
}

var occupationKeywords = map[OccupationCategory][]string{
	OccupationHighStress: {
		"nurse", "doctor", "surgeon", "paramedic", "police", "firefighter",
		"pilot", "dispatcher", "trader", "emergency",
		"간호사", "의사", "외과", "구급", "경찰", "소방", "조종사",
	},
	OccupationCognitive: {
		"developer", "programmer", "engineer", "researcher", "scientist",
		"analyst", "architect", "designer", "accountant", "lawyer", "student",
		"개발자", "연구원", "분석가", "회계사", "변호사", "학생", "엔지니어",
	},
	OccupationPhysical: {
		"athlete", "trainer", "builder", "construction", "farmer", "courier",
		"mover", "dancer",
		"운동선수", "트레이너", "건설", "농부", "택배",
	},
	OccupationLowStress: {
		"librarian", "gardener", "artist", "writer", "retired", "florist",
		"사서", "정원사", "예술가", "작가", "은퇴",
	},
}

// CategorizeOccupation сопоставляет строку профессии категории.
// Несопоставленные профессии попадают в general (без корректировки).
func CategorizeOccupation(occupation string) OccupationCategory {
	needle := strings.ToLower(strings.TrimSpace(occupation))
	if needle == "" {
		return OccupationGeneral
	}

	for _, category := range occupationCategoryOrder {
		for _, keyword := range occupationKeywords[category] {
			if strings.Contains(needle, keyword) {
				return category
			}
		}
	}
	return OccupationGeneral
}
