package ranges

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategorizeOccupation(t *testing.T) {
	cases := []struct {
		occupation string
		category   OccupationCategory
	}{
		{"nurse", OccupationHighStress},
		{"Senior Software Developer", OccupationCognitive},
		{"간호사", OccupationHighStress},
		{"개발자", OccupationCognitive},
		{"athlete", OccupationPhysical},
		{"librarian", OccupationLowStress},
		{"chef", OccupationGeneral},
		{"", OccupationGeneral},
		{"  Doctor  ", OccupationHighStress},
	}

	for _, tc := range cases {
		t.Run(tc.occupation, func(t *testing.T) {
			require.Equal(t, tc.category, CategorizeOccupation(tc.occupation))
		})
	}
}

func TestCategorizeOccupationPriorityOrder(t *testing.T) {
	// A string matching two categories resolves to the first in the fixed order
	require.Equal(t, OccupationHighStress, CategorizeOccupation("police researcher"))
}

func TestAdjustNurseScenario(t *testing.T) {
	svc := NewRangeService(DefaultAdjustmentPolicy())
	info := &PersonalInfo{Age: 25, Gender: GenderFemale, Occupation: "nurse"}

	r, ok := svc.Personalized(MetricHeartRate, info)
	require.True(t, ok)

	// Base 60-100, female +5/+5, high-stress occupation +5 on max
	require.InDelta(t, 65.0, r.Min, 1e-9)
	require.InDelta(t, 110.0, r.Max, 1e-9)
	require.Equal(t, "65-110", r.Label)

	// 102 bpm falls inside the personalized range
	c, ok := svc.Classify(MetricHeartRate, 102, info)
	require.True(t, ok)
	require.Equal(t, StatusNormal, c.Status)

	// Against the base range the same value reads high
	base, _ := svc.Classify(MetricHeartRate, 102, nil)
	require.Equal(t, StatusHigh, base.Status)
}

func TestAdjustCompositionOrder(t *testing.T) {
	policy := AdjustmentPolicy{
		Age: map[AgeBracket]map[string]RangeShift{
			AgeAdult: {MetricFocusIndex: {MinScale: 2}},
		},
		Gender: map[Gender]map[string]RangeShift{
			GenderMale: {MetricFocusIndex: {MinAdd: 10}},
		},
	}

	base := NormalRange{Min: 10, Max: 100}
	info := PersonalInfo{Age: 30, Gender: GenderMale}

	// Age first (10*2=20), then gender (+10): 30, not (10+10)*2=40
	got := policy.Adjust(base, info, MetricFocusIndex)
	require.InDelta(t, 30.0, got.Min, 1e-9)
}

func TestAdjustRegeneratesLabel(t *testing.T) {
	policy := DefaultAdjustmentPolicy()
	base, _ := BaseRange(MetricFocusIndex)

	got := policy.Adjust(base, PersonalInfo{Age: 30, Occupation: "developer"}, MetricFocusIndex)

	// Cognitive occupation widens the focus range: 30*0.9 .. 70*1.1
	require.InDelta(t, 27.0, got.Min, 1e-9)
	require.InDelta(t, 77.0, got.Max, 1e-9)
	require.Equal(t, "27-77", got.Label)
}

func TestAdjustNeverInvertsBounds(t *testing.T) {
	policy := AdjustmentPolicy{
		Gender: map[Gender]map[string]RangeShift{
			GenderFemale: {MetricStressIndex: {MinAdd: 100, MaxAdd: -100}},
		},
	}

	base := NormalRange{Min: 20, Max: 60}
	got := policy.Adjust(base, PersonalInfo{Age: 30, Gender: GenderFemale}, MetricStressIndex)
	require.LessOrEqual(t, got.Min, got.Max)
}

func TestAdjustOrderingHoldsForDefaultPolicy(t *testing.T) {
	svc := NewRangeService(DefaultAdjustmentPolicy())

	infos := []PersonalInfo{
		{Age: 10, Gender: GenderMale, Occupation: "student"},
		{Age: 25, Gender: GenderFemale, Occupation: "nurse"},
		{Age: 45, Gender: GenderMale, Occupation: "builder"},
		{Age: 70, Gender: GenderFemale, Occupation: "retired"},
		{Age: 33, Gender: GenderFemale, Occupation: "unknown occupation"},
	}

	for _, info := range infos {
		info := info
		for _, metric := range KnownMetrics() {
			r, ok := svc.Personalized(metric, &info)
			require.True(t, ok)
			require.LessOrEqual(t, r.Min, r.Max,
				"adjusted range inverted for %s / %+v", metric, info)
		}
	}
}

func TestPersonalizedUnknownMetric(t *testing.T) {
	svc := NewRangeService(DefaultAdjustmentPolicy())

	_, ok := svc.Personalized("unknownMetric", &PersonalInfo{Age: 30})
	require.False(t, ok, "unknown metric means no clinical interpretation, not an error")

	_, ok = svc.Classify("unknownMetric", 50, nil)
	require.False(t, ok)
}

func TestPersonalizedWithoutProfileReturnsBase(t *testing.T) {
	svc := NewRangeService(DefaultAdjustmentPolicy())

	r, ok := svc.Personalized(MetricHeartRate, nil)
	require.True(t, ok)

	base, _ := BaseRange(MetricHeartRate)
	require.Equal(t, base, r)
}

func TestBracketForAge(t *testing.T) {
	require.Equal(t, AgeUnder18, BracketForAge(17))
	require.Equal(t, AgeAdult, BracketForAge(18))
	require.Equal(t, AgeAdult, BracketForAge(39))
	require.Equal(t, AgeMiddle, BracketForAge(40))
	require.Equal(t, AgeMiddle, BracketForAge(59))
	require.Equal(t, AgeSenior, BracketForAge(60))
}
