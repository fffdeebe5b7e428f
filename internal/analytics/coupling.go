package analytics

import (
	"math"

	"github.com/Brian-Chae/mind-breeze-ai-report-sub016/pkg/utils"
)

// CouplingFeatures связь двух метрик по кросс-корреляции
type CouplingFeatures struct {
	MaxAbs float64 `json:"maxabs"`
	Lag    float64 `json:"lag"` // сдвиг в секундах при максимальной корреляции
}

// CalculateCouplingFeatures ищет максимальную по модулю корреляцию двух
// рядов при сдвигах до maxLagS секунд в обе стороны
func CalculateCouplingFeatures(a, b []float64, fs float64, maxLagS float64) CouplingFeatures {
	if len(a) == 0 || len(b) == 0 {
		return CouplingFeatures{
			MaxAbs: math.NaN(),
			Lag:    math.NaN(),
		}
	}

	// Z-score нормализация
	aMean := utils.Mean(a)
	aStd := utils.Std(a)
	bMean := utils.Mean(b)
	bStd := utils.Std(b)

	// Плоский ряд не коррелирует ни с чем
	if aStd < 1e-6 || bStd < 1e-6 {
		return CouplingFeatures{
			MaxAbs: math.NaN(),
			Lag:    math.NaN(),
		}
	}

	aNorm := make([]float64, len(a))
	bNorm := make([]float64, len(b))

	for i, v := range a {
		aNorm[i] = (v - aMean) / aStd
	}
	for i, v := range b {
		bNorm[i] = (v - bMean) / bStd
	}

	maxLag := int(maxLagS * fs)
	bestVal := -1.0
	bestLag := 0
	found := false

	// Поиск максимальной корреляции по лагам
	for lag := -maxLag; lag <= maxLag; lag++ {
		var x, y []float64

		if lag >= 0 {
			// первый ряд смещен вперед
			if lag < len(aNorm) {
				x = aNorm[lag:]
				minLen := int(math.Min(float64(len(x)), float64(len(bNorm))))
				if minLen > 0 {
					x = x[:minLen]
					y = bNorm[:minLen]
				}
			}
		} else {
			// второй ряд смещен вперед
			absLag := -lag
			if absLag < len(bNorm) {
				y = bNorm[absLag:]
				minLen := int(math.Min(float64(len(aNorm)), float64(len(y))))
				if minLen > 0 {
					x = aNorm[:minLen]
					y = y[:minLen]
				}
			}
		}

		if len(x) < int(5*fs) { // минимум 5 секунд данных
			continue
		}

		corr := 0.0
		for i := 0; i < len(x); i++ {
			corr += x[i] * y[i]
		}
		corr /= float64(len(x))

		if !found || utils.Abs(corr) > utils.Abs(bestVal) {
			bestVal = corr
			bestLag = lag
			found = true
		}
	}

	if !found {
		return CouplingFeatures{
			MaxAbs: math.NaN(),
			Lag:    math.NaN(),
		}
	}

	return CouplingFeatures{
		MaxAbs: utils.Abs(bestVal),
		Lag:    float64(bestLag) / fs,
	}
}
