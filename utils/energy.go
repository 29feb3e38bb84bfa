package utils

import "errors"

// Conversion factor between kilocalories and kilojoules.
const KJPerKcal = 4.184

func KcalToKJ(kcal float64) float64 { return kcal * KJPerKcal }

func KJToKcal(kj float64) float64 { return kj / KJPerKcal }

// NormalizeEnergy returns the per-100g energy in kcal given whichever of
// the two CNF energy records is present. Prefers the kcal record.
func NormalizeEnergy(kcal, kj float64, hasKcal, hasKJ bool) (float64, error) {
	switch {
	case hasKcal:
		return kcal, nil
	case hasKJ:
		return KJToKcal(kj), nil
	}
	return 0, errors.New("no energy record present")
}
