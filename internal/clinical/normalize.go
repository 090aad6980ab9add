package clinical

import (
	"strconv"
	"strings"

	"github.com/ckd-predict/portal-service/internal/catalog"
)

// Normalize converts a raw form submission into the payload the
// prediction model expects. Blank or unparsable numerics become 0,
// blank categoricals take their neutral default, and a blood pressure
// given as "systolic/diastolic" keeps only the systolic number.
func Normalize(obs Observation, cat catalog.Catalog) NormalizedObservation {
	return NormalizedObservation{
		SerumCreatinine:  parseNumber(obs.SerumCreatinine),
		GFR:              parseNumber(obs.GFR),
		BUN:              parseNumber(obs.BUN),
		SerumCalcium:     parseNumber(obs.SerumCalcium),
		BloodPressure:    parseBloodPressure(obs.BloodPressure),
		WaterIntake:      parseNumber(obs.WaterIntake),
		FamilyHistory:    cat.Normalize("family_history", obs.FamilyHistory),
		WeightChanges:    cat.Normalize("weight_changes", obs.WeightChanges),
		StressLevel:      cat.Normalize("stress_level", obs.StressLevel),
		Smoking:          cat.Normalize("smoking", obs.Smoking),
		Alcohol:          cat.Normalize("alcohol", obs.Alcohol),
		PainkillerUsage:  cat.Normalize("painkiller_usage", obs.PainkillerUsage),
		Diet:             cat.Normalize("diet", obs.Diet),
		PhysicalActivity: cat.Normalize("physical_activity", obs.PhysicalActivity),
	}
}

func parseNumber(raw string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return n
}

func parseBloodPressure(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if systolic, _, found := strings.Cut(raw, "/"); found {
		return parseNumber(systolic)
	}
	return parseNumber(raw)
}
