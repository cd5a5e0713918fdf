package analysis

import (
	"sort"
	"strconv"
)

// Seasonal pattern keys.
const (
	PatternHolidayShopping = "holiday_shopping"
	PatternSummerTravel    = "summer_travel"
)

// Seasonal thresholds, in dollars per month.
const (
	holidaySpendThreshold = 1000.0
	summerTravelThreshold = 500.0
)

// DetectSeasonalPatterns flags calendar-bound spending patterns from monthly
// per-category totals. Months are visited in ascending key order, so when
// several months qualify for the same pattern the latest one evaluated wins;
// the overwrite is intentional and deterministic.
func DetectSeasonalPatterns(monthly map[string]map[Category]float64) map[string]string {
	patterns := make(map[string]string)

	months := make([]string, 0, len(monthly))
	for key := range monthly {
		months = append(months, key)
	}
	sort.Strings(months)

	for _, key := range months {
		month, ok := numericMonth(key)
		if !ok {
			continue
		}
		byCategory := monthly[key]

		switch {
		case month == 11 || month == 12:
			if byCategory[CategoryGeneral]+byCategory[CategoryOnlineShopping] > holidaySpendThreshold {
				patterns[PatternHolidayShopping] = "High spending detected during holiday season"
			}
		case month >= 6 && month <= 8:
			if byCategory[CategoryTravel] > summerTravelThreshold {
				patterns[PatternSummerTravel] = "Summer travel spending pattern detected"
			}
		}
	}

	return patterns
}

// numericMonth reads the month digits of a YYYY-MM key. Degenerate keys that
// do not carry parseable digits in that position are skipped.
func numericMonth(key string) (int, bool) {
	if len(key) < 7 {
		return 0, false
	}
	month, err := strconv.Atoi(key[5:7])
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}
