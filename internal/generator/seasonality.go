package generator

import (
	"time"

	"salescli/pkg/contracts/domain"
)

// IsHolidayMonth reports November and December, which get the highest volume and an extra discount
func IsHolidayMonth(m time.Month) bool {
	return m == time.November || m == time.December
}

// IsSummerMonth reports June through August
func IsSummerMonth(m time.Month) bool {
	return m >= time.June && m <= time.August
}

// DailyVolumeRange returns the half-open range [min, max) of transactions per day
func DailyVolumeRange(m time.Month) (int, int) {
	switch {
	case IsHolidayMonth(m):
		return 150, 250
	case IsSummerMonth(m):
		return 120, 180
	default:
		return 80, 140
	}
}

// SeasonalFactor is the month's expected daily volume relative to an ordinary month
func SeasonalFactor(m time.Month) float64 {
	lo, hi := DailyVolumeRange(m)
	baseLo, baseHi := DailyVolumeRange(time.January)
	return float64(lo+hi) / float64(baseLo+baseHi)
}

// SegmentDiscountRange returns the half-open discount range for a segment
func SegmentDiscountRange(s domain.CustomerSegment) (float64, float64) {
	switch s {
	case domain.SegmentPremium:
		return 0.05, 0.15
	case domain.SegmentRegular:
		return 0, 0.10
	default:
		return 0, 0.05
	}
}

// HolidayDiscountRange is the extra discount added in holiday months
func HolidayDiscountRange() (float64, float64) {
	return 0.05, 0.15
}
