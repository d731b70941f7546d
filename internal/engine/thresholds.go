package engine

import (
	"fmt"

	"github.com/sells-group/tripgen-cli/internal/config"
	"github.com/sells-group/tripgen-cli/internal/model"
)

// EvaluateThresholds compares computed trip volumes against the policy
// thresholds. Every check runs independently and may add its own warning;
// the TIA trigger uses >= while the warning checks use >.
func EvaluateThresholds(weekday, amPeak, pmPeak int, cfg config.ThresholdConfig) model.ThresholdVerdict {
	v := model.ThresholdVerdict{}

	if amPeak > cfg.PeakHourWarning {
		v.PeakHourWarning = true
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"AM peak-hour trips (%d) exceed the %d-trip peak-hour warning threshold", amPeak, cfg.PeakHourWarning))
	}
	if pmPeak > cfg.PeakHourWarning {
		v.PeakHourWarning = true
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"PM peak-hour trips (%d) exceed the %d-trip peak-hour warning threshold", pmPeak, cfg.PeakHourWarning))
	}
	if weekday > cfg.DailyWarning {
		v.DailyWarning = true
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"weekday trips (%d) exceed the %d-trip daily warning threshold", weekday, cfg.DailyWarning))
	}
	if weekday >= cfg.TIARequired {
		v.TIARequired = true
		v.Warnings = append(v.Warnings, fmt.Sprintf(
			"weekday trips (%d) meet the %d-trip threshold: a Traffic Impact Analysis is required", weekday, cfg.TIARequired))
	}

	switch {
	case v.TIARequired:
		v.OverallStatus = model.StatusTIARequired
	case len(v.Warnings) > 0:
		v.OverallStatus = model.StatusWarning
	default:
		v.OverallStatus = model.StatusPass
	}

	v.Details = []model.ThresholdDetail{
		{
			Name:     "Peak-Hour Trips",
			Limit:    cfg.PeakHourWarning,
			Unit:     "trips/hr",
			Observed: fmt.Sprintf("AM %d / PM %d", amPeak, pmPeak),
			Status:   exceededIf(v.PeakHourWarning),
		},
		{
			Name:     "Daily Trips",
			Limit:    cfg.DailyWarning,
			Unit:     "trips/day",
			Observed: fmt.Sprintf("%d", weekday),
			Status:   exceededIf(v.DailyWarning),
		},
		{
			Name:     "TIA Trigger",
			Limit:    cfg.TIARequired,
			Unit:     "trips/day",
			Observed: fmt.Sprintf("%d", weekday),
			Status:   exceededIf(v.TIARequired),
		},
		{
			// Informational only; does not affect the overall status.
			Name:     "VDOT Chapter 527",
			Limit:    cfg.VDOTThreshold,
			Unit:     "trips/day",
			Observed: fmt.Sprintf("%d", weekday),
			Status:   exceededIf(weekday >= cfg.VDOTThreshold),
		},
	}

	return v
}

func exceededIf(cond bool) string {
	if cond {
		return "EXCEEDED"
	}
	return "OK"
}
