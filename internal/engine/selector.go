// Package engine implements the trip-generation core: rate selection,
// data-quality grading, threshold screening and the calculation
// orchestrator. Everything here is pure computation over the loaded
// reference data; business failures are returned as values, never raised.
package engine

import (
	"fmt"
	"math"

	"github.com/sells-group/tripgen-cli/internal/config"
	"github.com/sells-group/tripgen-cli/internal/model"
)

// Selector picks the most defensible estimation method for one period and
// computes the resulting trip count and directional split.
type Selector struct {
	thresholds config.ThresholdConfig
	guards     config.GuardConfig
}

// NewSelector creates a Selector with the given policy configuration.
func NewSelector(thresholds config.ThresholdConfig, guards config.GuardConfig) *Selector {
	return &Selector{thresholds: thresholds, guards: guards}
}

// shouldUseFittedCurve applies the extrapolation guards. When it returns
// false the second value names the reason.
func (s *Selector) shouldUseFittedCurve(p model.PeriodRates, size float64) (bool, string) {
	curve := evaluateEquation(p.Equation, size)
	if !curve.Valid {
		return false, "no fitted curve equation available"
	}
	if !p.Rate.Valid {
		return true, "no average rate available, must use fitted curve"
	}

	if sr := p.StudyRange; sr != nil {
		if size < sr.Min*s.guards.RangeMinFactor {
			return false, fmt.Sprintf("size %.4g is far below the study range minimum of %.4g", size, sr.Min)
		}
		if size > sr.Max*s.guards.RangeMaxFactor {
			return false, fmt.Sprintf("size %.4g is far above the study range maximum of %.4g", size, sr.Max)
		}
	}

	avg := p.Rate.Value * size
	if curve.Value > avg*s.guards.CurveHighRatio {
		return false, "fitted curve estimate is unrealistic, extrapolating beyond the data"
	}
	if curve.Value < avg*s.guards.CurveLowRatio && curve.Value > 0 {
		return false, "fitted curve estimate is unusually low relative to the average rate"
	}
	if curve.Value < 0 {
		return false, "fitted curve produces negative trips"
	}
	return true, ""
}

// EstimatePeriod selects the estimation method for one (period, size) pair
// and computes trips plus the directional split. Size must be positive; the
// orchestrator validates it before calling. A period with no usable rate or
// equation yields an Insufficient Data result, not an error.
func (s *Selector) EstimatePeriod(p model.PeriodRates, size float64) model.PeriodResult {
	res := model.PeriodResult{
		Rate:        p.Rate,
		RSquared:    p.RSquared,
		SampleSize:  p.SampleSize,
		EnteringPct: p.EnteringPct.Or(50),
		ExitingPct:  p.ExitingPct.Or(50),
		StudyRange:  p.StudyRange,
	}

	useCurve, reason := s.shouldUseFittedCurve(p, size)
	curve := evaluateEquation(p.Equation, size)
	good := p.RSquared.Valid && p.RSquared.Value >= s.thresholds.RSquaredGood
	fair := p.RSquared.Valid && p.RSquared.Value >= s.thresholds.RSquaredFair

	var trips int
	switch {
	case good && curve.Valid && useCurve:
		trips = roundTrips(curve.Value)
		res.Method = model.MethodFittedCurve
		res.Formula = formatEquation(p.Equation, size, trips)
		if p.Rate.Valid {
			alt := roundTrips(p.Rate.Value * size)
			res.Alternative = &model.AlternativeResult{
				Method:  model.MethodAverageRate,
				Trips:   alt,
				Formula: formatAverageRate(p.Rate.Value, size, alt),
			}
		}

	case good && curve.Valid:
		// Guards rejected the curve despite a strong fit; fall back to the
		// average rate and surface the rejected curve for transparency.
		trips = roundTrips(p.Rate.Value * size)
		res.Method = model.MethodAverageRate
		res.Formula = formatAverageRate(p.Rate.Value, size, trips)
		res.Caution = true
		res.MethodReason = reason
		alt := roundTrips(curve.Value)
		res.Alternative = &model.AlternativeResult{
			Method:         model.MethodFittedCurve,
			Trips:          alt,
			Formula:        formatEquation(p.Equation, size, alt),
			NotRecommended: true,
		}

	case fair && curve.Valid:
		trips = roundTrips(curve.Value)
		res.Method = model.MethodFittedCurve
		res.Formula = formatEquation(p.Equation, size, trips)
		res.Caution = true
		res.MethodReason = fmt.Sprintf("moderate correlation (r² = %.2f), verify against local counts", p.RSquared.Value)

	case p.Rate.Valid:
		trips = roundTrips(p.Rate.Value * size)
		res.Method = model.MethodAverageRate
		res.Formula = formatAverageRate(p.Rate.Value, size, trips)

	default:
		res.Method = model.MethodInsufficientData
		res.Message = "no average rate or fitted curve equation is published for this period"
		return res
	}

	if trips < 0 {
		trips = 0
	}
	res.Trips = model.Int(trips)

	// Entering and exiting round independently; their sum may differ from
	// trips by one, which is accepted rather than corrected.
	res.Entering = roundTrips(float64(trips) * res.EnteringPct / 100)
	res.Exiting = roundTrips(float64(trips) * res.ExitingPct / 100)

	return res
}

// roundTrips rounds a trip estimate to the nearest whole trip.
func roundTrips(v float64) int {
	return int(math.Round(v))
}
