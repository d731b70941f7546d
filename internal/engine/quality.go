package engine

import (
	"github.com/sells-group/tripgen-cli/internal/config"
	"github.com/sells-group/tripgen-cli/internal/model"
)

// AssessQuality grades sample size and correlation strength into qualitative
// confidence tiers. It reads the weekday period deliberately: weekday is the
// most-studied period, and its statistics serve as the confidence signal for
// the whole analysis.
func AssessQuality(weekday model.PeriodRates, cfg config.ThresholdConfig) model.QualityAssessment {
	qa := model.QualityAssessment{
		SampleSize: weekday.SampleSize,
		RSquared:   weekday.RSquared,
	}

	// An unknown sample size grades as zero studies.
	n := weekday.SampleSize.Or(0)
	switch {
	case n >= 30:
		qa.SampleQuality = model.SampleGood
	case n >= cfg.SampleSizeWarning:
		qa.SampleQuality = model.SampleAdequate
	case n >= cfg.SampleSizeUnreliable:
		qa.SampleQuality = model.SampleLow
	default:
		qa.SampleQuality = model.SampleUnreliable
	}

	switch r2 := weekday.RSquared; {
	case r2.Valid && r2.Value >= cfg.RSquaredGood:
		qa.CorrelationQuality = model.CorrelationGood
	case r2.Valid && r2.Value >= cfg.RSquaredFair:
		qa.CorrelationQuality = model.CorrelationFair
	case r2.Valid && r2.Value >= cfg.RSquaredPoor:
		qa.CorrelationQuality = model.CorrelationPoor
	case r2.Valid && r2.Value > 0:
		qa.CorrelationQuality = model.CorrelationNone
	default:
		qa.CorrelationQuality = model.CorrelationNA
	}

	// High is checked before Low: a record could otherwise satisfy both
	// composition rules.
	switch {
	case qa.SampleQuality == model.SampleGood && qa.CorrelationQuality == model.CorrelationGood:
		qa.ConfidenceLevel = model.ConfidenceHigh
	case qa.SampleQuality == model.SampleUnreliable || qa.CorrelationQuality == model.CorrelationNone:
		qa.ConfidenceLevel = model.ConfidenceLow
	default:
		qa.ConfidenceLevel = model.ConfidenceMedium
	}

	return qa
}
