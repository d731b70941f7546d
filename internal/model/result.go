package model

import "time"

// Method is the estimation method chosen for a period.
type Method string

const (
	MethodFittedCurve      Method = "Fitted Curve Equation"
	MethodAverageRate      Method = "Average Rate"
	MethodInsufficientData Method = "Insufficient Data"
)

// AlternativeResult is the trip count the non-chosen method would have
// produced, attached for transparency.
type AlternativeResult struct {
	Method         Method `json:"method"`
	Trips          int    `json:"trips"`
	Formula        string `json:"formula,omitempty"`
	NotRecommended bool   `json:"not_recommended,omitempty"`
}

// PeriodResult is the output of the rate-selection engine for one period.
// Trips is unknown when the period had no usable rate or equation.
type PeriodResult struct {
	Trips        OptInt             `json:"trips"`
	Method       Method             `json:"method"`
	Formula      string             `json:"formula,omitempty"`
	Rate         OptFloat           `json:"rate"`
	RSquared     OptFloat           `json:"r_squared"`
	SampleSize   OptInt             `json:"sample_size"`
	Entering     int                `json:"entering"`
	Exiting      int                `json:"exiting"`
	EnteringPct  float64            `json:"entering_pct"`
	ExitingPct   float64            `json:"exiting_pct"`
	Caution      bool               `json:"caution"`
	MethodReason string             `json:"method_reason,omitempty"`
	Alternative  *AlternativeResult `json:"alternative,omitempty"`
	StudyRange   *StudyRange        `json:"study_range,omitempty"`
	Message      string             `json:"message,omitempty"`
}

// SampleQuality grades the study sample size.
type SampleQuality string

const (
	SampleGood       SampleQuality = "Good"
	SampleAdequate   SampleQuality = "Adequate"
	SampleLow        SampleQuality = "Low"
	SampleUnreliable SampleQuality = "Very Unreliable"
)

// CorrelationQuality grades the fitted curve's goodness of fit.
type CorrelationQuality string

const (
	CorrelationGood CorrelationQuality = "Good"
	CorrelationFair CorrelationQuality = "Fair"
	CorrelationPoor CorrelationQuality = "Poor"
	CorrelationNone CorrelationQuality = "No Correlation"
	CorrelationNA   CorrelationQuality = "N/A"
)

// ConfidenceLevel is the composed confidence signal for a whole analysis.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// QualityAssessment grades sample size and correlation strength. It is
// keyed off the weekday period for the whole analysis.
type QualityAssessment struct {
	SampleSize         OptInt             `json:"sample_size"`
	SampleQuality      SampleQuality      `json:"sample_quality"`
	RSquared           OptFloat           `json:"r_squared"`
	CorrelationQuality CorrelationQuality `json:"correlation_quality"`
	ConfidenceLevel    ConfidenceLevel    `json:"confidence_level"`
}

// ThresholdStatus is the overall verdict against policy thresholds.
type ThresholdStatus string

const (
	StatusPass        ThresholdStatus = "PASS"
	StatusWarning     ThresholdStatus = "WARNING"
	StatusTIARequired ThresholdStatus = "TIA REQUIRED"
)

// ThresholdDetail is one row of the threshold audit table.
type ThresholdDetail struct {
	Name     string `json:"name"`
	Limit    int    `json:"limit"`
	Unit     string `json:"unit"`
	Observed string `json:"observed"`
	Status   string `json:"status"`
}

// ThresholdVerdict is the result of comparing computed volumes against the
// configured policy thresholds.
type ThresholdVerdict struct {
	PeakHourWarning bool              `json:"peak_hour_warning"`
	DailyWarning    bool              `json:"daily_warning"`
	TIARequired     bool              `json:"tia_required"`
	OverallStatus   ThresholdStatus   `json:"overall_status"`
	Warnings        []string          `json:"warnings,omitempty"`
	Details         []ThresholdDetail `json:"details"`
}

// ModalResult is the per-mode sub-result of an analysis. An unavailable
// mode carries a message instead of period results.
type ModalResult struct {
	Mode         Mode                    `json:"mode"`
	Available    bool                    `json:"available"`
	UsedFallback bool                    `json:"used_fallback,omitempty"`
	Message      string                  `json:"message,omitempty"`
	Periods      map[Period]PeriodResult `json:"periods,omitempty"`
}

// AnalysisResult is the full output of one trip-generation calculation.
// Business failures (unknown code, bad size) are carried in Success/Error
// rather than raised as errors.
type AnalysisResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	Code     string  `json:"code,omitempty"`
	Name     string  `json:"name,omitempty"`
	Category string  `json:"category,omitempty"`
	Size     float64 `json:"size,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Source   string  `json:"source,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`

	Periods    map[Period]PeriodResult `json:"periods,omitempty"`
	Quality    *QualityAssessment      `json:"quality,omitempty"`
	Thresholds *ThresholdVerdict       `json:"thresholds,omitempty"`
	Modes      map[Mode]ModalResult    `json:"modes,omitempty"`
}

// Analysis is the persistence envelope for a saved AnalysisResult.
type Analysis struct {
	ID        string         `json:"id"`
	Label     string         `json:"label,omitempty"`
	Code      string         `json:"code"`
	Result    AnalysisResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
