package model

// Period identifies a time period within a land-use record.
type Period string

const (
	PeriodWeekday  Period = "weekday"
	PeriodAMPeak   Period = "am_peak"
	PeriodPMPeak   Period = "pm_peak"
	PeriodSaturday Period = "saturday"
	PeriodSunday   Period = "sunday"
)

// EquationType tags a fitted-curve equation variant.
type EquationType string

const (
	EquationLinear     EquationType = "linear"
	EquationLog        EquationType = "log"
	EquationPolynomial EquationType = "polynomial"
)

// Equation is a fitted-curve descriptor from the reference manual.
// B and C default to zero when the manual omits them.
type Equation struct {
	Type EquationType `json:"type" yaml:"type"`
	A    float64      `json:"a" yaml:"a"`
	B    float64      `json:"b,omitempty" yaml:"b,omitempty"`
	C    float64      `json:"c,omitempty" yaml:"c,omitempty"`
}

// StudyRange is the size range covered by the original studies for a period.
type StudyRange struct {
	Min float64  `json:"min" yaml:"min"`
	Max float64  `json:"max" yaml:"max"`
	Avg OptFloat `json:"avg,omitempty" yaml:"avg,omitempty"`
}

// PeriodRates holds the statistical parameters for one time period.
type PeriodRates struct {
	Rate        OptFloat    `json:"rate" yaml:"rate"`
	Equation    *Equation   `json:"equation,omitempty" yaml:"equation,omitempty"`
	RSquared    OptFloat    `json:"r_squared" yaml:"r_squared"`
	SampleSize  OptInt      `json:"sample_size" yaml:"sample_size"`
	EnteringPct OptFloat    `json:"entering,omitempty" yaml:"entering,omitempty"`
	ExitingPct  OptFloat    `json:"exiting,omitempty" yaml:"exiting,omitempty"`
	StudyRange  *StudyRange `json:"study_range,omitempty" yaml:"study_range,omitempty"`
}

// Empty reports whether the period carries no usable statistics at all.
func (p PeriodRates) Empty() bool {
	return !p.Rate.Valid && p.Equation == nil
}

// LandUseRecord is one entry in the reference dataset, read-only after load.
type LandUseRecord struct {
	Code     string `json:"code" yaml:"code"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Unit     string `json:"unit" yaml:"unit"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`

	Weekday  PeriodRates  `json:"weekday" yaml:"weekday"`
	AMPeak   PeriodRates  `json:"am_peak" yaml:"am_peak"`
	PMPeak   PeriodRates  `json:"pm_peak" yaml:"pm_peak"`
	Saturday *PeriodRates `json:"saturday,omitempty" yaml:"saturday,omitempty"`
	Sunday   *PeriodRates `json:"sunday,omitempty" yaml:"sunday,omitempty"`
}

// PeriodByName returns the named period's rates, or nil when the record does
// not carry that period.
func (r *LandUseRecord) PeriodByName(p Period) *PeriodRates {
	switch p {
	case PeriodWeekday:
		return &r.Weekday
	case PeriodAMPeak:
		return &r.AMPeak
	case PeriodPMPeak:
		return &r.PMPeak
	case PeriodSaturday:
		return r.Saturday
	case PeriodSunday:
		return r.Sunday
	}
	return nil
}

// CodeSummary is the lightweight listing shape used by search and
// category listings.
type CodeSummary struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// Mode identifies a travel mode for modal analysis.
type Mode string

const (
	ModeVehicle Mode = "vehicle"
	ModePerson  Mode = "person"
	ModeWalk    Mode = "walk"
	ModeBicycle Mode = "bicycle"
	ModeTransit Mode = "transit"

	// ModeWalkBikeTransit is the combined aggregate published when
	// per-mode counts were not collected separately.
	ModeWalkBikeTransit Mode = "walk_bike_transit"
)

// ModalRecord holds per-mode trip rates for one land-use code.
type ModalRecord struct {
	Code    string      `json:"code" yaml:"code"`
	Mode    Mode        `json:"mode" yaml:"mode"`
	Weekday PeriodRates `json:"weekday" yaml:"weekday"`
	AMPeak  PeriodRates `json:"am_peak" yaml:"am_peak"`
	PMPeak  PeriodRates `json:"pm_peak" yaml:"pm_peak"`
}
