package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/tripgen-cli/internal/config"
	"github.com/sells-group/tripgen-cli/internal/dataset"
	"github.com/sells-group/tripgen-cli/internal/model"
)

// Calculator is the trip-generation orchestrator. It is stateless apart from
// the injected read-only registries and policy configuration, so concurrent
// calls are safe.
type Calculator struct {
	registry   *dataset.Registry
	modal      *dataset.ModalRegistry
	selector   *Selector
	thresholds config.ThresholdConfig

	now func() time.Time // injectable for deterministic tests
}

// Options controls which periods and modes a calculation covers.
type Options struct {
	Modes          []model.Mode
	IncludeWeekend bool
}

// NewCalculator wires the orchestrator. The modal registry may be nil when
// no modal data is loaded; modal requests then degrade to unavailable.
func NewCalculator(reg *dataset.Registry, modal *dataset.ModalRegistry, thresholds config.ThresholdConfig, guards config.GuardConfig) *Calculator {
	return &Calculator{
		registry:   reg,
		modal:      modal,
		selector:   NewSelector(thresholds, guards),
		thresholds: thresholds,
		now:        time.Now,
	}
}

// Calculate runs the full analysis for one land-use code and development
// size. Unknown codes and non-positive sizes come back as unsuccessful
// results with a display-ready message; a missing mode or missing weekend
// data degrades to an unavailable sub-result rather than aborting.
func (c *Calculator) Calculate(code string, size float64, opts Options) *model.AnalysisResult {
	res := &model.AnalysisResult{GeneratedAt: c.now().UTC()}

	rec, ok := c.registry.Lookup(code)
	if !ok {
		res.Error = fmt.Sprintf("ITE Code %s not found in database", code)
		return res
	}
	if size <= 0 {
		res.Error = fmt.Sprintf("development size must be a positive number of %s, got %.4g", rec.Unit, size)
		return res
	}

	res.Success = true
	res.Code = rec.Code
	res.Name = rec.Name
	res.Category = rec.Category
	res.Unit = rec.Unit
	res.Source = rec.Source
	res.Size = size

	res.Periods = map[model.Period]model.PeriodResult{
		model.PeriodWeekday: c.selector.EstimatePeriod(rec.Weekday, size),
		model.PeriodAMPeak:  c.selector.EstimatePeriod(rec.AMPeak, size),
		model.PeriodPMPeak:  c.selector.EstimatePeriod(rec.PMPeak, size),
	}
	if opts.IncludeWeekend {
		res.Periods[model.PeriodSaturday] = c.weekendPeriod(rec.Saturday, model.PeriodSaturday, size)
		res.Periods[model.PeriodSunday] = c.weekendPeriod(rec.Sunday, model.PeriodSunday, size)
	}

	quality := AssessQuality(rec.Weekday, c.thresholds)
	res.Quality = &quality

	verdict := EvaluateThresholds(
		res.Periods[model.PeriodWeekday].Trips.Or(0),
		res.Periods[model.PeriodAMPeak].Trips.Or(0),
		res.Periods[model.PeriodPMPeak].Trips.Or(0),
		c.thresholds,
	)
	res.Thresholds = &verdict

	for _, mode := range opts.Modes {
		if mode == model.ModeVehicle {
			// Vehicle trips are the base analysis above.
			continue
		}
		if res.Modes == nil {
			res.Modes = make(map[model.Mode]model.ModalResult)
		}
		res.Modes[mode] = c.modalResult(rec.Code, mode, size)
	}

	zap.L().Info("engine: analysis complete",
		zap.String("code", rec.Code),
		zap.Float64("size", size),
		zap.Int("weekday_trips", res.Periods[model.PeriodWeekday].Trips.Or(0)),
		zap.String("status", string(verdict.OverallStatus)),
		zap.String("confidence", string(quality.ConfidenceLevel)),
	)

	return res
}

func (c *Calculator) weekendPeriod(p *model.PeriodRates, name model.Period, size float64) model.PeriodResult {
	if p == nil {
		return model.PeriodResult{
			Method:  model.MethodInsufficientData,
			Message: fmt.Sprintf("no %s data is published for this code", name),
		}
	}
	return c.selector.EstimatePeriod(*p, size)
}

func (c *Calculator) modalResult(code string, mode model.Mode, size float64) model.ModalResult {
	if c.modal == nil {
		return model.ModalResult{
			Mode:    mode,
			Message: fmt.Sprintf("no %s trip data available for code %s", mode, code),
		}
	}

	rec, fallback, ok := c.modal.Lookup(code, mode)
	if !ok {
		return model.ModalResult{
			Mode:    mode,
			Message: fmt.Sprintf("no %s trip data available for code %s", mode, code),
		}
	}

	mr := model.ModalResult{
		Mode:         mode,
		Available:    true,
		UsedFallback: fallback,
		Periods: map[model.Period]model.PeriodResult{
			model.PeriodWeekday: c.selector.EstimatePeriod(rec.Weekday, size),
			model.PeriodAMPeak:  c.selector.EstimatePeriod(rec.AMPeak, size),
			model.PeriodPMPeak:  c.selector.EstimatePeriod(rec.PMPeak, size),
		},
	}
	if fallback {
		mr.Message = fmt.Sprintf("no %s-specific data for code %s, using the combined walk/bike/transit aggregate", mode, code)
	}
	return mr
}

// Search matches the query against code, name and category.
func (c *Calculator) Search(query string) []model.CodeSummary {
	return c.registry.Search(query)
}

// ByCategory groups the dataset's code summaries by category.
func (c *Calculator) ByCategory() map[string][]model.CodeSummary {
	return c.registry.ByCategory()
}

// Details returns the full reference record for a code.
func (c *Calculator) Details(code string) (*model.LandUseRecord, bool) {
	return c.registry.Lookup(code)
}
