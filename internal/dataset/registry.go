// Package dataset loads and indexes the land-use reference data. Records are
// validated once at load time and read-only afterwards, so calculation code
// never has to defend against malformed entries.
package dataset

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/tripgen-cli/internal/model"
)

// Registry is the in-memory index over the land-use reference dataset.
type Registry struct {
	records map[string]*model.LandUseRecord
	codes   []string
}

// NewRegistry validates and indexes the given records.
func NewRegistry(records []model.LandUseRecord) (*Registry, error) {
	r := &Registry{
		records: make(map[string]*model.LandUseRecord, len(records)),
		codes:   make([]string, 0, len(records)),
	}

	for i := range records {
		rec := &records[i]
		if err := validateRecord(rec); err != nil {
			return nil, err
		}
		if _, dup := r.records[rec.Code]; dup {
			return nil, eris.Errorf("dataset: duplicate code %s", rec.Code)
		}
		r.records[rec.Code] = rec
		r.codes = append(r.codes, rec.Code)
	}

	sort.Strings(r.codes)
	return r, nil
}

func validateRecord(rec *model.LandUseRecord) error {
	if rec.Code == "" {
		return eris.New("dataset: record with empty code")
	}
	if rec.Name == "" || rec.Unit == "" {
		return eris.Errorf("dataset: code %s missing name or unit", rec.Code)
	}

	periods := map[model.Period]*model.PeriodRates{
		model.PeriodWeekday:  &rec.Weekday,
		model.PeriodAMPeak:   &rec.AMPeak,
		model.PeriodPMPeak:   &rec.PMPeak,
		model.PeriodSaturday: rec.Saturday,
		model.PeriodSunday:   rec.Sunday,
	}
	for name, p := range periods {
		if p == nil {
			continue
		}
		if err := validatePeriod(p); err != nil {
			return eris.Wrapf(err, "dataset: code %s period %s", rec.Code, name)
		}
	}
	return nil
}

func validatePeriod(p *model.PeriodRates) error {
	if p.Rate.Valid && p.Rate.Value < 0 {
		return eris.Errorf("negative rate %.4f", p.Rate.Value)
	}
	if p.RSquared.Valid && (p.RSquared.Value < 0 || p.RSquared.Value > 1) {
		return eris.Errorf("r_squared %.4f outside [0,1]", p.RSquared.Value)
	}
	if p.SampleSize.Valid && p.SampleSize.Value < 0 {
		return eris.Errorf("negative sample size %d", p.SampleSize.Value)
	}
	if p.EnteringPct.Valid && p.ExitingPct.Valid {
		if sum := p.EnteringPct.Value + p.ExitingPct.Value; sum != 100 {
			return eris.Errorf("entering+exiting = %.2f, want 100", sum)
		}
	}
	if eq := p.Equation; eq != nil {
		switch eq.Type {
		case model.EquationLinear, model.EquationLog, model.EquationPolynomial:
		default:
			return eris.Errorf("unknown equation type %q", eq.Type)
		}
	}
	if p.StudyRange != nil && p.StudyRange.Min > p.StudyRange.Max {
		return eris.Errorf("study range min %.2f > max %.2f", p.StudyRange.Min, p.StudyRange.Max)
	}
	return nil
}

// Lookup returns the record for a code.
func (r *Registry) Lookup(code string) (*model.LandUseRecord, bool) {
	rec, ok := r.records[code]
	return rec, ok
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.codes)
}

// AllCodes returns every code in ascending order.
func (r *Registry) AllCodes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// ByCategory groups code summaries by category, codes ascending within each.
func (r *Registry) ByCategory() map[string][]model.CodeSummary {
	out := make(map[string][]model.CodeSummary)
	for _, code := range r.codes {
		rec := r.records[code]
		out[rec.Category] = append(out[rec.Category], summary(rec))
	}
	return out
}

// Search matches the query case-insensitively against code, name and
// category substrings. Results are sorted by code ascending.
func (r *Registry) Search(query string) []model.CodeSummary {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []model.CodeSummary
	for _, code := range r.codes {
		rec := r.records[code]
		if strings.Contains(strings.ToLower(rec.Code), q) ||
			strings.Contains(strings.ToLower(rec.Name), q) ||
			strings.Contains(strings.ToLower(rec.Category), q) {
			out = append(out, summary(rec))
		}
	}
	return out
}

func summary(rec *model.LandUseRecord) model.CodeSummary {
	return model.CodeSummary{
		Code:     rec.Code,
		Name:     rec.Name,
		Category: rec.Category,
		Unit:     rec.Unit,
	}
}
