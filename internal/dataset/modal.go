package dataset

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/tripgen-cli/internal/model"
)

// ModalRegistry indexes per-mode trip rates by (code, mode).
type ModalRegistry struct {
	records map[string]*model.ModalRecord
}

func modalKey(code string, mode model.Mode) string {
	return code + "|" + string(mode)
}

// NewModalRegistry validates and indexes the given modal records.
func NewModalRegistry(records []model.ModalRecord) (*ModalRegistry, error) {
	m := &ModalRegistry{records: make(map[string]*model.ModalRecord, len(records))}
	for i := range records {
		rec := &records[i]
		if rec.Code == "" || rec.Mode == "" {
			return nil, eris.New("dataset: modal record missing code or mode")
		}
		key := modalKey(rec.Code, rec.Mode)
		if _, dup := m.records[key]; dup {
			return nil, eris.Errorf("dataset: duplicate modal record %s/%s", rec.Code, rec.Mode)
		}
		m.records[key] = rec
	}
	return m, nil
}

// fallbackEligible lists the modes covered by the combined
// walk/bike/transit aggregate.
var fallbackEligible = map[model.Mode]bool{
	model.ModeWalk:    true,
	model.ModeBicycle: true,
	model.ModeTransit: true,
}

// Lookup returns the modal record for (code, mode). When the specific mode is
// absent but the combined walk/bike/transit aggregate covers it, the
// aggregate is returned with fallback=true so callers can tell the precision
// apart.
func (m *ModalRegistry) Lookup(code string, mode model.Mode) (rec *model.ModalRecord, fallback bool, ok bool) {
	if rec, ok := m.records[modalKey(code, mode)]; ok {
		return rec, false, true
	}
	if fallbackEligible[mode] {
		if rec, ok := m.records[modalKey(code, model.ModeWalkBikeTransit)]; ok {
			return rec, true, true
		}
	}
	return nil, false, false
}
