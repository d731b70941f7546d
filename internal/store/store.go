// Package store persists completed analyses. The engine knows nothing about
// it; callers save the engine's plain result values through this interface.
package store

import (
	"context"

	"github.com/sells-group/tripgen-cli/internal/model"
)

// AnalysisFilter specifies criteria for listing saved analyses.
type AnalysisFilter struct {
	Code   string `json:"code,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for saved analyses.
type Store interface {
	SaveAnalysis(ctx context.Context, label string, result *model.AnalysisResult) (*model.Analysis, error)
	GetAnalysis(ctx context.Context, id string) (*model.Analysis, error)
	ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]model.Analysis, error)
	DeleteAnalysis(ctx context.Context, id string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
