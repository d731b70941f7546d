package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/tripgen-cli/internal/dataset"
	"github.com/sells-group/tripgen-cli/internal/engine"
	"github.com/sells-group/tripgen-cli/internal/store"
)

// buildCalculator loads the reference data (embedded, or override files from
// config) and wires the orchestrator.
func buildCalculator() (*engine.Calculator, error) {
	reg, modal, err := dataset.Open(cfg.Dataset.Path, cfg.Dataset.ModalPath)
	if err != nil {
		return nil, err
	}
	return engine.NewCalculator(reg, modal, cfg.Thresholds, cfg.Guards), nil
}

// openStore opens the configured persistence backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		st, err = store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
