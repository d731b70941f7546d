package main

import (
	"context"
	"encoding/csv"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/tripgen-cli/internal/engine"
	"github.com/sells-group/tripgen-cli/internal/model"
	"github.com/sells-group/tripgen-cli/internal/store"
)

var (
	batchSave        bool
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Run trip-generation calculations for a CSV of developments",
	Long:  "Reads rows of code,size[,modes[,label]] (modes separated by ';') and calculates each independently. A failing row is logged and skipped, never aborting the batch.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rows, err := readBatchFile(args[0])
		if err != nil {
			return err
		}

		calc, err := buildCalculator()
		if err != nil {
			return err
		}

		var st store.Store
		if batchSave {
			st, err = openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrent
		}
		return processBatch(ctx, calc, st, rows, concurrency)
	},
}

func init() {
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "persist each successful analysis")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max concurrent calculations (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// batchRow is one parsed line of the batch input file.
type batchRow struct {
	Code  string
	Size  float64
	Modes []model.Mode
	Label string
}

// parseBatchRow parses a code,size[,modes[,label]] record.
func parseBatchRow(record []string) (batchRow, error) {
	if len(record) < 2 {
		return batchRow{}, eris.New("batch: row needs at least code and size")
	}

	row := batchRow{Code: strings.TrimSpace(record[0])}
	size, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return batchRow{}, eris.Wrapf(err, "batch: parse size %q", record[1])
	}
	row.Size = size

	if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
		for _, m := range strings.Split(record[2], ";") {
			row.Modes = append(row.Modes, model.Mode(strings.TrimSpace(m)))
		}
	}
	if len(record) > 3 {
		row.Label = strings.TrimSpace(record[3])
	}
	return row, nil
}

func readBatchFile(path string) ([]batchRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open input file")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "batch: read csv")
	}

	var rows []batchRow
	for i, record := range records {
		// Skip a header line.
		if i == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "code") {
			continue
		}
		row, err := parseBatchRow(record)
		if err != nil {
			return nil, eris.Wrapf(err, "batch: row %d", i+1)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// processBatch calculates each row concurrently. Rows that fail business
// validation are counted, logged and skipped.
func processBatch(ctx context.Context, calc *engine.Calculator, st store.Store, rows []batchRow, concurrency int) error {
	if len(rows) == 0 {
		zap.L().Info("batch: no rows to process")
		return nil
	}

	zap.L().Info("batch: processing",
		zap.Int("rows", len(rows)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, row := range rows {
		row := row
		g.Go(func() error {
			log := zap.L().With(zap.String("code", row.Code), zap.Float64("size", row.Size))

			result := calc.Calculate(row.Code, row.Size, engine.Options{Modes: row.Modes})
			if !result.Success {
				failed.Add(1)
				log.Warn("batch: calculation failed", zap.String("error", result.Error))
				return nil // don't abort the batch on an individual failure
			}

			if st != nil {
				if _, err := st.SaveAnalysis(gctx, row.Label, result); err != nil {
					failed.Add(1)
					log.Error("batch: save failed", zap.Error(err))
					return nil
				}
			}

			succeeded.Add(1)
			log.Info("batch: calculation complete",
				zap.Int("weekday_trips", result.Periods[model.PeriodWeekday].Trips.Or(0)),
				zap.String("status", string(result.Thresholds.OverallStatus)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch: processing")
	}

	zap.L().Info("batch: complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
