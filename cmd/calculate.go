package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tripgen-cli/internal/engine"
	"github.com/sells-group/tripgen-cli/internal/model"
)

var (
	calcModes   []string
	calcWeekend bool
	calcSave    bool
	calcLabel   string
)

var calculateCmd = &cobra.Command{
	Use:   "calculate CODE SIZE",
	Short: "Compute a trip-generation estimate for a land-use code and size",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		size, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return eris.Wrapf(err, "parse size %q", args[1])
		}

		calc, err := buildCalculator()
		if err != nil {
			return err
		}

		opts := engine.Options{IncludeWeekend: calcWeekend}
		for _, m := range calcModes {
			opts.Modes = append(opts.Modes, model.Mode(m))
		}

		result := calc.Calculate(code, size, opts)

		if calcSave && result.Success {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			saved, err := st.SaveAnalysis(cmd.Context(), calcLabel, result)
			if err != nil {
				return err
			}
			zap.L().Info("analysis saved", zap.String("id", saved.ID))
		}

		return printJSON(result)
	},
}

func init() {
	calculateCmd.Flags().StringSliceVar(&calcModes, "modes", []string{"vehicle"}, "travel modes to analyze (vehicle, person, walk, bicycle, transit)")
	calculateCmd.Flags().BoolVar(&calcWeekend, "weekend", false, "include saturday and sunday periods")
	calculateCmd.Flags().BoolVar(&calcSave, "save", false, "persist the analysis")
	calculateCmd.Flags().StringVar(&calcLabel, "label", "", "label for the saved analysis")
	rootCmd.AddCommand(calculateCmd)
}
