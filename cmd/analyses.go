package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tripgen-cli/internal/store"
)

var (
	analysesCode   string
	analysesLimit  int
	analysesOffset int
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "Manage saved analyses",
}

var analysesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		analyses, err := st.ListAnalyses(cmd.Context(), store.AnalysisFilter{
			Code:   analysesCode,
			Limit:  analysesLimit,
			Offset: analysesOffset,
		})
		if err != nil {
			return err
		}

		if len(analyses) == 0 {
			fmt.Println("no saved analyses")
			return nil
		}
		for _, a := range analyses {
			label := a.Label
			if label == "" {
				label = "-"
			}
			fmt.Printf("%s  %-6s %-30s %s\n", a.ID, a.Code, label, a.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var analysesGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		a, err := st.GetAnalysis(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(a)
	},
}

var analysesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a saved analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteAnalysis(cmd.Context(), args[0]); err != nil {
			return err
		}
		zap.L().Info("analysis deleted", zap.String("id", args[0]))
		return nil
	},
}

func init() {
	analysesListCmd.Flags().StringVar(&analysesCode, "code", "", "filter by land-use code")
	analysesListCmd.Flags().IntVar(&analysesLimit, "limit", 50, "max analyses to list")
	analysesListCmd.Flags().IntVar(&analysesOffset, "offset", 0, "list offset")

	analysesCmd.AddCommand(analysesListCmd, analysesGetCmd, analysesDeleteCmd)
	rootCmd.AddCommand(analysesCmd)
}
