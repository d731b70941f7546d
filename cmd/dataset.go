package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/tripgen-cli/internal/dataset"
)

var validateModal bool

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Work with reference dataset files",
}

var datasetValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a land-use or modal dataset file before using it as an override",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		if validateModal {
			records, err := dataset.LoadModalRecordsFromFile(path)
			if err != nil {
				return err
			}
			if _, err := dataset.NewModalRegistry(records); err != nil {
				return err
			}
			fmt.Printf("%s: %d modal records OK\n", path, len(records))
			return nil
		}

		records, err := dataset.LoadRecordsFromFile(path)
		if err != nil {
			return err
		}
		reg, err := dataset.NewRegistry(records)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d land-use records OK\n", path, reg.Len())
		return nil
	},
}

func init() {
	datasetValidateCmd.Flags().BoolVar(&validateModal, "modal", false, "treat the file as modal data")
	datasetCmd.AddCommand(datasetValidateCmd)
	rootCmd.AddCommand(datasetCmd)
}
