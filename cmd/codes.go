package main

import (
	"fmt"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var codesCmd = &cobra.Command{
	Use:   "codes [CODE]",
	Short: "List land-use codes by category, or show one code's reference data",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, err := buildCalculator()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			rec, ok := calc.Details(args[0])
			if !ok {
				return eris.Errorf("ITE Code %s not found in database", args[0])
			}
			return printJSON(rec)
		}

		byCat := calc.ByCategory()
		categories := make([]string, 0, len(byCat))
		for cat := range byCat {
			categories = append(categories, cat)
		}
		sort.Strings(categories)

		for _, cat := range categories {
			fmt.Printf("%s:\n", cat)
			for _, s := range byCat[cat] {
				fmt.Printf("  %-6s %-45s per %s\n", s.Code, s.Name, s.Unit)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(codesCmd)
}
