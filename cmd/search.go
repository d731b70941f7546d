package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search land-use codes by code, name or category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calc, err := buildCalculator()
		if err != nil {
			return err
		}

		matches := calc.Search(args[0])
		if searchJSON {
			return printJSON(matches)
		}

		if len(matches) == 0 {
			fmt.Println("no matching land-use codes")
			return nil
		}
		for _, m := range matches {
			fmt.Printf("%-6s %-45s %-14s per %s\n", m.Code, m.Name, m.Category, m.Unit)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(searchCmd)
}
