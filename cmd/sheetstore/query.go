package main

import (
	"github.com/spf13/cobra"

	sheetstore "github.com/ideamans/go-sheetstore"
)

var queryWhere []string

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print records matching the given criteria",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := parseAssignments(queryWhere)
		if err != nil {
			return err
		}

		store, err := buildStore(cmd.Context())
		if err != nil {
			return err
		}

		records, err := store.Query(cmd.Context(), sheetstore.Criteria(criteria))
		if err != nil {
			return err
		}
		if records == nil {
			records = []sheetstore.Record{}
		}

		return printJSON(records)
	},
}

func init() {
	queryCmd.Flags().StringArrayVarP(&queryWhere, "where", "w", nil, "criteria as Field=value (repeatable, AND semantics)")
}
