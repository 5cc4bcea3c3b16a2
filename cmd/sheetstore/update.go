package main

import (
	"github.com/spf13/cobra"

	sheetstore "github.com/ideamans/go-sheetstore"
)

var (
	updateWhere []string
	updateSet   []string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Patch every record matching the given criteria",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := parseAssignments(updateWhere)
		if err != nil {
			return err
		}
		patch, err := parseAssignments(updateSet)
		if err != nil {
			return err
		}

		store, err := buildStore(cmd.Context())
		if err != nil {
			return err
		}

		updated, err := store.Update(cmd.Context(), sheetstore.Criteria(criteria), sheetstore.Record(patch))
		if err != nil {
			return err
		}
		if updated == nil {
			updated = []sheetstore.Record{}
		}

		return printJSON(updated)
	},
}

func init() {
	updateCmd.Flags().StringArrayVarP(&updateWhere, "where", "w", nil, "criteria as Field=value (repeatable, AND semantics)")
	updateCmd.Flags().StringArrayVarP(&updateSet, "set", "s", nil, "patch as Field=value (repeatable)")
	_ = updateCmd.MarkFlagRequired("set")
}
