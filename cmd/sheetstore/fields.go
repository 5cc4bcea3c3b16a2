package main

import (
	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Print the field list derived from the header row",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := buildStore(cmd.Context())
		if err != nil {
			return err
		}

		fields, err := store.Fields(cmd.Context())
		if err != nil {
			return err
		}

		return printJSON(fields)
	},
}
