package main

import (
	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <records-json|->",
	Short: "Append records, assigning identifiers where missing",
	Long: `Append one or more records to the sheet. The argument is a JSON
object or array of objects, or "-" to read JSON from stdin. Records
without an ID field get a generated identifier; the inserted records
are printed with identifiers filled in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readRecordsArg(args[0])
		if err != nil {
			return err
		}

		store, err := buildStore(cmd.Context())
		if err != nil {
			return err
		}

		inserted, err := store.Insert(cmd.Context(), records...)
		if err != nil {
			return err
		}

		return printJSON(inserted)
	},
}
