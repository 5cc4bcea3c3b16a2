package main

import (
	"context"
	"fmt"
	"log"

	sheetstore "github.com/ideamans/go-sheetstore"
	"github.com/ideamans/go-sheetstore/adapters/googlesheets"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	// Initialize the Google Sheets transport with a JSON key file
	transport, err := googlesheets.NewWithJSONKeyFile(ctx, googlesheets.Config{
		SpreadsheetID: "your-spreadsheet-id",
	}, "./service-account.json")
	if err != nil {
		return fmt.Errorf("failed to create transport: %w", err)
	}

	// One store per sheet; the first header cell is exposed as "ID"
	store := sheetstore.New(transport, "users", nil)

	// Insert a record; the ID is generated and returned
	inserted, err := store.Insert(ctx, sheetstore.Record{
		"Name":   "John Doe",
		"Email":  "john@example.com",
		"Status": "active",
	})
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}
	fmt.Printf("inserted with ID %s\n", inserted[0].ID())

	// Query by equality criteria (AND semantics)
	active, err := store.Query(ctx, sheetstore.Criteria{"Status": "active"})
	if err != nil {
		return fmt.Errorf("failed to query: %w", err)
	}
	for _, record := range active {
		fmt.Printf("%s: %s\n", record.ID(), record.GetAsString("Name", ""))
	}

	// Patch every matching record in one batched write
	updated, err := store.Update(ctx,
		sheetstore.Criteria{"ID": inserted[0].ID()},
		sheetstore.Record{"Status": "suspended"},
	)
	if err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}
	fmt.Printf("updated %d record(s)\n", len(updated))

	return nil
}
