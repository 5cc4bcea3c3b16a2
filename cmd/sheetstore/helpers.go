package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	sheetstore "github.com/ideamans/go-sheetstore"
)

// parseAssignments turns repeated "Field=value" arguments into a map.
func parseAssignments(args []string) (map[string]string, error) {
	result := make(map[string]string, len(args))
	for _, arg := range args {
		field, value, found := strings.Cut(arg, "=")
		if !found || field == "" {
			return nil, fmt.Errorf("invalid assignment %q (want Field=value)", arg)
		}
		result[field] = value
	}
	return result, nil
}

// printJSON writes v as indented JSON on stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readRecordsArg parses the records argument: inline JSON, or "-" to
// read JSON from stdin. Accepts a single object or an array.
func readRecordsArg(arg string) ([]sheetstore.Record, error) {
	data := []byte(arg)
	if arg == "-" {
		var err error
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	var many []sheetstore.Record
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}

	var one sheetstore.Record
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("records must be a JSON object or array of objects")
	}
	return []sheetstore.Record{one}, nil
}
