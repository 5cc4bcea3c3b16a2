package sheetstore

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// idRandomBytes is the number of random bytes per identifier
// candidate; rendered as hex this yields 8 characters.
const idRandomBytes = 4

// NewID draws cryptographically random identifiers until one does not
// collide with the identifier of any record in existing. With a
// 32-bit keyspace the loop terminates on the first draw at realistic
// record counts; a fully exhausted keyspace would loop forever, which
// is accepted in exchange for never returning a duplicate.
func NewID(existing []Record) (string, error) {
	buf := make([]byte, idRandomBytes)
	for {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to draw random identifier: %w", err)
		}
		id := strings.ToUpper(hex.EncodeToString(buf))
		if !idTaken(existing, id) {
			return id, nil
		}
	}
}

func idTaken(existing []Record, id string) bool {
	for _, record := range existing {
		if record.ID() == id {
			return true
		}
	}
	return false
}
