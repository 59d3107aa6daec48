// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
)

// FindPayment finds a payment by sequence number in the schedule.
// Returns a pointer to the payment if found, nil otherwise.
func FindPayment(schedule amortization.Schedule, sequenceNumber int) *amortization.PaymentRecord {
	for i := range schedule.Payments {
		if schedule.Payments[i].SequenceNumber == sequenceNumber {
			return &schedule.Payments[i]
		}
	}
	return nil
}

// WriteConfig writes contents to a file named name inside a fresh temporary
// directory and returns its path.
func WriteConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
