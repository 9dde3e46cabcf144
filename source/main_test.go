package source_test

import (
	"testing"

	"go.uber.org/goleak"
)

// JSONReader pulls from caller-supplied readers; a reader that spawns
// goroutines (or a future read-ahead decoder) must not outlive Encode.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
