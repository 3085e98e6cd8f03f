package calculation

import "github.com/google/uuid"

// runIDFunc returns the identifier stamped on each comparison (override in tests for determinism).
var runIDFunc = uuid.NewString

// SetRunIDFunc overrides the run ID provider (use only in tests).
func SetRunIDFunc(f func() string) { runIDFunc = f }
