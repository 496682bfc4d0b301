package util

import "github.com/google/uuid"

// NewID generates a new unique identifier.
// This lives in internal to avoid committing to public API stability prematurely.
func NewID() string { return uuid.NewString() }

// ShortID returns a compact 8 character identifier used for display names of
// instances added without an explicit id.
func ShortID() string { return uuid.NewString()[:8] }
