package guide

import (
	"errors"
	"fmt"
)

// ErrUnknownGuide matches any *UnknownGuideError via errors.Is.
var ErrUnknownGuide = errors.New("unknown guide")

// UnknownGuideError is returned when an identifier or key does not name a
// defined guide, for example a retired identifier or one from a newer build.
type UnknownGuideError struct {
	ID  int
	Key string

	// byKey is set for key lookups so an empty key still reports as a key.
	byKey bool
}

func (e *UnknownGuideError) Error() string {
	if e.byKey || e.Key != "" {
		return fmt.Sprintf("unknown guide key: %q", e.Key)
	}
	return fmt.Sprintf("unknown guide identifier: %d", e.ID)
}

// Is reports whether target is ErrUnknownGuide.
func (e *UnknownGuideError) Is(target error) bool {
	return target == ErrUnknownGuide
}
