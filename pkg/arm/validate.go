package arm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidResourceID reports a string that does not round-trip
	// through Parse and Build unchanged.
	ErrInvalidResourceID = errors.New("invalid resource id")

	// ErrInvalidResourceName reports a name outside ARM naming rules.
	ErrInvalidResourceName = errors.New("invalid resource name")
)

// namePattern captures the ARM-wide naming floor: 1 to 260 characters,
// none of which may be < > % & : ? or /. Individual services may be more
// restrictive.
var namePattern = regexp.MustCompile(`^[^<>%&:?/]{1,260}$`)

// IsValidResourceID reports whether rid is a well-formed ARM resource
// identifier. Validity is defined by the package's own round-trip
// contract: decomposing and recomposing rid must reproduce it under
// case-insensitive comparison. The empty string is invalid.
func IsValidResourceID(rid string) bool {
	if rid == "" {
		return false
	}
	built, err := Build(ParseFields(rid))
	if err != nil {
		return false
	}
	return strings.EqualFold(built, rid)
}

// ValidateResourceID is the error-returning form of IsValidResourceID,
// for callers that propagate failures instead of branching on a bool.
// The returned error wraps ErrInvalidResourceID.
func ValidateResourceID(rid string) error {
	if !IsValidResourceID(rid) {
		return fmt.Errorf("%w: %q", ErrInvalidResourceID, rid)
	}
	return nil
}

// IsValidResourceName reports whether name satisfies ARM naming rules.
func IsValidResourceName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidateResourceName is the error-returning form of
// IsValidResourceName. The returned error wraps ErrInvalidResourceName.
func ValidateResourceName(name string) error {
	if !IsValidResourceName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidResourceName, name)
	}
	return nil
}
