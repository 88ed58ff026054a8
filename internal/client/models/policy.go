package models

import (
	"fmt"
	"strings"
)

// PartialPolicy decides what happens to a batch in which some files were
// accepted and others rejected.
type PartialPolicy string

const (
	// PolicyProceed uploads the accepted subset and reports the rest.
	PolicyProceed PartialPolicy = "proceed"
	// PolicyReject refuses the whole batch.
	PolicyReject PartialPolicy = "reject"
	// PolicyConfirm asks before uploading the accepted subset.
	PolicyConfirm PartialPolicy = "confirm"
)

// ParsePartialPolicy accepts the policy names case-insensitively. The empty
// string means PolicyProceed.
func ParsePartialPolicy(s string) (PartialPolicy, error) {
	switch p := PartialPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyProceed, nil
	case PolicyProceed, PolicyReject, PolicyConfirm:
		return p, nil
	default:
		return "", fmt.Errorf("unknown partial policy %q", s)
	}
}
