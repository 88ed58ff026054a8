// Package validator partitions upload candidates into accepted and rejected
// sets by declared MIME type.
package validator

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
)

// allowedTypes is the fixed allow-set of image types.
var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpg":  true,
	"image/jpeg": true,
}

// Outcome is the result of Validate. Input order is preserved in both slices.
type Outcome struct {
	Accepted []models.Candidate
	Rejected []models.Rejection
}

// HasAccepted reports whether at least one candidate passed validation.
func (o Outcome) HasAccepted() bool { return len(o.Accepted) > 0 }

// HasRejected reports whether at least one candidate was refused.
func (o Outcome) HasRejected() bool { return len(o.Rejected) > 0 }

// Validate accepts a file iff its declared type is in the allow-set.
// It has no side effects; surfacing the reasons is up to the caller.
func Validate(files []models.Candidate) Outcome {
	out := Outcome{
		Accepted: make([]models.Candidate, 0, len(files)),
		Rejected: make([]models.Rejection, 0),
	}

	for _, f := range files {
		if IsAllowed(f.DeclaredType) {
			out.Accepted = append(out.Accepted, f)
			continue
		}
		out.Rejected = append(out.Rejected, models.Rejection{
			Candidate: f,
			Reason:    RejectionReason(f.DeclaredType),
		})
	}

	return out
}

// IsAllowed reports whether declaredType is one of the accepted image types.
// Surrounding whitespace and letter case are ignored.
func IsAllowed(declaredType string) bool {
	return allowedTypes[strings.ToLower(strings.TrimSpace(declaredType))]
}

// RejectionReason formats the user-facing reason for a refused type.
func RejectionReason(declaredType string) string {
	if strings.TrimSpace(declaredType) == "" {
		declaredType = "unknown"
	}
	return fmt.Sprintf("The filetype %s is not allowed", declaredType)
}

// AllowedTypes lists the allow-set, for help output.
func AllowedTypes() []string {
	return []string{"image/png", "image/jpg", "image/jpeg"}
}
