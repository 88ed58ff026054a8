// Package models defines the value types passed between the uploader
// components.
package models

// Candidate is one file the user proposed for upload, before validation.
type Candidate struct {
	Name         string
	DeclaredType string
	Size         int64
	Content      []byte
}

// Rejection is a candidate the validator refused, with a human-readable
// reason naming the offending declared type.
type Rejection struct {
	Candidate
	Reason string
}

// Names returns the candidate file names in order.
func Names(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

// TotalSize sums the declared sizes of cs.
func TotalSize(cs []Candidate) int64 {
	var n int64
	for _, c := range cs {
		n += c.Size
	}
	return n
}
