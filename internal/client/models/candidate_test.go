package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamesAndTotalSize(t *testing.T) {
	cs := []Candidate{
		{Name: "a.png", Size: 10},
		{Name: "b.jpg", Size: 32},
	}

	assert.Equal(t, []string{"a.png", "b.jpg"}, Names(cs))
	assert.Equal(t, int64(42), TotalSize(cs))
}

func TestNamesAndTotalSize_Empty(t *testing.T) {
	assert.Empty(t, Names(nil))
	assert.NotNil(t, Names(nil))
	assert.Zero(t, TotalSize(nil))
}

func TestRejection_ExposesCandidateFields(t *testing.T) {
	r := Rejection{
		Candidate: Candidate{Name: "notes.gif", DeclaredType: "image/gif", Size: 7},
		Reason:    "The filetype image/gif is not allowed",
	}

	assert.Equal(t, "notes.gif", r.Name)
	assert.Equal(t, "image/gif", r.DeclaredType)
	assert.Equal(t, int64(7), r.Size)
}
