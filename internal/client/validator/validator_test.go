package validator

import (
	"testing"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(name, typ string) models.Candidate {
	return models.Candidate{Name: name, DeclaredType: typ, Size: 3, Content: []byte("abc")}
}

func TestValidate_PartitionsByDeclaredType(t *testing.T) {
	tests := []struct {
		typ      string
		accepted bool
	}{
		{"image/png", true},
		{"image/jpg", true},
		{"image/jpeg", true},
		{"IMAGE/PNG", true},
		{" image/jpeg ", true},
		{"image/gif", false},
		{"image/webp", false},
		{"text/plain", false},
		{"application/pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			out := Validate([]models.Candidate{candidate("f", tt.typ)})
			if tt.accepted {
				require.Len(t, out.Accepted, 1)
				assert.Empty(t, out.Rejected)
				return
			}
			assert.Empty(t, out.Accepted)
			require.Len(t, out.Rejected, 1)
			if tt.typ != "" {
				assert.Contains(t, out.Rejected[0].Reason, tt.typ)
			}
		})
	}
}

func TestValidate_EmptyInput(t *testing.T) {
	out := Validate(nil)
	assert.Empty(t, out.Accepted)
	assert.Empty(t, out.Rejected)
	assert.False(t, out.HasAccepted())
	assert.False(t, out.HasRejected())
}

func TestValidate_TextPlainIsRejected(t *testing.T) {
	txt := candidate("notes.txt", "text/plain")

	out := Validate([]models.Candidate{txt})

	assert.False(t, out.HasAccepted())
	require.Len(t, out.Rejected, 1)
	assert.Equal(t, txt, out.Rejected[0].Candidate)
	assert.Equal(t, "The filetype text/plain is not allowed", out.Rejected[0].Reason)
}

func TestValidate_MixedBatchKeepsAcceptedSubsetInOrder(t *testing.T) {
	jpeg := candidate("photo.jpg", "image/jpeg")
	pdf := candidate("doc.pdf", "application/pdf")
	png := candidate("shot.png", "image/png")

	out := Validate([]models.Candidate{jpeg, pdf, png})

	assert.Equal(t, []models.Candidate{jpeg, png}, out.Accepted)
	require.Len(t, out.Rejected, 1)
	assert.Equal(t, pdf, out.Rejected[0].Candidate)
	assert.Contains(t, out.Rejected[0].Reason, "application/pdf")
}

func TestValidate_DoesNotModifyInput(t *testing.T) {
	in := []models.Candidate{candidate("a.txt", "text/plain"), candidate("b.png", "image/png")}
	snapshot := append([]models.Candidate(nil), in...)

	_ = Validate(in)

	assert.Equal(t, snapshot, in)
}

func TestRejectionReason_UnknownType(t *testing.T) {
	assert.Equal(t, "The filetype unknown is not allowed", RejectionReason(""))
}

func TestAllowedTypes_AllAccepted(t *testing.T) {
	for _, typ := range AllowedTypes() {
		assert.True(t, IsAllowed(typ), typ)
	}
}
