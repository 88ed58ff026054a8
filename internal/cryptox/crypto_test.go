package cryptox

import (
	"testing"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestDigest_KnownValue(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Digest(nil))
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		Digest([]byte("abc")))
}

func TestBatchDigest_Deterministic(t *testing.T) {
	batch := []models.Candidate{{Content: []byte("one")}, {Content: []byte("two")}}

	assert.Equal(t, BatchDigest(batch), BatchDigest(batch))
	assert.Len(t, BatchDigest(batch), 64)
}

func TestBatchDigest_SensitiveToBoundaries(t *testing.T) {
	a := []models.Candidate{{Content: []byte("ab")}, {Content: []byte("c")}}
	b := []models.Candidate{{Content: []byte("a")}, {Content: []byte("bc")}}

	assert.NotEqual(t, BatchDigest(a), BatchDigest(b))
}

func TestBatchDigest_SensitiveToOrder(t *testing.T) {
	a := []models.Candidate{{Content: []byte("x")}, {Content: []byte("y")}}
	b := []models.Candidate{{Content: []byte("y")}, {Content: []byte("x")}}

	assert.NotEqual(t, BatchDigest(a), BatchDigest(b))
}
