// Package cryptox computes content digests recorded with upload history.
package cryptox

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
)

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// BatchDigest hashes the candidates' contents in order. Each file's length
// is mixed in before its bytes so that splitting the same bytes
// differently across files gives a different digest.
func BatchDigest(candidates []models.Candidate) string {
	h := sha256.New()
	var lenBuf [8]byte
	for _, c := range candidates {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(c.Content)))
		h.Write(lenBuf[:])
		h.Write(c.Content)
	}
	return hex.EncodeToString(h.Sum(nil))
}
