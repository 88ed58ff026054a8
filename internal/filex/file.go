// Package filex reads local files into upload candidates and prepares the
// directories the client keeps its state in.
package filex

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
)

// DeclaredType returns the media type the operating system associates with
// name's extension, without parameters. Unknown extensions yield "".
func DeclaredType(name string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if t == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return ""
	}
	return mt
}

// LoadCandidate reads path fully. The declared type comes from the file
// extension only; contents are never sniffed.
func LoadCandidate(path string) (models.Candidate, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return models.Candidate{}, fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Candidate{}, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	return models.Candidate{
		Name:         name,
		DeclaredType: DeclaredType(name),
		Size:         int64(len(data)),
		Content:      data,
	}, nil
}

// LoadCandidates loads every path in order and stops at the first error.
func LoadCandidates(paths []string) ([]models.Candidate, error) {
	out := make([]models.Candidate, 0, len(paths))
	for _, p := range paths {
		c, err := LoadCandidate(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// EnsureParentDir creates the directory holding path if it is missing and
// returns it.
func EnsureParentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}
