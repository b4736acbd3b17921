package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FeatureSchemaHash computes a stable hex SHA-256 over an ordered feature column list.
// Order matters: the same columns in a different order hash differently.
func FeatureSchemaHash(columns []string) string {
	h := sha256.New()
	for _, c := range columns {
		h.Write([]byte(strings.TrimSpace(c)))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
