// Package fsutil provides the small file system helpers mdrefcheck needs:
// atomic writes for generated configuration and content fingerprints for
// detecting no-op saves in watch mode.
package fsutil

import (
	"crypto/sha256"
	"fmt"
	"os"
)

// Fingerprint is the SHA-256 hash of a file's content.
type Fingerprint [sha256.Size]byte

// FingerprintFile reads path and returns the hash of its content.
func FingerprintFile(path string) (Fingerprint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("fingerprint %s: %w", path, err)
	}
	return sha256.Sum256(content), nil
}

// FingerprintSet remembers the last fingerprint seen for each path.
// It is not safe for concurrent use.
type FingerprintSet struct {
	sums map[string]Fingerprint
}

// NewFingerprintSet creates an empty FingerprintSet.
func NewFingerprintSet() *FingerprintSet {
	return &FingerprintSet{sums: make(map[string]Fingerprint)}
}

// Changed hashes path and reports whether its content differs from the
// last call for the same path. The first call for a path reports true.
// A file that cannot be read is forgotten and reported as unchanged.
func (s *FingerprintSet) Changed(path string) bool {
	sum, err := FingerprintFile(path)
	if err != nil {
		delete(s.sums, path)
		return false
	}

	if prev, ok := s.sums[path]; ok && prev == sum {
		return false
	}
	s.sums[path] = sum
	return true
}
