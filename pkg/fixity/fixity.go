// Package fixity computes and persists content digests for downloaded
// documents, so a corpus can be re-verified against the copies originally
// fetched.
package fixity

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"time"
)

// DefaultAlgorithm is the digest algorithm used when none is configured.
const DefaultAlgorithm = "sha256"

// DigestRecord captures one stored digest for a file.
type DigestRecord struct {
	Path       string    `json:"path"`
	Algorithm  string    `json:"algorithm"`
	Digest     string    `json:"digest"`
	SizeBytes  int64     `json:"size_bytes"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ComparisonResult captures the outcome of comparing a file's current digest
// against its stored record.
type ComparisonResult struct {
	Path          string `json:"path"`
	Algorithm     string `json:"algorithm"`
	CurrentDigest string `json:"current_digest"`
	StoredDigest  string `json:"stored_digest,omitempty"`

	// Known reports whether a stored digest existed for the path.
	Known bool `json:"known"`

	// Match reports whether the current digest equals the stored one.
	// Always false when Known is false.
	Match bool `json:"match"`
}

// newHasher returns a hash.Hash for the named algorithm.
func newHasher(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "md5":
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("unsupported digest algorithm: %q", algorithm)
	}
}

// ComputeDigest streams the file through the named algorithm and returns the
// hex digest and the number of bytes read.
func ComputeDigest(filePath string, algorithm string) (string, int64, error) {
	hasher, err := newHasher(algorithm)
	if err != nil {
		return "", 0, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	bytesRead, err := io.Copy(hasher, file)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), bytesRead, nil
}

// Checker computes digests and records them in a persistent store.
type Checker struct {
	store     *Store
	algorithm string
}

// NewChecker opens (or initializes) the digest store at storePath. An empty
// algorithm selects DefaultAlgorithm.
func NewChecker(storePath string, algorithm string) (*Checker, error) {
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	if _, err := newHasher(algorithm); err != nil {
		return nil, err
	}

	store, err := LoadStore(storePath)
	if err != nil {
		return nil, err
	}

	return &Checker{store: store, algorithm: algorithm}, nil
}

// SaveDigest computes the file's digest, records it in the store, and
// persists the store.
func (checker *Checker) SaveDigest(filePath string) (DigestRecord, error) {
	digest, sizeBytes, err := ComputeDigest(filePath, checker.algorithm)
	if err != nil {
		return DigestRecord{}, err
	}

	record := DigestRecord{
		Path:       filePath,
		Algorithm:  checker.algorithm,
		Digest:     digest,
		SizeBytes:  sizeBytes,
		RecordedAt: time.Now(),
	}
	checker.store.Record(record)

	if err := checker.store.Save(); err != nil {
		return DigestRecord{}, err
	}
	return record, nil
}

// Compare computes the file's current digest and compares it against the
// stored record, if any. The digest is computed with the stored record's
// algorithm when one exists, so records survive a configured-algorithm
// change.
func (checker *Checker) Compare(filePath string) (ComparisonResult, error) {
	algorithm := checker.algorithm
	stored, known := checker.store.Lookup(filePath)
	if known && stored.Algorithm != "" {
		algorithm = stored.Algorithm
	}

	currentDigest, _, err := ComputeDigest(filePath, algorithm)
	if err != nil {
		return ComparisonResult{}, err
	}

	result := ComparisonResult{
		Path:          filePath,
		Algorithm:     algorithm,
		CurrentDigest: currentDigest,
		Known:         known,
	}
	if known {
		result.StoredDigest = stored.Digest
		result.Match = stored.Digest == currentDigest
	}
	return result, nil
}

// Lookup returns the stored record for a path.
func (checker *Checker) Lookup(filePath string) (DigestRecord, bool) {
	return checker.store.Lookup(filePath)
}
