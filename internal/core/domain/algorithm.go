package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Algorithm names a content digest.
type Algorithm string

// Supported digests. MD5 matches the published release checksums.
const (
	AlgorithmMD5    Algorithm = "md5"
	AlgorithmSHA1   Algorithm = "sha1"
	AlgorithmSHA256 Algorithm = "sha256"
	AlgorithmXXH64  Algorithm = "xxh64"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = AlgorithmMD5

var digestLengths = map[Algorithm]int{
	AlgorithmMD5:    32,
	AlgorithmSHA1:   40,
	AlgorithmSHA256: 64,
	AlgorithmXXH64:  16,
}

// ParseAlgorithm resolves an algorithm name. An empty name selects DefaultAlgorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultAlgorithm, nil
	}
	a := Algorithm(s)
	if _, ok := digestLengths[a]; !ok {
		return "", zerr.With(zerr.Wrap(ErrInvalidAlgorithm, "unknown algorithm"), "algorithm", s)
	}
	return a, nil
}

// DigestLength returns the length of the algorithm's hex digest, or 0 if unknown.
func (a Algorithm) DigestLength() int {
	return digestLengths[a]
}

func (a Algorithm) String() string {
	return string(a)
}
