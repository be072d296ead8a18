package contenthash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"

	"github.com/heartmarshall/research-ledger/internal/domain"
)

// Algorithm is the identifier stored next to every digest.
type Algorithm string

const (
	SHA256     Algorithm = "sha256"
	BLAKE2b256 Algorithm = "blake2b-256"
	BLAKE3256  Algorithm = "blake3-256"
)

// Default is used when no algorithm is configured.
const Default = SHA256

var sums = map[Algorithm]func([]byte) [32]byte{
	SHA256:     sha256.Sum256,
	BLAKE2b256: blake2b.Sum256,
	BLAKE3256:  blake3.Sum256,
}

func (a Algorithm) String() string { return string(a) }

// IsSupported reports whether this build can compute a.
func (a Algorithm) IsSupported() bool {
	_, ok := sums[a]
	return ok
}

// ParseAlgorithm validates an identifier read from config or storage.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(s)
	if !a.IsSupported() {
		return "", fmt.Errorf("contenthash: %q: %w", s, domain.ErrUnsupportedAlgorithm)
	}
	return a, nil
}

// SumBytes digests raw bytes and returns lowercase hex.
func SumBytes(alg Algorithm, data []byte) (string, error) {
	sum, ok := sums[alg]
	if !ok {
		return "", fmt.Errorf("contenthash: %q: %w", alg, domain.ErrUnsupportedAlgorithm)
	}
	d := sum(data)
	return hex.EncodeToString(d[:]), nil
}

// Sum canonicalizes payload and digests it with alg.
func Sum(alg Algorithm, payload any) (string, error) {
	canonical, err := Canonicalize(payload)
	if err != nil {
		return "", err
	}
	return SumBytes(alg, canonical)
}

// Hasher binds an algorithm for callers that always hash the same way.
type Hasher struct {
	alg Algorithm
}

// NewHasher returns a Hasher for alg, falling back to Default when alg is empty.
func NewHasher(alg Algorithm) (*Hasher, error) {
	if alg == "" {
		alg = Default
	}
	if !alg.IsSupported() {
		return nil, fmt.Errorf("contenthash: %q: %w", alg, domain.ErrUnsupportedAlgorithm)
	}
	return &Hasher{alg: alg}, nil
}

// Algorithm returns the bound algorithm.
func (h *Hasher) Algorithm() Algorithm { return h.alg }

// Hash returns the hex digest of payload's canonical form.
func (h *Hasher) Hash(payload any) (string, error) {
	return Sum(h.alg, payload)
}

// Short truncates a digest to n hex characters; n <= 0 keeps it whole.
func Short(digest string, n int) string {
	if n <= 0 || n >= len(digest) {
		return digest
	}
	return digest[:n]
}
