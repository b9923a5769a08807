package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrExhaustedEntropy = errors.New("secure random source unavailable")
	ErrInvalidRange     = errors.New("random range must be positive")
)

// RandomSource supplies uniformly distributed integers in [0, n).
type RandomSource interface {
	Uniform(n int) (int, error)
}

// SecureSource is a RandomSource backed by a cryptographically secure reader.
// With the default crypto/rand reader it is safe for concurrent use.
type SecureSource struct {
	reader io.Reader
}

// NewSecureSource returns a SecureSource reading from crypto/rand.
func NewSecureSource() *SecureSource {
	return &SecureSource{reader: rand.Reader}
}

// NewSecureSourceFrom returns a SecureSource reading from r. Intended for tests;
// r must be a CSPRNG in production use.
func NewSecureSourceFrom(r io.Reader) *SecureSource {
	return &SecureSource{reader: r}
}

// Uniform returns an unbiased integer in [0, n).
//
// 64-bit draws at or above the largest multiple of n are rejected and redrawn,
// so every residue is backed by the same number of raw values.
func (s *SecureSource) Uniform(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidRange
	}
	if n == 1 {
		return 0, nil
	}

	bound := uint64(n)
	// 2^64 mod bound, computed without overflowing.
	excess := (math.MaxUint64%bound + 1) % bound
	limit := math.MaxUint64 - excess

	var buf [8]byte
	for {
		if _, err := io.ReadFull(s.reader, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrExhaustedEntropy, err)
		}
		v := binary.BigEndian.Uint64(buf[:])
		if v <= limit {
			return int(v % bound), nil
		}
	}
}

// samplePositions picks k distinct indices from [0, n) using a partial
// Fisher-Yates shuffle over the index range.
func samplePositions(src RandomSource, n, k int) ([]int, error) {
	if k > n {
		k = n
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j, err := src.Uniform(n - i)
		if err != nil {
			return nil, err
		}
		idx[i], idx[i+j] = idx[i+j], idx[i]
	}
	return idx[:k], nil
}

// Shuffle performs an in-place Fisher-Yates shuffle of data using src.
// Shuffle text as []rune so multi-byte characters stay whole.
func Shuffle[T any](src RandomSource, data []T) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := src.Uniform(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
