package crypto

import (
	"fmt"
	"math"
)

// ReferenceBits is the entropy treated as 100% on the strength meter.
const ReferenceBits = 80.0

// Strength is a discrete password strength label.
type Strength int

const (
	VeryWeak Strength = iota
	Weak
	Medium
	Strong
	VeryStrong
)

func (s Strength) String() string {
	switch s {
	case VeryWeak:
		return "very_weak"
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case VeryStrong:
		return "very_strong"
	}
	return fmt.Sprintf("Strength(%d)", int(s))
}

// MarshalText encodes the label for JSON responses.
func (s Strength) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Assessment describes the strength of a generation process.
type Assessment struct {
	EntropyBits float64
	Strength    Strength
	Percent     int
}

// ClassifyStrength maps entropy bits to a label and a meter percentage.
// Thresholds are inclusive lower bounds.
func ClassifyStrength(bits float64) (Strength, int) {
	if bits < 0 || math.IsNaN(bits) {
		bits = 0
	}

	percent := int(math.Min(100, math.Round(bits/ReferenceBits*100)))

	switch {
	case bits >= 80:
		return VeryStrong, percent
	case bits >= 60:
		return Strong, percent
	case bits >= 40:
		return Medium, percent
	case bits >= 24:
		return Weak, percent
	default:
		return VeryWeak, percent
	}
}

// Assess estimates and classifies a pool size and length pair.
func Assess(poolSize, length int) Assessment {
	bits := EstimateEntropy(poolSize, length)
	strength, percent := ClassifyStrength(bits)
	return Assessment{
		EntropyBits: bits,
		Strength:    strength,
		Percent:     percent,
	}
}

// AssessOptions assesses the process described by opts without generating a password.
func AssessOptions(opts GeneratorOptions) (Assessment, Pool, error) {
	pool, err := BuildPool(opts.Classes, opts.ExcludeAmbiguous)
	if err != nil {
		return Assessment{}, "", err
	}
	return Assess(pool.Size(), opts.Length), pool, nil
}
