package crypto

import (
	"errors"
)

var ErrInvalidLength = errors.New("password length must be at least 1")

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length           int
	Classes          []CharClass
	ExcludeAmbiguous bool
}

// DefaultOptions returns sensible defaults: 16 characters with all types enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:  16,
		Classes: AllClasses,
	}
}

// Generator produces passwords from a RandomSource. It holds no mutable state
// of its own and may be shared between goroutines when its source can.
type Generator struct {
	src RandomSource
}

// NewGenerator creates a Generator drawing from src.
func NewGenerator(src RandomSource) *Generator {
	return &Generator{src: src}
}

var defaultGenerator = NewGenerator(NewSecureSource())

// Generate creates a password with the default crypto/rand backed generator.
func Generate(opts GeneratorOptions) (string, error) {
	return defaultGenerator.Generate(opts)
}

// Source returns the random source the generator draws from.
func (g *Generator) Source() RandomSource {
	return g.src
}

// Generate creates a password according to opts.
//
// Every character is drawn uniformly from the pool. When there are at least as
// many positions as selected classes, one randomly chosen position per class is
// then overwritten with a character from that class, so each class appears at
// least once. With more classes than positions no class is guaranteed.
func (g *Generator) Generate(opts GeneratorOptions) (string, error) {
	pool, err := BuildPool(opts.Classes, opts.ExcludeAmbiguous)
	if err != nil {
		return "", err
	}
	if opts.Length < 1 {
		return "", ErrInvalidLength
	}

	result := make([]byte, opts.Length)
	for i := range result {
		idx, err := g.src.Uniform(pool.Size())
		if err != nil {
			return "", err
		}
		result[i] = pool[idx]
	}

	var required []string
	for _, c := range canonical(opts.Classes) {
		if a := c.alphabet(opts.ExcludeAmbiguous); a != "" {
			required = append(required, a)
		}
	}
	if len(required) > opts.Length {
		return string(result), nil
	}

	positions, err := samplePositions(g.src, opts.Length, len(required))
	if err != nil {
		return "", err
	}
	for i, charset := range required {
		idx, err := g.src.Uniform(len(charset))
		if err != nil {
			return "", err
		}
		result[positions[i]] = charset[idx]
	}

	return string(result), nil
}
