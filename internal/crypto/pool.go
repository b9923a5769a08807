package crypto

import (
	"errors"
	"fmt"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>/?"

	// AmbiguousChars are glyphs easily confused with one another in common fonts.
	AmbiguousChars = "il1Lo0O"
)

var (
	ErrEmptyPool        = errors.New("at least one character type must be selected")
	ErrUnknownCharClass = errors.New("unknown character class")
)

// CharClass identifies one of the fixed character alphabets.
type CharClass int

const (
	Lowercase CharClass = iota
	Uppercase
	Digit
	Symbol
)

// AllClasses lists every class in canonical order.
var AllClasses = []CharClass{Lowercase, Uppercase, Digit, Symbol}

// Alphabet returns the full ordered alphabet of the class.
func (c CharClass) Alphabet() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Digit:
		return numberChars
	case Symbol:
		return symbolChars
	}
	return ""
}

func (c CharClass) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Digit:
		return "numbers"
	case Symbol:
		return "symbols"
	}
	return fmt.Sprintf("CharClass(%d)", int(c))
}

// ParseCharClass is the inverse of CharClass.String.
func ParseCharClass(s string) (CharClass, error) {
	for _, c := range AllClasses {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCharClass, s)
}

// alphabet returns the class alphabet, minus ambiguous glyphs when requested.
func (c CharClass) alphabet(excludeAmbiguous bool) string {
	a := c.Alphabet()
	if !excludeAmbiguous {
		return a
	}
	return stripAmbiguous(a)
}

// Pool is the ordered, duplicate-free set of characters eligible for sampling.
type Pool string

// Size returns the number of characters in the pool.
func (p Pool) Size() int {
	return len(p)
}

// Contains reports whether ch is a member of the pool.
func (p Pool) Contains(ch rune) bool {
	return strings.ContainsRune(string(p), ch)
}

// BuildPool concatenates the alphabets of the selected classes in canonical
// order, optionally removes ambiguous characters and deduplicates the result.
// The order of classes in the argument does not matter.
func BuildPool(classes []CharClass, excludeAmbiguous bool) (Pool, error) {
	var sb strings.Builder
	for _, c := range canonical(classes) {
		sb.WriteString(c.Alphabet())
	}

	chars := sb.String()
	if excludeAmbiguous {
		chars = stripAmbiguous(chars)
	}
	chars = dedupe(chars)

	if chars == "" {
		return "", ErrEmptyPool
	}
	return Pool(chars), nil
}

// canonical returns the distinct known classes of the selection in canonical order.
func canonical(classes []CharClass) []CharClass {
	selected := make(map[CharClass]bool, len(classes))
	for _, c := range classes {
		selected[c] = true
	}

	out := make([]CharClass, 0, len(AllClasses))
	for _, c := range AllClasses {
		if selected[c] {
			out = append(out, c)
		}
	}
	return out
}

func stripAmbiguous(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(AmbiguousChars, r) {
			return -1
		}
		return r
	}, s)
}

// dedupe keeps the first occurrence of every byte.
func dedupe(s string) string {
	var seen [256]bool
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if seen[s[i]] {
			continue
		}
		seen[s[i]] = true
		out = append(out, s[i])
	}
	return string(out)
}
