package crypto

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestEstimateEntropy(t *testing.T) {
	tests := []struct {
		name     string
		poolSize int
		length   int
		want     float64
	}{
		{name: "alphanumeric 12", poolSize: 62, length: 12, want: 12 * math.Log2(62)},
		{name: "power of two", poolSize: 64, length: 10, want: 60},
		{name: "single symbol pool", poolSize: 1, length: 50, want: 0},
		{name: "empty pool", poolSize: 0, length: 10, want: 0},
		{name: "zero length", poolSize: 89, length: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateEntropy(tt.poolSize, tt.length)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EstimateEntropy(%d, %d) = %f, want %f", tt.poolSize, tt.length, got, tt.want)
			}
		})
	}
}

func TestEstimateEntropyMonotonic(t *testing.T) {
	for pool := 1; pool <= 100; pool++ {
		for length := 1; length <= 64; length++ {
			bits := EstimateEntropy(pool, length)
			if EstimateEntropy(pool+1, length) < bits {
				t.Fatalf("entropy decreased when pool grew from %d (length %d)", pool, length)
			}
			if EstimateEntropy(pool, length+1) < bits {
				t.Fatalf("entropy decreased when length grew from %d (pool %d)", length, pool)
			}
		}
	}
}

func TestClassifyStrength(t *testing.T) {
	tests := []struct {
		bits        float64
		wantLabel   Strength
		wantPercent int
	}{
		{bits: 0, wantLabel: VeryWeak, wantPercent: 0},
		{bits: 23.99, wantLabel: VeryWeak, wantPercent: 30},
		{bits: 24, wantLabel: Weak, wantPercent: 30},
		{bits: 39.9, wantLabel: Weak, wantPercent: 50},
		{bits: 40, wantLabel: Medium, wantPercent: 50},
		{bits: 59.99, wantLabel: Medium, wantPercent: 75},
		{bits: 60, wantLabel: Strong, wantPercent: 75},
		{bits: 79.99, wantLabel: Strong, wantPercent: 100},
		{bits: 80, wantLabel: VeryStrong, wantPercent: 100},
		{bits: 200, wantLabel: VeryStrong, wantPercent: 100},
		{bits: -5, wantLabel: VeryWeak, wantPercent: 0},
	}

	for _, tt := range tests {
		label, percent := ClassifyStrength(tt.bits)
		if label != tt.wantLabel {
			t.Errorf("ClassifyStrength(%v) label = %v, want %v", tt.bits, label, tt.wantLabel)
		}
		if percent != tt.wantPercent {
			t.Errorf("ClassifyStrength(%v) percent = %d, want %d", tt.bits, percent, tt.wantPercent)
		}
	}
}

func TestClassifyStrengthDeterministic(t *testing.T) {
	for bits := 0.0; bits < 100; bits += 0.5 {
		l1, p1 := ClassifyStrength(bits)
		l2, p2 := ClassifyStrength(bits)
		if l1 != l2 || p1 != p2 {
			t.Fatalf("ClassifyStrength(%v) not deterministic", bits)
		}
	}
}

func TestAssessLowercaseWithoutAmbiguous(t *testing.T) {
	a, pool, err := AssessOptions(GeneratorOptions{
		Length:           10,
		Classes:          []CharClass{Lowercase},
		ExcludeAmbiguous: true,
	})
	if err != nil {
		t.Fatalf("AssessOptions() unexpected error: %v", err)
	}
	if pool.Size() != 23 {
		t.Errorf("pool size = %d, want 23", pool.Size())
	}
	if math.Abs(a.EntropyBits-10*math.Log2(23)) > 1e-9 {
		t.Errorf("entropy = %f, want %f", a.EntropyBits, 10*math.Log2(23))
	}
	if a.EntropyBits < 45 || a.EntropyBits > 45.5 {
		t.Errorf("entropy = %f, want about 45.2", a.EntropyBits)
	}
	if a.Strength != Medium {
		t.Errorf("strength = %v, want %v", a.Strength, Medium)
	}
	if a.Percent != 57 {
		t.Errorf("percent = %d, want 57", a.Percent)
	}
}

func TestAssessSingleCharacterPool(t *testing.T) {
	for _, length := range []int{1, 16, 1000} {
		a := Assess(1, length)
		if a.EntropyBits != 0 || a.Strength != VeryWeak || a.Percent != 0 {
			t.Errorf("Assess(1, %d) = %+v, want zero entropy, very weak, 0%%", length, a)
		}
	}
}

func TestAssessOptionsEmptyPool(t *testing.T) {
	if _, _, err := AssessOptions(GeneratorOptions{Length: 12}); !errors.Is(err, ErrEmptyPool) {
		t.Errorf("AssessOptions() error = %v, want %v", err, ErrEmptyPool)
	}
}

func TestStrengthMarshalJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Strength{"strength": VeryStrong})
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	if string(b) != `{"strength":"very_strong"}` {
		t.Errorf("json.Marshal() = %s", b)
	}
}
