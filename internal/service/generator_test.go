package service

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/passguard/passguard-go/internal/crypto"
	"github.com/passguard/passguard-go/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func newTestGeneratorService() *GeneratorService {
	return NewGeneratorService(crypto.NewGenerator(crypto.NewSecureSource()), 16, 128, nil)
}

func TestGenerate_Defaults(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(model.GenerateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 16 || len(resp.Password) != 16 {
		t.Errorf("expected length 16, got %d (%q)", resp.Length, resp.Password)
	}
	if resp.PoolSize != 89 {
		t.Errorf("expected pool size 89, got %d", resp.PoolSize)
	}
	if len(resp.Classes) != 4 {
		t.Errorf("expected 4 classes, got %v", resp.Classes)
	}
	if resp.Strength != crypto.VeryStrong {
		t.Errorf("expected very strong, got %v", resp.Strength)
	}
	if resp.Percent != 100 {
		t.Errorf("expected percent 100, got %d", resp.Percent)
	}
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(model.GenerateRequest{
		Length:    32,
		Uppercase: boolPtr(true),
		Lowercase: boolPtr(true),
		Numbers:   boolPtr(false),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Length != 32 {
		t.Errorf("expected length 32, got %d", resp.Length)
	}
	for _, c := range resp.Password {
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			t.Errorf("unexpected character %q in password with only uppercase+lowercase", c)
		}
	}
	if want := 32 * math.Log2(52); math.Abs(resp.EntropyBits-want) > 1e-9 {
		t.Errorf("expected entropy %f, got %f", want, resp.EntropyBits)
	}
}

func TestGenerate_ExcludeAmbiguousShrinksPool(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Generate(model.GenerateRequest{
		Length:           10,
		Lowercase:        boolPtr(true),
		Uppercase:        boolPtr(false),
		Numbers:          boolPtr(false),
		Symbols:          boolPtr(false),
		ExcludeAmbiguous: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.PoolSize != 23 {
		t.Errorf("expected pool size 23, got %d", resp.PoolSize)
	}
	if resp.Strength != crypto.Medium {
		t.Errorf("expected medium, got %v", resp.Strength)
	}
	if strings.ContainsAny(resp.Password, crypto.AmbiguousChars) {
		t.Errorf("password %q contains ambiguous characters", resp.Password)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     model.GenerateRequest
		wantErr error
	}{
		{
			name:    "length too long",
			req:     model.GenerateRequest{Length: 200},
			wantErr: ErrLengthTooLong,
		},
		{
			name:    "negative length",
			req:     model.GenerateRequest{Length: -1},
			wantErr: crypto.ErrInvalidLength,
		},
		{
			name: "no character types",
			req: model.GenerateRequest{
				Length:    16,
				Uppercase: boolPtr(false),
				Lowercase: boolPtr(false),
				Numbers:   boolPtr(false),
				Symbols:   boolPtr(false),
			},
			wantErr: crypto.ErrEmptyPool,
		},
	}

	svc := newTestGeneratorService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAssess(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Assess(model.GenerateRequest{
		Length:    12,
		Lowercase: boolPtr(true),
		Uppercase: boolPtr(true),
		Numbers:   boolPtr(true),
		Symbols:   boolPtr(false),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.PoolSize != 62 {
		t.Errorf("expected pool size 62, got %d", resp.PoolSize)
	}
	if resp.Strength != crypto.Strong {
		t.Errorf("expected strong for %f bits, got %v", resp.EntropyBits, resp.Strength)
	}
}

func TestAssess_NegativeLength(t *testing.T) {
	svc := newTestGeneratorService()
	if _, err := svc.Assess(model.GenerateRequest{Length: -3}); !errors.Is(err, crypto.ErrInvalidLength) {
		t.Errorf("expected %v, got %v", crypto.ErrInvalidLength, err)
	}
}

func TestShuffle(t *testing.T) {
	svc := newTestGeneratorService()
	resp, err := svc.Shuffle(model.PasswordRequest{Password: "aabbcc123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Password) != 9 {
		t.Fatalf("expected 9 characters, got %q", resp.Password)
	}
	for _, ch := range "abc123" {
		if strings.Count(resp.Password, string(ch)) != strings.Count("aabbcc123", string(ch)) {
			t.Errorf("shuffle changed the count of %q: %q", ch, resp.Password)
		}
	}
}

func TestShuffle_MultiByteCharacters(t *testing.T) {
	const password = "pässwörd€"
	svc := newTestGeneratorService()

	want := make(map[rune]int)
	for _, r := range password {
		want[r]++
	}

	for i := 0; i < 50; i++ {
		resp, err := svc.Shuffle(model.PasswordRequest{Password: password})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !utf8.ValidString(resp.Password) {
			t.Fatalf("shuffle produced invalid UTF-8: %q", resp.Password)
		}
		got := make(map[rune]int)
		for _, r := range resp.Password {
			got[r]++
		}
		if len(got) != len(want) {
			t.Fatalf("shuffle changed the characters: %q -> %q", password, resp.Password)
		}
		for r, n := range want {
			if got[r] != n {
				t.Fatalf("shuffle changed the count of %q: %q -> %q", r, password, resp.Password)
			}
		}
	}
}

func TestShuffle_LengthCountsCharacters(t *testing.T) {
	svc := NewGeneratorService(crypto.NewGenerator(crypto.NewSecureSource()), 4, 4, nil)

	// Four characters, eight bytes.
	if _, err := svc.Shuffle(model.PasswordRequest{Password: "€äöü"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := svc.Shuffle(model.PasswordRequest{Password: "€äöüx"}); err != ErrLengthTooLong {
		t.Errorf("expected ErrLengthTooLong, got %v", err)
	}
}

func TestShuffle_Errors(t *testing.T) {
	svc := newTestGeneratorService()
	if _, err := svc.Shuffle(model.PasswordRequest{}); err != ErrPasswordRequired {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
	if _, err := svc.Shuffle(model.PasswordRequest{Password: strings.Repeat("x", 129)}); err != ErrLengthTooLong {
		t.Errorf("expected ErrLengthTooLong, got %v", err)
	}
}

func TestExport(t *testing.T) {
	svc := newTestGeneratorService()
	svc.now = func() time.Time { return time.Date(2026, time.March, 4, 18, 0, 9, 0, time.UTC) }

	content, filename, err := svc.Export(model.PasswordRequest{Password: "Zx9!kQ"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "PassGuard Password Export\nDate: 3/4/2026, 6:00:09 PM\n\nPassword: Zx9!kQ"; content != want {
		t.Errorf("expected %q, got %q", want, content)
	}
	if want := "passguard-2026-03-04T18-00-09-000Z.txt"; filename != want {
		t.Errorf("expected filename %q, got %q", want, filename)
	}
}

func TestRules(t *testing.T) {
	got := Rules(crypto.GeneratorOptions{
		Length:           20,
		Classes:          []crypto.CharClass{crypto.Symbol, crypto.Lowercase},
		ExcludeAmbiguous: true,
	})
	want := []string{
		"Length: 20",
		"Includes lowercase",
		"Includes symbols",
		"Excludes ambiguous characters: il1Lo0O",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got %v", want, got)
	}
}
