package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/passguard/passguard-go/internal/crypto"
	"github.com/passguard/passguard-go/internal/export"
	"github.com/passguard/passguard-go/internal/model"
	"github.com/passguard/passguard-go/internal/observability"
)

var (
	ErrLengthTooLong    = errors.New("password length exceeds the allowed maximum")
	ErrPasswordRequired = errors.New("password is required")
)

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen           *crypto.Generator
	defaultLength int
	maxLength     int
	metrics       *observability.Metrics
	now           func() time.Time
}

// NewGeneratorService creates a new GeneratorService. metrics may be nil.
func NewGeneratorService(gen *crypto.Generator, defaultLength, maxLength int, metrics *observability.Metrics) *GeneratorService {
	return &GeneratorService{
		gen:           gen,
		defaultLength: defaultLength,
		maxLength:     maxLength,
		metrics:       metrics,
		now:           time.Now,
	}
}

// Generate produces a password and its strength assessment.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts, err := s.options(req)
	if err != nil {
		s.recordError(err)
		return model.GenerateResponse{}, err
	}

	password, err := s.gen.Generate(opts)
	if err != nil {
		s.recordError(err)
		return model.GenerateResponse{}, err
	}

	assessment, pool, err := crypto.AssessOptions(opts)
	if err != nil {
		s.recordError(err)
		return model.GenerateResponse{}, err
	}
	s.metrics.RecordGenerated(assessment.Strength.String(), assessment.EntropyBits)

	return model.GenerateResponse{
		Password:         password,
		Length:           len(password),
		Classes:          classNames(opts.Classes),
		ExcludeAmbiguous: opts.ExcludeAmbiguous,
		PoolSize:         pool.Size(),
		EntropyBits:      assessment.EntropyBits,
		Strength:         assessment.Strength,
		Percent:          assessment.Percent,
		Rules:            Rules(opts),
	}, nil
}

// Assess reports the strength of the generation process described by req
// without drawing any randomness.
func (s *GeneratorService) Assess(req model.GenerateRequest) (model.AssessResponse, error) {
	opts, err := s.options(req)
	if err != nil {
		return model.AssessResponse{}, err
	}
	if opts.Length < 1 {
		return model.AssessResponse{}, crypto.ErrInvalidLength
	}

	assessment, pool, err := crypto.AssessOptions(opts)
	if err != nil {
		return model.AssessResponse{}, err
	}

	return model.AssessResponse{
		Length:      opts.Length,
		PoolSize:    pool.Size(),
		EntropyBits: assessment.EntropyBits,
		Strength:    assessment.Strength,
		Percent:     assessment.Percent,
	}, nil
}

// Shuffle returns a secure permutation of the characters of req.Password.
func (s *GeneratorService) Shuffle(req model.PasswordRequest) (model.PasswordResponse, error) {
	if req.Password == "" {
		return model.PasswordResponse{}, ErrPasswordRequired
	}

	data := []rune(req.Password)
	if len(data) > s.maxLength {
		return model.PasswordResponse{}, ErrLengthTooLong
	}
	if err := crypto.Shuffle(s.gen.Source(), data); err != nil {
		s.recordError(err)
		return model.PasswordResponse{}, err
	}

	return model.PasswordResponse{Password: string(data)}, nil
}

// Export renders req.Password in the plain-text export format and returns
// the document and its attachment file name.
func (s *GeneratorService) Export(req model.PasswordRequest) (content, filename string, err error) {
	at := s.now()
	content, err = export.Render(req.Password, at)
	if err != nil {
		return "", "", err
	}
	return content, export.Filename(at), nil
}

func (s *GeneratorService) options(req model.GenerateRequest) (crypto.GeneratorOptions, error) {
	length := req.Length
	if length == 0 {
		length = s.defaultLength
	}
	if length > s.maxLength {
		return crypto.GeneratorOptions{}, ErrLengthTooLong
	}

	return crypto.GeneratorOptions{
		Length: length,
		Classes: selectedClasses(
			boolOrDefault(req.Lowercase, true),
			boolOrDefault(req.Uppercase, true),
			boolOrDefault(req.Numbers, true),
			boolOrDefault(req.Symbols, true),
		),
		ExcludeAmbiguous: req.ExcludeAmbiguous,
	}, nil
}

func (s *GeneratorService) recordError(err error) {
	switch {
	case errors.Is(err, crypto.ErrEmptyPool):
		s.metrics.RecordError("empty_pool")
	case errors.Is(err, crypto.ErrInvalidLength), errors.Is(err, ErrLengthTooLong):
		s.metrics.RecordError("invalid_length")
	case errors.Is(err, crypto.ErrExhaustedEntropy):
		s.metrics.RecordError("entropy_unavailable")
	default:
		s.metrics.RecordError("internal")
	}
}

// Rules describes opts as a human-readable list, e.g. for a settings preview.
func Rules(opts crypto.GeneratorOptions) []string {
	rules := []string{fmt.Sprintf("Length: %d", opts.Length)}

	selected := make(map[crypto.CharClass]bool)
	for _, c := range opts.Classes {
		selected[c] = true
	}
	for _, c := range crypto.AllClasses {
		if selected[c] {
			rules = append(rules, "Includes "+c.String())
		}
	}

	if opts.ExcludeAmbiguous {
		rules = append(rules, "Excludes ambiguous characters: "+crypto.AmbiguousChars)
	}
	return rules
}

// selectedClasses maps the four checkbox-style flags to character classes.
func selectedClasses(lower, upper, numbers, symbols bool) []crypto.CharClass {
	var classes []crypto.CharClass
	if lower {
		classes = append(classes, crypto.Lowercase)
	}
	if upper {
		classes = append(classes, crypto.Uppercase)
	}
	if numbers {
		classes = append(classes, crypto.Digit)
	}
	if symbols {
		classes = append(classes, crypto.Symbol)
	}
	return classes
}

func classNames(classes []crypto.CharClass) []string {
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.String())
	}
	return names
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
