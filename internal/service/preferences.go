package service

import (
	"context"
	"errors"

	"github.com/passguard/passguard-go/internal/crypto"
	"github.com/passguard/passguard-go/internal/model"
	"github.com/passguard/passguard-go/internal/repository"
)

// PreferencesService loads and saves per-user generator settings.
type PreferencesService struct {
	repo          *repository.PreferencesRepository
	defaultLength int
	maxLength     int
}

// NewPreferencesService creates a new PreferencesService.
func NewPreferencesService(repo *repository.PreferencesRepository, defaultLength, maxLength int) *PreferencesService {
	return &PreferencesService{
		repo:          repo,
		defaultLength: defaultLength,
		maxLength:     maxLength,
	}
}

// Get returns the saved preferences of a user, or the defaults if none were saved.
func (s *PreferencesService) Get(ctx context.Context, userID int64) (model.PreferencesPayload, error) {
	p, err := s.repo.Get(ctx, userID)
	if errors.Is(err, repository.ErrPreferencesNotFound) {
		return s.defaults(), nil
	}
	if err != nil {
		return model.PreferencesPayload{}, err
	}

	return model.PreferencesPayload{
		Length:           p.Length,
		Lowercase:        p.Lowercase,
		Uppercase:        p.Uppercase,
		Numbers:          p.Numbers,
		Symbols:          p.Symbols,
		ExcludeAmbiguous: p.ExcludeAmbiguous,
	}, nil
}

// Save validates and stores preferences. Settings that could not produce a
// password are rejected with the same errors generation would return.
func (s *PreferencesService) Save(ctx context.Context, userID int64, req model.PreferencesPayload) (model.PreferencesPayload, error) {
	if err := s.validate(req); err != nil {
		return model.PreferencesPayload{}, err
	}

	p := &model.Preferences{
		UserID:           userID,
		Length:           req.Length,
		Lowercase:        req.Lowercase,
		Uppercase:        req.Uppercase,
		Numbers:          req.Numbers,
		Symbols:          req.Symbols,
		ExcludeAmbiguous: req.ExcludeAmbiguous,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return model.PreferencesPayload{}, err
	}

	return req, nil
}

func (s *PreferencesService) validate(req model.PreferencesPayload) error {
	if req.Length < 1 {
		return crypto.ErrInvalidLength
	}
	if req.Length > s.maxLength {
		return ErrLengthTooLong
	}
	classes := selectedClasses(req.Lowercase, req.Uppercase, req.Numbers, req.Symbols)
	_, err := crypto.BuildPool(classes, req.ExcludeAmbiguous)
	return err
}

func (s *PreferencesService) defaults() model.PreferencesPayload {
	return model.PreferencesPayload{
		Length:    s.defaultLength,
		Lowercase: true,
		Uppercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}
