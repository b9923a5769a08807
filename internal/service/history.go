package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/passguard/passguard-go/internal/model"
	"github.com/passguard/passguard-go/internal/repository"
)

// HistoryService keeps a bounded log of what each user generated.
type HistoryService struct {
	repo  *repository.HistoryRepository
	limit int
	now   func() time.Time
}

// NewHistoryService creates a new HistoryService keeping at most limit entries per user.
func NewHistoryService(repo *repository.HistoryRepository, limit int) *HistoryService {
	return &HistoryService{repo: repo, limit: limit, now: time.Now}
}

// Record stores the settings and strength behind a generated password. The
// password text is not part of the entry.
func (s *HistoryService) Record(ctx context.Context, userID int64, gen model.GenerateResponse) (model.HistoryEntryResponse, error) {
	entry := model.HistoryEntry{
		UserID:           userID,
		EntryID:          ulid.Make().String(),
		Length:           gen.Length,
		PoolSize:         gen.PoolSize,
		Classes:          strings.Join(gen.Classes, ","),
		ExcludeAmbiguous: gen.ExcludeAmbiguous,
		EntropyBits:      gen.EntropyBits,
		Strength:         gen.Strength.String(),
		CreatedAt:        s.now().UTC().Truncate(time.Millisecond), // created_at is TIMESTAMP(3)
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		return model.HistoryEntryResponse{}, err
	}

	if err := s.repo.Prune(ctx, userID, s.limit); err != nil {
		slog.Warn("pruning history failed", "user_id", userID, "error", err)
	}

	return entryToResponse(entry), nil
}

// List returns the newest entries of a user.
func (s *HistoryService) List(ctx context.Context, userID int64) ([]model.HistoryEntryResponse, error) {
	entries, err := s.repo.ListByUser(ctx, userID, s.limit)
	if err != nil {
		return nil, err
	}
	return entriesToResponse(entries), nil
}

// Clear removes the whole history of a user.
func (s *HistoryService) Clear(ctx context.Context, userID int64) error {
	_, err := s.repo.DeleteByUser(ctx, userID)
	return err
}

// entriesToResponse converts stored entries to their API form. It never returns nil.
func entriesToResponse(entries []model.HistoryEntry) []model.HistoryEntryResponse {
	result := make([]model.HistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = entryToResponse(e)
	}
	return result
}

func entryToResponse(e model.HistoryEntry) model.HistoryEntryResponse {
	classes := []string{}
	if e.Classes != "" {
		classes = strings.Split(e.Classes, ",")
	}
	return model.HistoryEntryResponse{
		EntryID:          e.EntryID,
		Length:           e.Length,
		PoolSize:         e.PoolSize,
		Classes:          classes,
		ExcludeAmbiguous: e.ExcludeAmbiguous,
		EntropyBits:      e.EntropyBits,
		Strength:         e.Strength,
		CreatedAt:        e.CreatedAt,
	}
}
