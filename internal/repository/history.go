package repository

import (
	"context"
	"database/sql"

	"github.com/passguard/passguard-go/internal/model"
)

// HistoryRepository persists generation history entries.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts entry and sets its generated ID. entry.CreatedAt is stored
// as given, so callers see the same timestamp a later list returns.
func (r *HistoryRepository) Create(ctx context.Context, entry *model.HistoryEntry) error {
	query := `INSERT INTO generation_history
		(user_id, entry_id, length, pool_size, classes, exclude_ambiguous, entropy_bits, strength, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.EntryID, entry.Length, entry.PoolSize,
		entry.Classes, entry.ExcludeAmbiguous, entry.EntropyBits, entry.Strength, entry.CreatedAt,
	)
	if err != nil {
		return err
	}

	entry.ID, err = result.LastInsertId()
	return err
}

// ListByUser returns at most limit entries of a user, newest first.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.HistoryEntry, error) {
	query := `SELECT id, user_id, entry_id, length, pool_size, classes, exclude_ambiguous, entropy_bits, strength, created_at
		FROM generation_history WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.EntryID, &e.Length, &e.PoolSize,
			&e.Classes, &e.ExcludeAmbiguous, &e.EntropyBits, &e.Strength, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// DeleteByUser removes every history entry of a user and returns how many were removed.
func (r *HistoryRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM generation_history WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Prune keeps only the newest keep entries of a user.
func (r *HistoryRepository) Prune(ctx context.Context, userID int64, keep int) error {
	query := `DELETE FROM generation_history WHERE user_id = ? AND id NOT IN (
		SELECT id FROM (
			SELECT id FROM generation_history WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?
		) AS newest
	)`

	_, err := r.db.ExecContext(ctx, query, userID, userID, keep)
	return err
}
