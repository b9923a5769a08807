package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/passguard/passguard-go/internal/model"
)

var ErrPreferencesNotFound = errors.New("preferences not found")

// PreferencesRepository persists per-user generator settings.
type PreferencesRepository struct {
	db *sql.DB
}

// NewPreferencesRepository creates a new PreferencesRepository.
func NewPreferencesRepository(db *sql.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// Get returns the saved preferences of a user.
func (r *PreferencesRepository) Get(ctx context.Context, userID int64) (*model.Preferences, error) {
	query := `SELECT user_id, length, lowercase, uppercase, numbers, symbols, exclude_ambiguous, updated_at
		FROM user_preferences WHERE user_id = ?`

	p := &model.Preferences{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.Length, &p.Lowercase, &p.Uppercase,
		&p.Numbers, &p.Symbols, &p.ExcludeAmbiguous, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		return nil, err
	}

	return p, nil
}

// Upsert stores p, replacing any previous preferences of the same user.
func (r *PreferencesRepository) Upsert(ctx context.Context, p *model.Preferences) error {
	query := `
	INSERT INTO user_preferences (user_id, length, lowercase, uppercase, numbers, symbols, exclude_ambiguous)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		length            = VALUES(length),
		lowercase         = VALUES(lowercase),
		uppercase         = VALUES(uppercase),
		numbers           = VALUES(numbers),
		symbols           = VALUES(symbols),
		exclude_ambiguous = VALUES(exclude_ambiguous),
		updated_at        = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, query,
		p.UserID, p.Length, p.Lowercase, p.Uppercase,
		p.Numbers, p.Symbols, p.ExcludeAmbiguous,
	)
	return err
}
