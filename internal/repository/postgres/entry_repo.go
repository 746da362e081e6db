package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/repository"
)

// entryRepository implements repository.EntryRepository for PostgreSQL.
type entryRepository struct {
	db *DB
}

// NewEntryRepository creates a new PostgreSQL entry repository.
func NewEntryRepository(db *DB) repository.EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `id, user_id, day, created_at, updated_at, title, content, images, is_locked, is_favorite, is_retroactive`

// Create persists a new entry, assigning its ID and creation timestamp.
func (r *entryRepository) Create(ctx context.Context, entry *domain.Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = entry.CreatedAt
	}

	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		domain.DayKey(entry.Date),
		entry.CreatedAt,
		entry.UpdatedAt,
		entry.Title,
		entry.Content,
		entry.Images,
		entry.IsLocked,
		entry.IsFavorite,
		entry.IsRetroactive,
	)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *entryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`
	return r.scanRow(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByDate retrieves the earliest-created entry a user wrote for a day.
func (r *entryRepository) GetByDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1 AND day = $2
		ORDER BY created_at ASC
		LIMIT 1
	`
	return r.scanRow(r.db.Pool.QueryRow(ctx, query, userID, domain.DayKey(day)))
}

// ListByUser returns all entries for a user, newest day first.
func (r *entryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1
		ORDER BY day DESC, created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// Update fully replaces an entry by ID.
func (r *entryRepository) Update(ctx context.Context, entry *domain.Entry) error {
	query := `
		UPDATE entries
		SET day = $1, created_at = $2, updated_at = $3, title = $4, content = $5,
		    images = $6, is_locked = $7, is_favorite = $8, is_retroactive = $9
		WHERE id = $10
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		domain.DayKey(entry.Date),
		entry.CreatedAt,
		entry.UpdatedAt,
		entry.Title,
		entry.Content,
		entry.Images,
		entry.IsLocked,
		entry.IsFavorite,
		entry.IsRetroactive,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an entry by ID.
func (r *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// CountByUser returns the number of entries for a user.
func (r *entryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM entries WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (r *entryRepository) scanRow(row pgx.Row) (*domain.Entry, error) {
	var (
		entry domain.Entry
		day   string
	)

	err := row.Scan(
		&entry.ID, &entry.UserID, &day,
		&entry.CreatedAt, &entry.UpdatedAt,
		&entry.Title, &entry.Content, &entry.Images,
		&entry.IsLocked, &entry.IsFavorite, &entry.IsRetroactive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to scan entry: %w", err)
	}

	entry.Date, err = domain.ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("invalid entry day %q: %w", day, err)
	}
	if entry.Images == nil {
		entry.Images = []string{}
	}

	return &entry, nil
}
