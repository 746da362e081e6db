package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prn-tf/chronicle/internal/domain"
	"github.com/prn-tf/chronicle/internal/repository"
)

// entryRepository implements repository.EntryRepository for SQLite.
type entryRepository struct {
	db *DB
}

// NewEntryRepository creates a new SQLite entry repository.
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

	images, err := json.Marshal(entry.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		entry.ID.String(),
		entry.UserID.String(),
		domain.DayKey(entry.Date),
		entry.CreatedAt.Format(time.RFC3339),
		entry.UpdatedAt.Format(time.RFC3339),
		entry.Title,
		entry.Content,
		string(images),
		boolToInt(entry.IsLocked),
		boolToInt(entry.IsFavorite),
		boolToInt(entry.IsRetroactive),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("entry id collision: %w", err)
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *entryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`
	return r.scanRow(r.db.QueryRowContext(ctx, query, id.String()))
}

// GetByDate retrieves the earliest-created entry a user wrote for a day.
func (r *entryRepository) GetByDate(ctx context.Context, userID uuid.UUID, day time.Time) (*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = ? AND day = ?
		ORDER BY created_at ASC
		LIMIT 1
	`
	return r.scanRow(r.db.QueryRowContext(ctx, query, userID.String(), domain.DayKey(day)))
}

// ListByUser returns all entries for a user, newest day first.
func (r *entryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = ?
		ORDER BY day DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID.String())
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
	images, err := json.Marshal(entry.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	query := `
		UPDATE entries
		SET day = ?, created_at = ?, updated_at = ?, title = ?, content = ?,
		    images = ?, is_locked = ?, is_favorite = ?, is_retroactive = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		domain.DayKey(entry.Date),
		entry.CreatedAt.Format(time.RFC3339),
		entry.UpdatedAt.Format(time.RFC3339),
		entry.Title,
		entry.Content,
		string(images),
		boolToInt(entry.IsLocked),
		boolToInt(entry.IsFavorite),
		boolToInt(entry.IsRetroactive),
		entry.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an entry by ID.
func (r *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// CountByUser returns the number of entries for a user.
func (r *entryRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE user_id = ?`, userID.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *entryRepository) scanRow(row scanner) (*domain.Entry, error) {
	var (
		entry                         domain.Entry
		id, userID, day               string
		createdAt, updatedAt, images  string
		isLocked, isFavorite, isRetro int
	)

	err := row.Scan(
		&id, &userID, &day,
		&createdAt, &updatedAt,
		&entry.Title, &entry.Content, &images,
		&isLocked, &isFavorite, &isRetro,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to scan entry: %w", err)
	}

	entry.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid entry id %q: %w", id, err)
	}
	entry.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	entry.Date, err = domain.ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("invalid entry day %q: %w", day, err)
	}
	entry.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	entry.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if err := json.Unmarshal([]byte(images), &entry.Images); err != nil {
		return nil, fmt.Errorf("invalid images payload: %w", err)
	}
	entry.IsLocked = isLocked != 0
	entry.IsFavorite = isFavorite != 0
	entry.IsRetroactive = isRetro != 0

	return &entry, nil
}
