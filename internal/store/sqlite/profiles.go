package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minatbaca/minatbaca-server/internal/domain"
	"github.com/minatbaca/minatbaca-server/internal/store"
)

// Save creates or replaces a profile and all of its child rows in a single
// transaction. The aggregate is a full-state overwrite, so child rows are
// deleted and re-inserted in the aggregate's own ordering.
func (s *Store) Save(ctx context.Context, profile *domain.Profile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	userID := profile.UserID().String()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO profiles (user_id, created_at, updated_at)
		VALUES (?, ?, ?)`,
		userID,
		formatTime(profile.CreatedAt()),
		formatTime(profile.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	for _, table := range []string{"profile_genres", "profile_history", "profile_blocks"} {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	for i, genre := range profile.Genres() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profile_genres (user_id, position, genre)
			VALUES (?, ?, ?)`,
			userID, i, genre.String(),
		)
		if err != nil {
			return fmt.Errorf("insert profile_genres: %w", err)
		}
	}

	for i, entry := range profile.History() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profile_history (user_id, position, book_id, rating, read_at)
			VALUES (?, ?, ?, ?, ?)`,
			userID, i, entry.BookID.String(), nullInt(entry.Rating), formatTime(entry.ReadAt),
		)
		if err != nil {
			return fmt.Errorf("insert profile_history: %w", err)
		}
	}

	for i, bookID := range profile.BlockedBooks() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO profile_blocks (user_id, position, book_id)
			VALUES (?, ?, ?)`,
			userID, i, bookID.String(),
		)
		if err != nil {
			return fmt.Errorf("insert profile_blocks: %w", err)
		}
	}

	return tx.Commit()
}

// FindByID loads a profile and rehydrates the aggregate from its child rows.
// Returns store.ErrProfileNotFound if the profile does not exist.
func (s *Store) FindByID(ctx context.Context, userID domain.UserID) (*domain.Profile, error) {
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at, updated_at FROM profiles WHERE user_id = ?`,
		userID.String(),
	).Scan(&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	genres, err := s.loadGenres(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.loadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	blocked, err := s.loadBlocks(ctx, userID)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateProfile(userID, genres, entries, blocked, created, updated), nil
}

// Exists reports whether a profile row exists for the identity.
func (s *Store) Exists(ctx context.Context, userID domain.UserID) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM profiles WHERE user_id = ?`, userID.String(),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query profile exists: %w", err)
	}
	return true, nil
}

func (s *Store) loadGenres(ctx context.Context, userID domain.UserID) ([]domain.Genre, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT genre FROM profile_genres
		WHERE user_id = ? ORDER BY position`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query profile_genres: %w", err)
	}
	defer rows.Close()

	var genres []domain.Genre
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan profile_genres: %w", err)
		}
		genres = append(genres, domain.Genre(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return genres, nil
}

func (s *Store) loadHistory(ctx context.Context, userID domain.UserID) ([]*domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id, rating, read_at FROM profile_history
		WHERE user_id = ? ORDER BY position`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query profile_history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.HistoryEntry
	for rows.Next() {
		var (
			bookID string
			rating sql.NullInt64
			readAt string
		)
		if err := rows.Scan(&bookID, &rating, &readAt); err != nil {
			return nil, fmt.Errorf("scan profile_history: %w", err)
		}

		read, err := parseTime(readAt)
		if err != nil {
			return nil, fmt.Errorf("parse read_at: %w", err)
		}

		var r *domain.Rating
		if rating.Valid {
			v := domain.Rating(rating.Int64)
			r = &v
		}
		entries = append(entries, domain.NewHistoryEntry(domain.BookID(bookID), r, read))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return entries, nil
}

func (s *Store) loadBlocks(ctx context.Context, userID domain.UserID) ([]domain.BookID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id FROM profile_blocks
		WHERE user_id = ? ORDER BY position`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("query profile_blocks: %w", err)
	}
	defer rows.Close()

	var blocked []domain.BookID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile_blocks: %w", err)
		}
		blocked = append(blocked, domain.BookID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return blocked, nil
}
