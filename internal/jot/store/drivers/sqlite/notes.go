package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jotapp/jot/internal/jot/domain"
)

type notesRepo struct {
	q dbtx
}

const noteColumns = `id, content, tags, user_id, target_date, created_at, updated_at`

func (r *notesRepo) ListNotes(ctx context.Context) ([]domain.Note, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

func (r *notesRepo) ListNotesByUser(ctx context.Context, userID int64) ([]domain.Note, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

func (r *notesRepo) GetNoteByID(ctx context.Context, id int64) (domain.Note, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)

	note, err := scanNote(row)
	if err != nil {
		return domain.Note{}, mapNotFound(err)
	}
	return note, nil
}

func (r *notesRepo) CreateNote(ctx context.Context, userID int64, content string, tags []string, targetDate string) (domain.Note, error) {
	now := time.Now().UTC()

	res, err := r.q.ExecContext(ctx,
		`INSERT INTO notes (content, tags, user_id, target_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		content, joinTags(tags), userID, targetDate, now.Unix(), now.Unix())
	if err != nil {
		return domain.Note{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Note{}, err
	}

	return domain.Note{
		ID:         id,
		Content:    content,
		Tags:       tags,
		UserID:     userID,
		TargetDate: targetDate,
		CreatedAt:  time.Unix(now.Unix(), 0).UTC(),
		UpdatedAt:  time.Unix(now.Unix(), 0).UTC(),
	}, nil
}

func (r *notesRepo) DeleteNote(ctx context.Context, id, userID int64) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *notesRepo) DeleteNotes(ctx context.Context, ids []int64, userID int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	for _, id := range ids {
		args = append(args, id)
	}
	args = append(args, userID)

	_, err := r.q.ExecContext(ctx,
		`DELETE FROM notes WHERE id IN (`+placeholders+`) AND user_id = ?`, args...)
	return err
}

func (r *notesRepo) SearchNotes(ctx context.Context, search domain.NoteSearch) ([]domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE 1=1`
	var args []any

	if search.Content != "" {
		query += ` AND content LIKE ?`
		args = append(args, "%"+search.Content+"%")
	}
	if search.TargetDate != "" {
		query += ` AND target_date = ?`
		args = append(args, search.TargetDate)
	}
	for _, tag := range search.Tags {
		// Tags are stored space-joined; pad both sides so a tag never
		// matches a substring of another tag.
		query += ` AND ' ' || tags || ' ' LIKE ?`
		args = append(args, "% "+tag+" %")
	}
	query += ` ORDER BY id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

func collectNotes(rows *sql.Rows) ([]domain.Note, error) {
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func scanNote(row rowScanner) (domain.Note, error) {
	var (
		n         domain.Note
		tags      string
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&n.ID, &n.Content, &tags, &n.UserID, &n.TargetDate, &createdAt, &updatedAt); err != nil {
		return domain.Note{}, err
	}

	n.Tags = splitTags(tags)
	n.CreatedAt = time.Unix(createdAt, 0).UTC()
	n.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return n, nil
}
