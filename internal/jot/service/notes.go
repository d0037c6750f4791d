package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jotapp/jot/internal/jot/domain"
	"github.com/jotapp/jot/internal/jot/store"
)

var ErrNoteNotFound = errors.New("note_not_found")

// NoteService manages notes.
type NoteService struct {
	Store store.Store
}

func (s *NoteService) ListAll(ctx context.Context) ([]domain.Note, error) {
	return s.Store.Notes().ListNotes(ctx)
}

func (s *NoteService) ListByUser(ctx context.Context, userID int64) ([]domain.Note, error) {
	return s.Store.Notes().ListNotesByUser(ctx, userID)
}

func (s *NoteService) GetByID(ctx context.Context, id int64) (domain.Note, error) {
	return s.Store.Notes().GetNoteByID(ctx, id)
}

func (s *NoteService) Create(ctx context.Context, userID int64, content string, tags []string, targetDate string) (domain.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Note{}, ErrInvalidRequest
	}

	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}

	return s.Store.Notes().CreateNote(ctx, userID, content, cleaned, strings.TrimSpace(targetDate))
}

// Delete removes a note owned by the given user. Notes belonging to other
// users look the same as missing ones.
func (s *NoteService) Delete(ctx context.Context, noteID, userID int64) error {
	deleted, err := s.Store.Notes().DeleteNote(ctx, noteID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}

// DeleteMany removes the caller's notes among the given ids; ids owned by
// other users are skipped silently.
func (s *NoteService) DeleteMany(ctx context.Context, ids []int64, userID int64) error {
	if len(ids) == 0 {
		return nil
	}
	return s.Store.Notes().DeleteNotes(ctx, ids, userID)
}

func (s *NoteService) Search(ctx context.Context, query domain.NoteSearch) ([]domain.Note, error) {
	return s.Store.Notes().SearchNotes(ctx, query)
}
