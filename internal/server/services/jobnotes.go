package services

import (
	"context"
	"database/sql"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
	"github.com/google/uuid"
)

type JobNoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewJobNoteService(db *sql.DB, m repomanager.RepositoryManager) *JobNoteService {
	return &JobNoteService{db: db, repomanager: m}
}

func normalizeJobID(jobID string) (string, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return "", shared.ErrorJobIDRequired
	}
	return jobID, nil
}

// List returns the caller's notes for a job, newest first.
func (s *JobNoteService) List(ctx context.Context, userID, jobID string) ([]models.JobNote, error) {
	jobID, err := normalizeJobID(jobID)
	if err != nil {
		return nil, err
	}
	return s.repomanager.JobNotes(s.db).ListByJob(ctx, userID, jobID)
}

// Add stores a note. Surrounding whitespace is trimmed; an empty result is
// rejected with shared.ErrorEmptyNoteText.
func (s *JobNoteService) Add(ctx context.Context, userID, jobID, text string) (*models.JobNote, error) {
	jobID, err := normalizeJobID(jobID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, shared.ErrorEmptyNoteText
	}
	if utf8.RuneCountInString(text) > shared.MaxNoteTextLength {
		return nil, shared.ErrorNoteTooLong
	}

	note := &models.JobNote{JobID: jobID, UserID: userID, NoteText: text}
	return s.repomanager.JobNotes(s.db).Create(ctx, note)
}

// Delete removes one note. Ids that cannot exist yield common.ErrorNotFound
// without touching the database.
func (s *JobNoteService) Delete(ctx context.Context, userID, jobID, noteID string) error {
	jobID, err := normalizeJobID(jobID)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(noteID); err != nil {
		return common.ErrorNotFound
	}
	return s.repomanager.JobNotes(s.db).Delete(ctx, userID, jobID, noteID)
}
