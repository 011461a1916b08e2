// Package jobnotes provides PostgreSQL-backed storage for job notes.
package jobnotes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByJob returns the user's notes for jobID, newest first.
func (r *PostgresRepository) ListByJob(ctx context.Context, userID, jobID string) ([]models.JobNote, error) {
	query := `
		SELECT id, job_id, user_id, note_text, created_at
		FROM job_notes
		WHERE user_id = $1 AND job_id = $2
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, jobID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	notes := make([]models.JobNote, 0)
	for rows.Next() {
		var n models.JobNote
		if err := rows.Scan(&n.ID, &n.JobID, &n.UserID, &n.NoteText, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return notes, nil
}

// Create inserts note; ID and CreatedAt are assigned by the database.
func (r *PostgresRepository) Create(ctx context.Context, note *models.JobNote) (*models.JobNote, error) {
	query := `
		INSERT INTO job_notes (job_id, user_id, note_text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, note.JobID, note.UserID, note.NoteText).
		Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// Delete removes a single note. It returns common.ErrorNotFound when no note
// with noteID exists for that user and job.
func (r *PostgresRepository) Delete(ctx context.Context, userID, jobID, noteID string) error {
	query := `DELETE FROM job_notes WHERE id = $1 AND job_id = $2 AND user_id = $3`

	res, err := r.db.ExecContext(ctx, query, noteID, jobID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
