package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateNote attaches a note to a job application owned by userID.
// It returns nil, nil when the job does not exist or is not owned by userID.
func (db *DB) CreateNote(ctx context.Context, userID, jobID uuid.UUID, content string) (*Note, error) {
	var note Note
	err := db.pool.QueryRow(ctx,
		`INSERT INTO notes (job_id, content)
		 SELECT id, $3 FROM job_applications WHERE id = $1 AND user_id = $2
		 RETURNING id, job_id, content, created_at`,
		jobID, userID, content,
	).Scan(&note.ID, &note.JobID, &note.Content, &note.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &note, nil
}

// ListNotes returns the notes of a job application owned by userID, newest first
func (db *DB) ListNotes(ctx context.Context, userID, jobID uuid.UUID) ([]Note, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT n.id, n.job_id, n.content, n.created_at
		 FROM notes n
		 JOIN job_applications j ON j.id = n.job_id
		 WHERE n.job_id = $1 AND j.user_id = $2
		 ORDER BY n.created_at DESC, n.id DESC`,
		jobID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []Note{}
	for rows.Next() {
		var note Note
		if err := rows.Scan(&note.ID, &note.JobID, &note.Content, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// DeleteNote deletes a note whose job application is owned by userID.
// It reports false when the note does not exist or belongs to another user's job.
func (db *DB) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM notes n USING job_applications j
		 WHERE n.id = $1 AND n.job_id = j.id AND j.user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
