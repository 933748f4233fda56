package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/mindwise/internal/types"
)

const jobColumns = `id, user_id, company_name, job_title, job_description, resume_drive_link,
	user_notes, ai_analysis, status, created_at, updated_at`

func scanJob(row pgx.Row) (*JobApplication, error) {
	var job JobApplication
	var analysis []byte
	if err := row.Scan(&job.ID, &job.UserID, &job.CompanyName, &job.JobTitle, &job.JobDescription,
		&job.ResumeDriveLink, &job.UserNotes, &analysis, &job.Status, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}
	if len(analysis) > 0 {
		var result types.AIAnalysisResult
		if err := json.Unmarshal(analysis, &result); err != nil {
			return nil, fmt.Errorf("failed to decode ai_analysis: %w", err)
		}
		job.AIAnalysis = &result
	}
	return &job, nil
}

func marshalAnalysis(result *types.AIAnalysisResult) ([]byte, error) {
	if result == nil {
		return nil, nil
	}
	b, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ai_analysis: %w", err)
	}
	return b, nil
}

// CreateJobApplication inserts a job application owned by job.UserID
func (db *DB) CreateJobApplication(ctx context.Context, job NewJobApplication) (*JobApplication, error) {
	if job.Status == "" {
		job.Status = types.StatusPending
	}
	analysis, err := marshalAnalysis(job.AIAnalysis)
	if err != nil {
		return nil, err
	}

	created, err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO job_applications
		   (user_id, company_name, job_title, job_description, resume_drive_link, user_notes, ai_analysis, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+jobColumns,
		job.UserID, job.CompanyName, job.JobTitle, job.JobDescription, job.ResumeDriveLink,
		job.UserNotes, analysis, job.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create job application: %w", err)
	}
	return created, nil
}

// GetJobApplication retrieves a job application owned by userID.
// Jobs owned by someone else are reported exactly like missing ones.
func (db *DB) GetJobApplication(ctx context.Context, userID, jobID uuid.UUID) (*JobApplication, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM job_applications WHERE id = $1 AND user_id = $2`,
		jobID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job application: %w", err)
	}
	return job, nil
}

// ListJobApplications returns one page of the user's job applications, newest first
func (db *DB) ListJobApplications(ctx context.Context, userID uuid.UUID, filters JobFilters) (*JobPage, error) {
	filters = filters.Normalize()

	where := ` WHERE user_id = $1`
	args := []any{userID}
	argNum := 2

	if filters.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count job applications: %w", err)
	}

	query := `SELECT ` + jobColumns + ` FROM job_applications` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.PageSize, filters.Offset())

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}
	defer rows.Close()

	jobs := []JobApplication{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job application: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}

	return &JobPage{Jobs: jobs, Total: total, Page: filters.Page, PageSize: filters.PageSize}, nil
}

// UpdateJobApplication applies only the fields set in update.
// It returns nil, nil when the job does not exist or is not owned by userID.
func (db *DB) UpdateJobApplication(ctx context.Context, userID, jobID uuid.UUID, update JobUpdate) (*JobApplication, error) {
	if update.IsEmpty() {
		return db.GetJobApplication(ctx, userID, jobID)
	}

	sets := []string{}
	args := []any{}
	argNum := 1
	set := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}

	if update.CompanyName != nil {
		set("company_name", *update.CompanyName)
	}
	if update.JobTitle != nil {
		set("job_title", *update.JobTitle)
	}
	if update.JobDescription != nil {
		set("job_description", *update.JobDescription)
	}
	if update.UserNotes != nil {
		set("user_notes", *update.UserNotes)
	}
	if update.Status != nil {
		set("status", *update.Status)
	}

	query := fmt.Sprintf(
		`UPDATE job_applications SET %s, updated_at = NOW()
		 WHERE id = $%d AND user_id = $%d
		 RETURNING `+jobColumns,
		strings.Join(sets, ", "), argNum, argNum+1,
	)
	args = append(args, jobID, userID)

	job, err := scanJob(db.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job application: %w", err)
	}
	return job, nil
}

// SaveAnalysis stores an analysis result on an owned job application and sets its status.
// It returns nil, nil when the job does not exist or is not owned by userID.
func (db *DB) SaveAnalysis(ctx context.Context, userID, jobID uuid.UUID, result *types.AIAnalysisResult, status string) (*JobApplication, error) {
	analysis, err := marshalAnalysis(result)
	if err != nil {
		return nil, err
	}

	job, err := scanJob(db.pool.QueryRow(ctx,
		`UPDATE job_applications SET ai_analysis = $1, status = $2, updated_at = NOW()
		 WHERE id = $3 AND user_id = $4
		 RETURNING `+jobColumns,
		analysis, status, jobID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return job, nil
}

// DeleteJobApplication deletes an owned job application and its notes in one transaction.
// It reports false when the job does not exist or is not owned by userID.
func (db *DB) DeleteJobApplication(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	deleted := false
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		// Lock the row first so notes cannot be added between the two deletes.
		var id uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM job_applications WHERE id = $1 AND user_id = $2 FOR UPDATE`,
			jobID, userID,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM notes WHERE job_id = $1`, jobID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM job_applications WHERE id = $1`, jobID); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete job application: %w", err)
	}
	return deleted, nil
}
