package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/mindwise/internal/db"
	"github.com/jonathan/mindwise/internal/types"
)

// mockStore is an in-memory Store with the same ownership rules as the database.
type mockStore struct {
	mu    sync.Mutex
	now   time.Time
	users map[uuid.UUID]*db.User
	jobs  map[uuid.UUID]*db.JobApplication
	notes map[uuid.UUID]*db.Note
}

func newMockStore() *mockStore {
	return &mockStore{
		now:   time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		users: make(map[uuid.UUID]*db.User),
		jobs:  make(map[uuid.UUID]*db.JobApplication),
		notes: make(map[uuid.UUID]*db.Note),
	}
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (m *mockStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *mockStore) CreateUser(_ context.Context, firstName, lastName, email, passwordHash string, isFresher bool) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == db.NormalizeEmail(email) {
			return nil, db.ErrEmailExists
		}
	}
	u := &db.User{
		ID: uuid.New(), FirstName: firstName, LastName: lastName, Email: db.NormalizeEmail(email),
		PasswordHash: passwordHash, IsFresher: isFresher, CreatedAt: m.tick(),
	}
	m.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (m *mockStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == db.NormalizeEmail(email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (m *mockStore) CreateJobApplication(_ context.Context, job db.NewJobApplication) (*db.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job.Status == "" {
		job.Status = types.StatusPending
	}
	now := m.tick()
	created := &db.JobApplication{
		ID: uuid.New(), UserID: job.UserID, CompanyName: job.CompanyName, JobTitle: job.JobTitle,
		JobDescription: job.JobDescription, ResumeDriveLink: job.ResumeDriveLink, UserNotes: job.UserNotes,
		AIAnalysis: job.AIAnalysis, Status: job.Status, CreatedAt: now, UpdatedAt: now,
	}
	m.jobs[created.ID] = created
	copied := *created
	return &copied, nil
}

func (m *mockStore) owned(userID, jobID uuid.UUID) *db.JobApplication {
	job, ok := m.jobs[jobID]
	if !ok || job.UserID != userID {
		return nil
	}
	return job
}

func (m *mockStore) GetJobApplication(_ context.Context, userID, jobID uuid.UUID) (*db.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job := m.owned(userID, jobID)
	if job == nil {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

func (m *mockStore) ListJobApplications(_ context.Context, userID uuid.UUID, filters db.JobFilters) (*db.JobPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	filters = filters.Normalize()

	var matched []db.JobApplication
	for _, job := range m.jobs {
		if job.UserID != userID || (filters.Status != "" && job.Status != filters.Status) {
			continue
		}
		matched = append(matched, *job)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	page := &db.JobPage{Jobs: []db.JobApplication{}, Total: len(matched), Page: filters.Page, PageSize: filters.PageSize}
	start := filters.Offset()
	if start < len(matched) {
		end := min(start+filters.PageSize, len(matched))
		page.Jobs = matched[start:end]
	}
	return page, nil
}

func (m *mockStore) UpdateJobApplication(_ context.Context, userID, jobID uuid.UUID, update db.JobUpdate) (*db.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job := m.owned(userID, jobID)
	if job == nil {
		return nil, nil
	}
	if update.CompanyName != nil {
		job.CompanyName = *update.CompanyName
	}
	if update.JobTitle != nil {
		job.JobTitle = *update.JobTitle
	}
	if update.JobDescription != nil {
		job.JobDescription = *update.JobDescription
	}
	if update.UserNotes != nil {
		notes := *update.UserNotes
		job.UserNotes = &notes
	}
	if update.Status != nil {
		job.Status = *update.Status
	}
	job.UpdatedAt = m.tick()
	copied := *job
	return &copied, nil
}

func (m *mockStore) SaveAnalysis(_ context.Context, userID, jobID uuid.UUID, result *types.AIAnalysisResult, status string) (*db.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job := m.owned(userID, jobID)
	if job == nil {
		return nil, nil
	}
	job.AIAnalysis = result
	job.Status = status
	job.UpdatedAt = m.tick()
	copied := *job
	return &copied, nil
}

func (m *mockStore) DeleteJobApplication(_ context.Context, userID, jobID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owned(userID, jobID) == nil {
		return false, nil
	}
	for id, note := range m.notes {
		if note.JobID == jobID {
			delete(m.notes, id)
		}
	}
	delete(m.jobs, jobID)
	return true, nil
}

func (m *mockStore) CreateNote(_ context.Context, userID, jobID uuid.UUID, content string) (*db.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owned(userID, jobID) == nil {
		return nil, nil
	}
	note := &db.Note{ID: uuid.New(), JobID: jobID, Content: content, CreatedAt: m.tick()}
	m.notes[note.ID] = note
	copied := *note
	return &copied, nil
}

func (m *mockStore) ListNotes(_ context.Context, userID, jobID uuid.UUID) ([]db.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	notes := []db.Note{}
	if m.owned(userID, jobID) == nil {
		return notes, nil
	}
	for _, note := range m.notes {
		if note.JobID == jobID {
			notes = append(notes, *note)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].CreatedAt.After(notes[j].CreatedAt) })
	return notes, nil
}

func (m *mockStore) DeleteNote(_ context.Context, userID, noteID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	note, ok := m.notes[noteID]
	if !ok || m.owned(userID, note.JobID) == nil {
		return false, nil
	}
	delete(m.notes, noteID)
	return true, nil
}

func (m *mockStore) notesFor(jobID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, note := range m.notes {
		if note.JobID == jobID {
			count++
		}
	}
	return count
}

func (m *mockStore) Close() {}
