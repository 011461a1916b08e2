package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/jobnotes"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
)

type fakeRepoManager struct {
	users *fakeUsersRepo
	notes *fakeNotesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users: &fakeUsersRepo{byName: map[string]*models.User{}},
		notes: &fakeNotesRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }
func (m *fakeRepoManager) JobNotes(dbx.DBTX) jobnotes.Repository { return m.notes }

type fakeUsersRepo struct {
	byName    map[string]*models.User
	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, shared.ErrorLoginAlreadyExists
	}
	u.ID = "user-" + u.UserName
	u.CreatedAt = time.Now()
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeNotesRepo struct {
	notes   []models.JobNote
	seq     int
	deleted []string
	err     error
}

func (f *fakeNotesRepo) ListByJob(_ context.Context, userID, jobID string) ([]models.JobNote, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.JobNote{}
	for i := len(f.notes) - 1; i >= 0; i-- {
		n := f.notes[i]
		if n.UserID == userID && n.JobID == jobID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotesRepo) Create(_ context.Context, n *models.JobNote) (*models.JobNote, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	n.ID = noteID(f.seq)
	n.CreatedAt = time.Date(2024, 3, 1, 0, 0, f.seq, 0, time.UTC)
	f.notes = append(f.notes, *n)
	return n, nil
}

func (f *fakeNotesRepo) Delete(_ context.Context, userID, jobID, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, n := range f.notes {
		if n.ID == id && n.JobID == jobID && n.UserID == userID {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return common.ErrorNotFound
}

// noteID returns a stable uuid-shaped id for the n-th note.
func noteID(n int) string {
	return "00000000-0000-4000-8000-" + padLeft(n)
}

func padLeft(n int) string {
	s := "000000000000"
	d := []byte(s)
	for i := len(d) - 1; n > 0 && i >= 0; i-- {
		d[i] = byte('0' + n%10)
		n /= 10
	}
	return string(d)
}
