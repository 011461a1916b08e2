package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/jobkeeper/internal/common"
	"github.com/dmitrijs2005/jobkeeper/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobNoteService_AddListDelete(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewJobNoteService(nil, rm)
	ctx := context.Background()

	first, err := s.Add(ctx, "u1", "job-1", "  Called the client  ")
	require.NoError(t, err)
	assert.Equal(t, "Called the client", first.NoteText)
	assert.Equal(t, "job-1", first.JobID)
	assert.Equal(t, "u1", first.UserID)

	second, err := s.Add(ctx, "u1", "job-1", "Ordered tiles")
	require.NoError(t, err)

	_, err = s.Add(ctx, "u2", "job-1", "someone else")
	require.NoError(t, err)

	notes, err := s.List(ctx, "u1", "job-1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)

	require.NoError(t, s.Delete(ctx, "u1", "job-1", first.ID))
	notes, err = s.List(ctx, "u1", "job-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)

	err = s.Delete(ctx, "u1", "job-1", first.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestJobNoteService_Validation(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewJobNoteService(nil, rm)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", "job-1", "   \n\t ")
	assert.ErrorIs(t, err, shared.ErrorEmptyNoteText)

	_, err = s.Add(ctx, "u1", "job-1", strings.Repeat("x", shared.MaxNoteTextLength+1))
	assert.ErrorIs(t, err, shared.ErrorNoteTooLong)

	_, err = s.Add(ctx, "u1", "job-1", strings.Repeat("é", shared.MaxNoteTextLength))
	assert.NoError(t, err)

	_, err = s.Add(ctx, "u1", " ", "text")
	assert.ErrorIs(t, err, shared.ErrorJobIDRequired)

	_, err = s.List(ctx, "u1", "")
	assert.ErrorIs(t, err, shared.ErrorJobIDRequired)

	assert.Empty(t, rm.notes.deleted)
	err = s.Delete(ctx, "u1", "job-1", "not-a-uuid")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestJobNoteService_RepoErrorsPropagate(t *testing.T) {
	rm := newFakeRepoManager()
	rm.notes.err = errors.New("db down")
	s := NewJobNoteService(nil, rm)
	ctx := context.Background()

	_, err := s.List(ctx, "u1", "job-1")
	assert.EqualError(t, err, "db down")

	_, err = s.Add(ctx, "u1", "job-1", "x")
	assert.EqualError(t, err, "db down")
}
