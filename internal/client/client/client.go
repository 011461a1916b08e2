package client

import (
	"context"

	"github.com/dmitrijs2005/jobkeeper/internal/shared"
)

// Client is the transport-agnostic contract of the JobKeeper backend.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) error
	LoggedIn() bool
	ListJobNotes(ctx context.Context, jobID string) ([]shared.JobNote, error)
	AddJobNote(ctx context.Context, jobID, text string) (shared.JobNote, error)
	DeleteJobNote(ctx context.Context, jobID, noteID string) error
	GetUploadURL(ctx context.Context, jobID, fileName, contentType string) (shared.UploadURLResponse, error)
	GetDownloadURL(ctx context.Context, key string) (string, error)
	UploadAttachment(ctx context.Context, jobID, fileName, contentType string, data []byte) (string, error)
	DownloadAttachment(ctx context.Context, key string) ([]byte, error)
}
