// Package shared holds the HTTP wire contract spoken between the JobKeeper
// backend and its clients: request and response bodies plus the sentinel
// errors the API reports.
package shared

import "time"

// MaxNoteTextLength bounds a single job note.
const MaxNoteTextLength = 4000

// JobNote is a free-text note attached to a job id.
type JobNote struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	UserID    string    `json:"userId"`
	NoteText  string    `json:"noteText"`
	CreatedAt time.Time `json:"createdAt"`
}

type JobNotesResponse struct {
	Notes []JobNote `json:"notes"`
}

type CreateJobNoteRequest struct {
	NoteText string `json:"noteText"`
}

type JobNoteResponse struct {
	Note JobNote `json:"note"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type UploadURLRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// UploadURLResponse carries a presigned PUT url and the object key the
// client stores on the attachment record.
type UploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
