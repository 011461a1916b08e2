package models

import "time"

// JobNote is a free-text note attached to a job. JobID is not a foreign key:
// devices keep their own job ids and only share them with the backend here.
type JobNote struct {
	ID        string
	JobID     string
	UserID    string
	NoteText  string
	CreatedAt time.Time
}
