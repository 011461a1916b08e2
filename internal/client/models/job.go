package models

type JobStatus string

const (
	JobStatusNotStarted JobStatus = "not_started"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusNotStarted, JobStatusInProgress, JobStatusCompleted:
		return true
	}
	return false
}

// Expense is a cost booked against a job. It has no life of its own.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentDocument AttachmentType = "document"
)

func (t AttachmentType) Valid() bool {
	return t == AttachmentImage || t == AttachmentDocument
}

// Attachment references a file by URI: a local path or an object-store key.
type Attachment struct {
	ID        string         `json:"id"`
	URI       string         `json:"uri"`
	Name      string         `json:"name"`
	Type      AttachmentType `json:"type"`
	Size      *int64         `json:"size,omitempty"`
	CreatedAt string         `json:"createdAt"`
}

func (a Attachment) GetID() string { return a.ID }

type Job struct {
	ID            string       `json:"id"`
	ClientID      string       `json:"clientId"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Status        JobStatus    `json:"status"`
	StartDate     string       `json:"startDate,omitempty"`
	DueDate       string       `json:"dueDate,omitempty"`
	LaborHours    float64      `json:"laborHours"`
	LaborRate     float64      `json:"laborRate"`
	MaterialsCost float64      `json:"materialsCost"`
	Expenses      []Expense    `json:"expenses"`
	Attachments   []Attachment `json:"attachments"`
	CreatedAt     string       `json:"createdAt"`
}

func (j Job) GetID() string { return j.ID }
