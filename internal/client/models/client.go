package models

// Client is a customer of the business.
type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func (c Client) GetID() string { return c.ID }

// NoteType classifies a client interaction.
type NoteType string

const (
	NoteTypeNote    NoteType = "note"
	NoteTypeCall    NoteType = "call"
	NoteTypeEmail   NoteType = "email"
	NoteTypeMeeting NoteType = "meeting"
)

func (t NoteType) Valid() bool {
	switch t {
	case NoteTypeNote, NoteTypeCall, NoteTypeEmail, NoteTypeMeeting:
		return true
	}
	return false
}

// ClientNote is a timestamped log line attached to a client.
type ClientNote struct {
	ID        string   `json:"id"`
	ClientID  string   `json:"clientId"`
	Content   string   `json:"content"`
	Type      NoteType `json:"type"`
	CreatedAt string   `json:"createdAt"`
}

func (n ClientNote) GetID() string { return n.ID }
