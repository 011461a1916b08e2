package models

// Snapshot is a point-in-time copy of every collection.
type Snapshot struct {
	Clients     []Client
	Jobs        []Job
	Invoices    []Invoice
	Quotes      []Quote
	ClientNotes []ClientNote
}
