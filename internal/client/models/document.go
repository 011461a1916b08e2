package models

// LineItem is one billable row on an invoice or a quote.
// Amount is quantity × unit price as computed by the caller.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceStatusDraft:   {InvoiceStatusSent},
	InvoiceStatusSent:    {InvoiceStatusPaid, InvoiceStatusOverdue},
	InvoiceStatusOverdue: {InvoiceStatusPaid},
}

// Invoice is a bill issued to a client, optionally tied to a job.
// Subtotal, tax and total are stored as given; see package calc.
type Invoice struct {
	ID              string        `json:"id"`
	InvoiceNumber   string        `json:"invoiceNumber"`
	ClientID        string        `json:"clientId"`
	JobID           *string       `json:"jobId,omitempty"`
	Status          InvoiceStatus `json:"status"`
	LineItems       []LineItem    `json:"lineItems"`
	Subtotal        float64       `json:"subtotal"`
	DiscountPercent *float64      `json:"discountPercent,omitempty"`
	DiscountAmount  *float64      `json:"discountAmount,omitempty"`
	TaxRate         float64       `json:"taxRate"`
	TaxAmount       float64       `json:"taxAmount"`
	Total           float64       `json:"total"`
	Notes           string        `json:"notes,omitempty"`
	PaymentTerms    string        `json:"paymentTerms,omitempty"`
	IssueDate       string        `json:"issueDate"`
	DueDate         string        `json:"dueDate"`
	PaidDate        string        `json:"paidDate,omitempty"`
	CreatedAt       string        `json:"createdAt"`
}

func (i Invoice) GetID() string { return i.ID }

// CanTransition reports whether the invoice may move from its current
// status to to. Staying in the same status is allowed.
func (i Invoice) CanTransition(to InvoiceStatus) bool {
	if i.Status == to {
		return to.Valid()
	}
	for _, s := range invoiceTransitions[i.Status] {
		if s == to {
			return true
		}
	}
	return false
}

// HasJob reports whether the invoice is tied to jobID.
func (i Invoice) HasJob(jobID string) bool {
	return i.JobID != nil && *i.JobID == jobID
}

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected:
		return true
	}
	return false
}

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft: {QuoteStatusSent},
	QuoteStatusSent:  {QuoteStatusAccepted, QuoteStatusRejected},
}

// Quote is an offer sent to a client. An accepted quote can be turned
// into a new draft invoice; the quote itself is not changed.
type Quote struct {
	ID              string      `json:"id"`
	QuoteNumber     string      `json:"quoteNumber"`
	ClientID        string      `json:"clientId"`
	JobID           *string     `json:"jobId,omitempty"`
	Status          QuoteStatus `json:"status"`
	LineItems       []LineItem  `json:"lineItems"`
	Subtotal        float64     `json:"subtotal"`
	DiscountPercent *float64    `json:"discountPercent,omitempty"`
	DiscountAmount  *float64    `json:"discountAmount,omitempty"`
	TaxRate         float64     `json:"taxRate"`
	TaxAmount       float64     `json:"taxAmount"`
	Total           float64     `json:"total"`
	Notes           string      `json:"notes,omitempty"`
	PaymentTerms    string      `json:"paymentTerms,omitempty"`
	IssueDate       string      `json:"issueDate"`
	ValidUntil      string      `json:"validUntil"`
	SentDate        string      `json:"sentDate,omitempty"`
	RespondedDate   string      `json:"respondedDate,omitempty"`
	CreatedAt       string      `json:"createdAt"`
}

func (q Quote) GetID() string { return q.ID }

func (q Quote) CanTransition(to QuoteStatus) bool {
	if q.Status == to {
		return to.Valid()
	}
	for _, s := range quoteTransitions[q.Status] {
		if s == to {
			return true
		}
	}
	return false
}

func (q Quote) HasJob(jobID string) bool {
	return q.JobID != nil && *q.JobID == jobID
}
