package models

// The New* types are caller input for creating records. The data service
// fills in ID, CreatedAt and document numbers.

type NewClient struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

type NewJob struct {
	ClientID      string       `json:"clientId" validate:"required"`
	Title         string       `json:"title" validate:"required"`
	Description   string       `json:"description,omitempty"`
	Status        JobStatus    `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
	StartDate     string       `json:"startDate,omitempty"`
	DueDate       string       `json:"dueDate,omitempty"`
	LaborHours    float64      `json:"laborHours" validate:"gte=0"`
	LaborRate     float64      `json:"laborRate" validate:"gte=0"`
	MaterialsCost float64      `json:"materialsCost" validate:"gte=0"`
	Expenses      []Expense    `json:"expenses"`
	Attachments   []Attachment `json:"attachments"`
}

type NewInvoice struct {
	ClientID        string        `json:"clientId" validate:"required"`
	JobID           *string       `json:"jobId,omitempty"`
	Status          InvoiceStatus `json:"status" validate:"omitempty,oneof=draft sent paid overdue"`
	LineItems       []LineItem    `json:"lineItems" validate:"required,min=1,dive"`
	Subtotal        float64       `json:"subtotal"`
	DiscountPercent *float64      `json:"discountPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	DiscountAmount  *float64      `json:"discountAmount,omitempty"`
	TaxRate         float64       `json:"taxRate" validate:"gte=0"`
	TaxAmount       float64       `json:"taxAmount"`
	Total           float64       `json:"total"`
	Notes           string        `json:"notes,omitempty"`
	PaymentTerms    string        `json:"paymentTerms,omitempty"`
	IssueDate       string        `json:"issueDate"`
	DueDate         string        `json:"dueDate"`
	PaidDate        string        `json:"paidDate,omitempty"`
}

type NewQuote struct {
	ClientID        string      `json:"clientId" validate:"required"`
	JobID           *string     `json:"jobId,omitempty"`
	Status          QuoteStatus `json:"status" validate:"omitempty,oneof=draft sent accepted rejected"`
	LineItems       []LineItem  `json:"lineItems" validate:"required,min=1,dive"`
	Subtotal        float64     `json:"subtotal"`
	DiscountPercent *float64    `json:"discountPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	DiscountAmount  *float64    `json:"discountAmount,omitempty"`
	TaxRate         float64     `json:"taxRate" validate:"gte=0"`
	TaxAmount       float64     `json:"taxAmount"`
	Total           float64     `json:"total"`
	Notes           string      `json:"notes,omitempty"`
	PaymentTerms    string      `json:"paymentTerms,omitempty"`
	IssueDate       string      `json:"issueDate"`
	ValidUntil      string      `json:"validUntil"`
}

type NewClientNote struct {
	ClientID string   `json:"clientId" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Type     NoteType `json:"type" validate:"omitempty,oneof=note call email meeting"`
}

type NewExpense struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Date        string  `json:"date"`
}

type NewAttachment struct {
	URI  string         `json:"uri" validate:"required"`
	Name string         `json:"name" validate:"required"`
	Type AttachmentType `json:"type" validate:"required,oneof=image document"`
	Size *int64         `json:"size,omitempty"`
}
