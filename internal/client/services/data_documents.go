package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

const defaultDueDays = 30

// ConvertQuoteToInvoice creates a new draft invoice from an accepted quote.
// The quote itself is left as it is.
func (s *DataService) ConvertQuoteToInvoice(ctx context.Context, quoteID string) (models.Invoice, error) {
	q, ok := s.GetQuoteByID(quoteID)
	if !ok {
		return models.Invoice{}, fmt.Errorf("quote %s: %w", quoteID, ErrNotFound)
	}
	if q.Status != models.QuoteStatusAccepted {
		return models.Invoice{}, fmt.Errorf("quote %s is %s: %w", q.QuoteNumber, q.Status, ErrQuoteNotAccepted)
	}

	items := make([]models.LineItem, len(q.LineItems))
	for i, it := range q.LineItems {
		it.ID = ""
		items[i] = it
	}

	issue := s.now()
	return s.AddInvoice(ctx, models.NewInvoice{
		ClientID:        q.ClientID,
		JobID:           q.JobID,
		Status:          models.InvoiceStatusDraft,
		LineItems:       items,
		Subtotal:        q.Subtotal,
		DiscountPercent: q.DiscountPercent,
		DiscountAmount:  q.DiscountAmount,
		TaxRate:         q.TaxRate,
		TaxAmount:       q.TaxAmount,
		Total:           q.Total,
		Notes:           q.Notes,
		PaymentTerms:    q.PaymentTerms,
		IssueDate:       issue.Format(time.DateOnly),
		DueDate:         issue.AddDate(0, 0, defaultDueDays).Format(time.DateOnly),
	})
}

// SetInvoiceStatus moves an invoice along draft → sent → paid, with
// sent → overdue → paid as the late path. Moving to paid stamps PaidDate
// with today unless one is already set.
func (s *DataService) SetInvoiceStatus(ctx context.Context, id string, to models.InvoiceStatus) (models.Invoice, error) {
	return s.setInvoiceStatus(ctx, id, to, "")
}

// MarkInvoicePaid marks the invoice paid on date (today when empty).
func (s *DataService) MarkInvoicePaid(ctx context.Context, id, date string) (models.Invoice, error) {
	return s.setInvoiceStatus(ctx, id, models.InvoiceStatusPaid, date)
}

func (s *DataService) setInvoiceStatus(ctx context.Context, id string, to models.InvoiceStatus, paidDate string) (models.Invoice, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	inv, ok := s.GetInvoiceByID(id)
	if !ok {
		return models.Invoice{}, fmt.Errorf("invoice %s: %w", id, ErrNotFound)
	}
	if !inv.CanTransition(to) {
		return models.Invoice{}, fmt.Errorf("invoice %s: %s -> %s: %w", inv.InvoiceNumber, inv.Status, to, ErrInvalidTransition)
	}

	inv.Status = to
	if to == models.InvoiceStatusPaid {
		switch {
		case paidDate != "":
			inv.PaidDate = paidDate
		case inv.PaidDate == "":
			inv.PaidDate = s.today()
		}
	}

	if err := s.updateInvoiceLocked(ctx, inv); err != nil {
		return models.Invoice{}, err
	}
	return inv, nil
}

// SetQuoteStatus moves a quote along draft → sent → accepted|rejected and
// stamps SentDate or RespondedDate.
func (s *DataService) SetQuoteStatus(ctx context.Context, id string, to models.QuoteStatus) (models.Quote, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	q, ok := s.GetQuoteByID(id)
	if !ok {
		return models.Quote{}, fmt.Errorf("quote %s: %w", id, ErrNotFound)
	}
	if !q.CanTransition(to) {
		return models.Quote{}, fmt.Errorf("quote %s: %s -> %s: %w", q.QuoteNumber, q.Status, to, ErrInvalidTransition)
	}

	changed := q.Status != to
	q.Status = to
	if changed {
		switch to {
		case models.QuoteStatusSent:
			q.SentDate = s.today()
		case models.QuoteStatusAccepted, models.QuoteStatusRejected:
			q.RespondedDate = s.today()
		}
	}

	if err := s.updateQuoteLocked(ctx, q); err != nil {
		return models.Quote{}, err
	}
	return q, nil
}

func (s *DataService) SetJobStatus(ctx context.Context, id string, to models.JobStatus) (models.Job, error) {
	if !to.Valid() {
		return models.Job{}, fmt.Errorf("job status %q: %w", to, ErrValidation)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	j, ok := s.GetJobByID(id)
	if !ok {
		return models.Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	j.Status = to
	if err := s.updateJobLocked(ctx, j); err != nil {
		return models.Job{}, err
	}
	return j, nil
}

func (s *DataService) AddExpense(ctx context.Context, jobID string, in models.NewExpense) (models.Job, error) {
	if err := s.check(in); err != nil {
		return models.Job{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	j, ok := s.GetJobByID(jobID)
	if !ok {
		return models.Job{}, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}

	date := in.Date
	if date == "" {
		date = s.today()
	}
	j.Expenses = append(clone(j.Expenses), models.Expense{
		ID:          s.newID(),
		Description: in.Description,
		Amount:      in.Amount,
		Date:        date,
	})

	if err := s.updateJobLocked(ctx, j); err != nil {
		return models.Job{}, err
	}
	return j, nil
}

// AddAttachment appends an attachment unless the job already holds the
// configured maximum.
func (s *DataService) AddAttachment(ctx context.Context, jobID string, in models.NewAttachment) (models.Job, error) {
	if err := s.check(in); err != nil {
		return models.Job{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	j, ok := s.GetJobByID(jobID)
	if !ok {
		return models.Job{}, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	if s.maxAttachments > 0 && len(j.Attachments) >= s.maxAttachments {
		return models.Job{}, fmt.Errorf("job %s has %d attachments: %w", jobID, len(j.Attachments), ErrAttachmentLimit)
	}

	j.Attachments = append(clone(j.Attachments), models.Attachment{
		ID:        s.newID(),
		URI:       in.URI,
		Name:      in.Name,
		Type:      in.Type,
		Size:      in.Size,
		CreatedAt: s.timestamp(),
	})

	if err := s.updateJobLocked(ctx, j); err != nil {
		return models.Job{}, err
	}
	return j, nil
}

func (s *DataService) RemoveAttachment(ctx context.Context, jobID, attachmentID string) (models.Job, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	j, ok := s.GetJobByID(jobID)
	if !ok {
		return models.Job{}, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
	}
	j.Attachments = filter(j.Attachments, func(a models.Attachment) bool { return a.ID != attachmentID })

	if err := s.updateJobLocked(ctx, j); err != nil {
		return models.Job{}, err
	}
	return j, nil
}
