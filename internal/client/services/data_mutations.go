package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

func (s *DataService) check(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return nil
}

func (s *DataService) AddClient(ctx context.Context, in models.NewClient) (models.Client, error) {
	if err := s.check(in); err != nil {
		return models.Client{}, err
	}

	c := models.Client{
		ID:        s.newID(),
		Name:      in.Name,
		Company:   in.Company,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		ZipCode:   in.ZipCode,
		Notes:     in.Notes,
		CreatedAt: s.timestamp(),
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.Clients().Add(ctx, c); err != nil {
		return models.Client{}, fmt.Errorf("failed to save client: %w", err)
	}

	s.mu.Lock()
	s.clients = append(s.clients, c)
	s.mu.Unlock()
	return c, nil
}

func (s *DataService) AddJob(ctx context.Context, in models.NewJob) (models.Job, error) {
	if err := s.check(in); err != nil {
		return models.Job{}, err
	}

	j := models.Job{
		ID:            s.newID(),
		ClientID:      in.ClientID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        in.Status,
		StartDate:     in.StartDate,
		DueDate:       in.DueDate,
		LaborHours:    in.LaborHours,
		LaborRate:     in.LaborRate,
		MaterialsCost: in.MaterialsCost,
		Expenses:      clone(in.Expenses),
		Attachments:   clone(in.Attachments),
		CreatedAt:     s.timestamp(),
	}
	if j.Status == "" {
		j.Status = models.JobStatusNotStarted
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.Jobs().Add(ctx, j); err != nil {
		return models.Job{}, fmt.Errorf("failed to save job: %w", err)
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, j)
	s.mu.Unlock()
	return j, nil
}

// AddInvoice reserves the next invoice number before saving. The number is
// consumed even if the save fails.
func (s *DataService) AddInvoice(ctx context.Context, in models.NewInvoice) (models.Invoice, error) {
	if err := s.check(in); err != nil {
		return models.Invoice{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	number, err := s.repo.GetNextInvoiceNumber(ctx)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("failed to reserve invoice number: %w", err)
	}

	inv := models.Invoice{
		ID:              s.newID(),
		InvoiceNumber:   number,
		ClientID:        in.ClientID,
		JobID:           in.JobID,
		Status:          in.Status,
		LineItems:       clone(in.LineItems),
		Subtotal:        in.Subtotal,
		DiscountPercent: in.DiscountPercent,
		DiscountAmount:  in.DiscountAmount,
		TaxRate:         in.TaxRate,
		TaxAmount:       in.TaxAmount,
		Total:           in.Total,
		Notes:           in.Notes,
		PaymentTerms:    in.PaymentTerms,
		IssueDate:       in.IssueDate,
		DueDate:         in.DueDate,
		PaidDate:        in.PaidDate,
		CreatedAt:       s.timestamp(),
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	s.fillLineItemIDs(inv.LineItems)

	if err := s.repo.Invoices().Add(ctx, inv); err != nil {
		return models.Invoice{}, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.mu.Lock()
	s.invoices = append(s.invoices, inv)
	s.mu.Unlock()

	s.log.Info(ctx, "invoice created", "number", inv.InvoiceNumber, "client_id", inv.ClientID)
	return inv, nil
}

func (s *DataService) AddQuote(ctx context.Context, in models.NewQuote) (models.Quote, error) {
	if err := s.check(in); err != nil {
		return models.Quote{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	number, err := s.repo.GetNextQuoteNumber(ctx)
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to reserve quote number: %w", err)
	}

	q := models.Quote{
		ID:              s.newID(),
		QuoteNumber:     number,
		ClientID:        in.ClientID,
		JobID:           in.JobID,
		Status:          in.Status,
		LineItems:       clone(in.LineItems),
		Subtotal:        in.Subtotal,
		DiscountPercent: in.DiscountPercent,
		DiscountAmount:  in.DiscountAmount,
		TaxRate:         in.TaxRate,
		TaxAmount:       in.TaxAmount,
		Total:           in.Total,
		Notes:           in.Notes,
		PaymentTerms:    in.PaymentTerms,
		IssueDate:       in.IssueDate,
		ValidUntil:      in.ValidUntil,
		CreatedAt:       s.timestamp(),
	}
	if q.Status == "" {
		q.Status = models.QuoteStatusDraft
	}
	s.fillLineItemIDs(q.LineItems)

	if err := s.repo.Quotes().Add(ctx, q); err != nil {
		return models.Quote{}, fmt.Errorf("failed to save quote: %w", err)
	}

	s.mu.Lock()
	s.quotes = append(s.quotes, q)
	s.mu.Unlock()

	s.log.Info(ctx, "quote created", "number", q.QuoteNumber, "client_id", q.ClientID)
	return q, nil
}

func (s *DataService) AddClientNote(ctx context.Context, in models.NewClientNote) (models.ClientNote, error) {
	if err := s.check(in); err != nil {
		return models.ClientNote{}, err
	}

	n := models.ClientNote{
		ID:        s.newID(),
		ClientID:  in.ClientID,
		Content:   in.Content,
		Type:      in.Type,
		CreatedAt: s.timestamp(),
	}
	if n.Type == "" {
		n.Type = models.NoteTypeNote
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.ClientNotes().Add(ctx, n); err != nil {
		return models.ClientNote{}, fmt.Errorf("failed to save note: %w", err)
	}

	s.mu.Lock()
	s.clientNotes = append(s.clientNotes, n)
	s.mu.Unlock()
	return n, nil
}

// fillLineItemIDs gives line items without an id a fresh one, in place.
func (s *DataService) fillLineItemIDs(items []models.LineItem) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = s.newID()
		}
	}
}

func (s *DataService) UpdateClient(ctx context.Context, c models.Client) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.Clients().Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.clients, c)
	s.mu.Unlock()
	return nil
}

func (s *DataService) UpdateJob(ctx context.Context, j models.Job) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.updateJobLocked(ctx, j)
}

func (s *DataService) updateJobLocked(ctx context.Context, j models.Job) error {
	if err := s.repo.Jobs().Update(ctx, j); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.jobs, j)
	s.mu.Unlock()
	return nil
}

func (s *DataService) UpdateInvoice(ctx context.Context, inv models.Invoice) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.updateInvoiceLocked(ctx, inv)
}

func (s *DataService) updateInvoiceLocked(ctx context.Context, inv models.Invoice) error {
	if err := s.repo.Invoices().Update(ctx, inv); err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.invoices, inv)
	s.mu.Unlock()
	return nil
}

func (s *DataService) UpdateQuote(ctx context.Context, q models.Quote) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.updateQuoteLocked(ctx, q)
}

func (s *DataService) updateQuoteLocked(ctx context.Context, q models.Quote) error {
	if err := s.repo.Quotes().Update(ctx, q); err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.quotes, q)
	s.mu.Unlock()
	return nil
}

// DeleteClient removes the client with its jobs, invoices, notes and quotes
// from storage and then from the cache.
func (s *DataService) DeleteClient(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	s.mu.Lock()
	s.clients = filter(s.clients, func(c models.Client) bool { return c.ID != id })
	s.jobs = filter(s.jobs, func(j models.Job) bool { return j.ClientID != id })
	s.invoices = filter(s.invoices, func(i models.Invoice) bool { return i.ClientID != id })
	s.clientNotes = filter(s.clientNotes, func(n models.ClientNote) bool { return n.ClientID != id })
	s.quotes = filter(s.quotes, func(q models.Quote) bool { return q.ClientID != id })
	s.mu.Unlock()

	s.log.Info(ctx, "client deleted", "client_id", id)
	return nil
}

// DeleteJob does not touch invoices or quotes that reference the job.
func (s *DataService) DeleteJob(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.Jobs().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	s.mu.Lock()
	s.jobs = filter(s.jobs, func(j models.Job) bool { return j.ID != id })
	s.mu.Unlock()
	return nil
}

func (s *DataService) DeleteInvoice(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.Invoices().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	s.mu.Lock()
	s.invoices = filter(s.invoices, func(i models.Invoice) bool { return i.ID != id })
	s.mu.Unlock()
	return nil
}

func (s *DataService) DeleteQuote(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.Quotes().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	s.mu.Lock()
	s.quotes = filter(s.quotes, func(q models.Quote) bool { return q.ID != id })
	s.mu.Unlock()
	return nil
}

func (s *DataService) DeleteClientNote(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.repo.ClientNotes().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	s.mu.Lock()
	s.clientNotes = filter(s.clientNotes, func(n models.ClientNote) bool { return n.ID != id })
	s.mu.Unlock()
	return nil
}
