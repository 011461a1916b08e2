package services

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/calc"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

func (s *DataService) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.clients)
}

func (s *DataService) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.jobs)
}

func (s *DataService) Invoices() []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.invoices)
}

func (s *DataService) Quotes() []models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.quotes)
}

func (s *DataService) GetClientByID(id string) (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.clients, id)
}

func (s *DataService) GetJobByID(id string) (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.jobs, id)
}

func (s *DataService) GetInvoiceByID(id string) (models.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.invoices, id)
}

func (s *DataService) GetQuoteByID(id string) (models.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findByID(s.quotes, id)
}

func (s *DataService) GetJobsForClient(clientID string) []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.jobs, func(j models.Job) bool { return j.ClientID == clientID })
}

func (s *DataService) GetInvoicesForClient(clientID string) []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.invoices, func(i models.Invoice) bool { return i.ClientID == clientID })
}

func (s *DataService) GetInvoicesForJob(jobID string) []models.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.invoices, func(i models.Invoice) bool { return i.HasJob(jobID) })
}

func (s *DataService) GetQuotesForClient(clientID string) []models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.quotes, func(q models.Quote) bool { return q.ClientID == clientID })
}

func (s *DataService) GetQuotesForJob(jobID string) []models.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.quotes, func(q models.Quote) bool { return q.HasJob(jobID) })
}

// GetNotesForClient returns the client's notes, newest first.
func (s *DataService) GetNotesForClient(clientID string) []models.ClientNote {
	s.mu.RLock()
	notes := filter(s.clientNotes, func(n models.ClientNote) bool { return n.ClientID == clientID })
	s.mu.RUnlock()

	sort.SliceStable(notes, func(i, j int) bool {
		return createdAfter(notes[i].CreatedAt, notes[j].CreatedAt)
	})
	return notes
}

// createdAfter compares RFC 3339 timestamps, falling back to string order
// when either side does not parse.
func createdAfter(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339Nano, a)
	tb, errB := time.Parse(time.RFC3339Nano, b)
	if errA != nil || errB != nil {
		return a > b
	}
	return ta.After(tb)
}

func (s *DataService) GetActiveJobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calc.ActiveJobs(s.jobs)
}

func (s *DataService) GetJobCountForClient(clientID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calc.JobCountForClient(s.jobs, clientID)
}

func (s *DataService) GetTotalRevenue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calc.TotalRevenue(s.invoices)
}

func (s *DataService) GetPendingRevenue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return calc.PendingRevenue(s.invoices)
}

func (s *DataService) GetJobFinancials(jobID string) (calc.Financials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := findByID(s.jobs, jobID)
	if !ok {
		return calc.Financials{}, ErrNotFound
	}
	return calc.JobFinancials(job, s.invoices), nil
}

type Dashboard struct {
	Clients        int
	ActiveJobs     int
	OpenQuotes     int
	TotalRevenue   float64
	PendingRevenue float64
}

// Dashboard summarises the cache. Open quotes are drafts and sent quotes.
func (s *DataService) Dashboard() Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	open := 0
	for _, q := range s.quotes {
		if q.Status == models.QuoteStatusDraft || q.Status == models.QuoteStatusSent {
			open++
		}
	}
	return Dashboard{
		Clients:        len(s.clients),
		ActiveJobs:     len(calc.ActiveJobs(s.jobs)),
		OpenQuotes:     open,
		TotalRevenue:   calc.TotalRevenue(s.invoices),
		PendingRevenue: calc.PendingRevenue(s.invoices),
	}
}
