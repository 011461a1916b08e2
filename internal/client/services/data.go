package services

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/records"
	"github.com/dmitrijs2005/jobkeeper/internal/logging"
)

const DefaultMaxAttachments = 10

// DataService is the in-memory source of truth for the five collections.
//
// Reads are served from the cache. Every mutation is written through the
// repository first; the cache changes only after the write succeeded, so a
// failed write leaves it untouched. Mutations are serialised with each other.
type DataService struct {
	repo     *records.Repository
	log      logging.Logger
	validate *validator.Validate

	now            func() time.Time
	newID          func() string
	maxAttachments int

	writeMu sync.Mutex

	mu          sync.RWMutex
	clients     []models.Client
	jobs        []models.Job
	invoices    []models.Invoice
	quotes      []models.Quote
	clientNotes []models.ClientNote
}

type Option func(*DataService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *DataService) { s.now = now }
}

func WithIDGenerator(f func() string) Option {
	return func(s *DataService) { s.newID = f }
}

// WithMaxAttachments sets the per-job attachment cap; n <= 0 disables it.
func WithMaxAttachments(n int) Option {
	return func(s *DataService) { s.maxAttachments = n }
}

func NewDataService(repo *records.Repository, log logging.Logger, opts ...Option) *DataService {
	if log == nil {
		log = logging.Nop()
	}
	s := &DataService{
		repo:           repo,
		log:            log.With("module", "data"),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		now:            time.Now,
		newID:          newUUID,
		maxAttachments: DefaultMaxAttachments,
		clients:        []models.Client{},
		jobs:           []models.Job{},
		invoices:       []models.Invoice{},
		quotes:         []models.Quote{},
		clientNotes:    []models.ClientNote{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s *DataService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func (s *DataService) today() string {
	return s.now().Format(time.DateOnly)
}

// Refresh reloads every collection in parallel. The cache is replaced only
// if all loads succeed.
func (s *DataService) Refresh(ctx context.Context) error {
	var (
		clients     []models.Client
		jobs        []models.Job
		invoices    []models.Invoice
		quotes      []models.Quote
		clientNotes []models.ClientNote
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { clients, err = s.repo.Clients().GetAll(gctx); return })
	g.Go(func() (err error) { jobs, err = s.repo.Jobs().GetAll(gctx); return })
	g.Go(func() (err error) { invoices, err = s.repo.Invoices().GetAll(gctx); return })
	g.Go(func() (err error) { quotes, err = s.repo.Quotes().GetAll(gctx); return })
	g.Go(func() (err error) { clientNotes, err = s.repo.ClientNotes().GetAll(gctx); return })

	if err := g.Wait(); err != nil {
		s.log.Error(ctx, "refresh failed", "error", err)
		return err
	}

	s.mu.Lock()
	s.clients, s.jobs, s.invoices, s.quotes, s.clientNotes = clients, jobs, invoices, quotes, clientNotes
	s.mu.Unlock()

	s.log.Debug(ctx, "cache refreshed",
		"clients", len(clients), "jobs", len(jobs), "invoices", len(invoices),
		"quotes", len(quotes), "notes", len(clientNotes))
	return nil
}

// Snapshot copies the current cache.
func (s *DataService) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Snapshot{
		Clients:     clone(s.clients),
		Jobs:        clone(s.jobs),
		Invoices:    clone(s.invoices),
		Quotes:      clone(s.quotes),
		ClientNotes: clone(s.clientNotes),
	}
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := []T{}
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func replaceByID[T records.Record](in []T, item T) {
	for i := range in {
		if in[i].GetID() == item.GetID() {
			in[i] = item
			return
		}
	}
}

func findByID[T records.Record](in []T, id string) (T, bool) {
	for _, v := range in {
		if v.GetID() == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}
