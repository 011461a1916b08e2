package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
)

// Sequence names a document counter.
type Sequence string

const (
	SequenceInvoice Sequence = "invoice"
	SequenceQuote   Sequence = "quote"
)

func (s Sequence) key() (string, error) {
	switch s {
	case SequenceInvoice:
		return KeyInvoiceCounter, nil
	case SequenceQuote:
		return KeyQuoteCounter, nil
	}
	return "", fmt.Errorf("unknown sequence %q", string(s))
}

func (s Sequence) prefix() string {
	if s == SequenceQuote {
		return "QTE"
	}
	return "INV"
}

type Repository struct {
	store kv.Store
	// db is set when the store lives in a SQL database; DeleteClient then
	// runs in one transaction.
	db dbx.TxBeginner
}

// New builds a Repository over any Store. DeleteClient is best-effort:
// steps run in order and earlier writes are not undone if a later one fails.
func New(store kv.Store) *Repository {
	return &Repository{store: store}
}

// NewSQLite builds a Repository over the kv table in db.
func NewSQLite(db *sql.DB) *Repository {
	return &Repository{store: kv.NewSQLiteStore(db), db: db}
}

func (r *Repository) Store() kv.Store { return r.store }

func (r *Repository) Clients() *Collection[models.Client] {
	return NewCollection[models.Client](r.store, KeyClients)
}

func (r *Repository) Jobs() *Collection[models.Job] {
	return NewCollection[models.Job](r.store, KeyJobs)
}

func (r *Repository) Invoices() *Collection[models.Invoice] {
	return NewCollection[models.Invoice](r.store, KeyInvoices)
}

func (r *Repository) Quotes() *Collection[models.Quote] {
	return NewCollection[models.Quote](r.store, KeyQuotes)
}

func (r *Repository) ClientNotes() *Collection[models.ClientNote] {
	return NewCollection[models.ClientNote](r.store, KeyClientNotes)
}

// DeleteClient removes the client and every job, invoice, client note and
// quote that references it, in that order.
func (r *Repository) DeleteClient(ctx context.Context, clientID string) error {
	if r.db == nil {
		return deleteClientSteps(ctx, r.store, clientID)
	}
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return deleteClientSteps(ctx, kv.NewSQLiteStore(tx), clientID)
	})
}

func deleteClientSteps(ctx context.Context, store kv.Store, clientID string) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"client", func() error {
			return NewCollection[models.Client](store, KeyClients).Delete(ctx, clientID)
		}},
		{"jobs", func() error {
			return NewCollection[models.Job](store, KeyJobs).DeleteWhere(ctx, func(j models.Job) bool {
				return j.ClientID == clientID
			})
		}},
		{"invoices", func() error {
			return NewCollection[models.Invoice](store, KeyInvoices).DeleteWhere(ctx, func(i models.Invoice) bool {
				return i.ClientID == clientID
			})
		}},
		{"client notes", func() error {
			return NewCollection[models.ClientNote](store, KeyClientNotes).DeleteWhere(ctx, func(n models.ClientNote) bool {
				return n.ClientID == clientID
			})
		}},
		{"quotes", func() error {
			return NewCollection[models.Quote](store, KeyQuotes).DeleteWhere(ctx, func(q models.Quote) bool {
				return q.ClientID == clientID
			})
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("delete client %s: %s: %w", clientID, step.name, err)
		}
	}
	return nil
}

// ReserveNextSequence always advances the counter, even if the caller never
// uses the number.
func (r *Repository) ReserveNextSequence(ctx context.Context, seq Sequence) (int64, error) {
	key, err := seq.key()
	if err != nil {
		return 0, err
	}
	return r.store.Incr(ctx, key)
}

// FormatNumber renders "INV-0007"; numbers above 9999 simply grow wider.
func FormatNumber(seq Sequence, n int64) string {
	return fmt.Sprintf("%s-%04d", seq.prefix(), n)
}

func (r *Repository) nextNumber(ctx context.Context, seq Sequence) (string, error) {
	n, err := r.ReserveNextSequence(ctx, seq)
	if err != nil {
		return "", err
	}
	return FormatNumber(seq, n), nil
}

func (r *Repository) GetNextInvoiceNumber(ctx context.Context) (string, error) {
	return r.nextNumber(ctx, SequenceInvoice)
}

func (r *Repository) GetNextQuoteNumber(ctx context.Context) (string, error) {
	return r.nextNumber(ctx, SequenceQuote)
}

// ClearAll removes every JobKeeper key except the user settings.
func (r *Repository) ClearAll(ctx context.Context) error {
	return r.store.MultiRemove(ctx, clearableKeys...)
}
