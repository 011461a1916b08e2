package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/kv"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return db
}

func repos(t *testing.T) map[string]*Repository {
	return map[string]*Repository{
		"sqlite": NewSQLite(setupDB(t)),
		"memory": New(kv.NewMemoryStore()),
	}
}

// failingStore fails writes to one key.
type failingStore struct {
	kv.Store
	failKey string
}

var errWrite = errors.New("disk full")

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return errWrite
	}
	return f.Store.Set(ctx, key, value)
}

func ptr[T any](v T) *T { return &v }

func seed(t *testing.T, r *Repository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, r.Clients().SaveAll(ctx, []models.Client{
		{ID: "c1", Name: "Acme"},
		{ID: "c2", Name: "Globex"},
	}))
	require.NoError(t, r.Jobs().SaveAll(ctx, []models.Job{
		{ID: "j1", ClientID: "c1", Title: "Fix sink", Status: models.JobStatusNotStarted},
		{ID: "j2", ClientID: "c2", Title: "Paint", Status: models.JobStatusCompleted},
	}))
	require.NoError(t, r.Invoices().SaveAll(ctx, []models.Invoice{
		{ID: "i1", ClientID: "c1", JobID: ptr("j1")},
		{ID: "i2", ClientID: "c2"},
	}))
	require.NoError(t, r.ClientNotes().SaveAll(ctx, []models.ClientNote{
		{ID: "n1", ClientID: "c1", Content: "called", Type: models.NoteTypeCall},
		{ID: "n2", ClientID: "c2", Content: "met", Type: models.NoteTypeMeeting},
	}))
	require.NoError(t, r.Quotes().SaveAll(ctx, []models.Quote{
		{ID: "q1", ClientID: "c1"},
		{ID: "q2", ClientID: "c2"},
	}))
}

func ids[T Record](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.GetID())
	}
	return out
}

func TestCollection_GetAllAbsentIsEmpty(t *testing.T) {
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			items, err := r.Clients().GetAll(context.Background())
			require.NoError(t, err)
			require.NotNil(t, items)
			require.Empty(t, items)
		})
	}
}

func TestCollection_SaveAllRoundTrip(t *testing.T) {
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			size := int64(2048)
			in := []models.Job{
				{
					ID: "b", ClientID: "c1", Title: "Second", Status: models.JobStatusInProgress,
					LaborHours: 5, LaborRate: 20, MaterialsCost: 50,
					Expenses:    []models.Expense{{ID: "e1", Description: "Pipe", Amount: 25, Date: "2024-01-02"}},
					Attachments: []models.Attachment{{ID: "a1", URI: "file:///x.jpg", Name: "x.jpg", Type: models.AttachmentImage, Size: &size}},
				},
				{ID: "a", ClientID: "c1", Title: "First", Status: models.JobStatusNotStarted, Expenses: []models.Expense{}, Attachments: []models.Attachment{}},
			}

			require.NoError(t, r.Jobs().SaveAll(ctx, in))
			out, err := r.Jobs().GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestCollection_AddUpdateDelete(t *testing.T) {
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := r.Clients()

			require.NoError(t, c.Add(ctx, models.Client{ID: "1", Name: "Acme"}))
			require.NoError(t, c.Add(ctx, models.Client{ID: "2", Name: "Globex"}))

			require.NoError(t, c.Update(ctx, models.Client{ID: "2", Name: "Globex Corp"}))
			require.NoError(t, c.Update(ctx, models.Client{ID: "404", Name: "Ghost"}))

			all, err := c.GetAll(ctx)
			require.NoError(t, err)
			require.Equal(t, []models.Client{{ID: "1", Name: "Acme"}, {ID: "2", Name: "Globex Corp"}}, all)

			require.NoError(t, c.Delete(ctx, "1"))
			all, err = c.GetAll(ctx)
			require.NoError(t, err)
			require.Equal(t, []string{"2"}, ids(all))
		})
	}
}

func TestCollection_UpdateMissingDoesNotWrite(t *testing.T) {
	store := &failingStore{Store: kv.NewMemoryStore(), failKey: KeyClients}
	c := NewCollection[models.Client](store, KeyClients)

	require.NoError(t, c.Update(context.Background(), models.Client{ID: "x"}))
}

func TestCollection_CorruptValue(t *testing.T) {
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), KeyQuotes, []byte("{not json")))

	_, err := New(store).Quotes().GetAll(context.Background())
	require.ErrorContains(t, err, "failed to decode @quotes")
}

func TestDeleteClient_Cascades(t *testing.T) {
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			seed(t, r)

			require.NoError(t, r.DeleteClient(ctx, "c1"))

			clients, err := r.Clients().GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"c2"}, ids(clients))

			jobs, err := r.Jobs().GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"j2"}, ids(jobs))

			invoices, err := r.Invoices().GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"i2"}, ids(invoices))

			notes, err := r.ClientNotes().GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"n2"}, ids(notes))

			quotes, err := r.Quotes().GetAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"q2"}, ids(quotes))
		})
	}
}

func TestDeleteClient_BestEffortWithoutTransaction(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	seed(t, New(mem))

	r := New(&failingStore{Store: mem, failKey: KeyInvoices})
	err := r.DeleteClient(ctx, "c1")
	require.ErrorIs(t, err, errWrite)
	require.ErrorContains(t, err, "invoices")

	// steps before the failure stay applied
	clients, err := r.Clients().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, ids(clients))
	jobs, err := r.Jobs().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"j2"}, ids(jobs))

	// and later ones never ran
	notes, err := r.ClientNotes().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1", "n2"}, ids(notes))
}

func TestDeleteClient_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	r := NewSQLite(db)
	seed(t, r)

	_, err := db.Exec(`
CREATE TRIGGER quotes_locked BEFORE UPDATE ON kv
WHEN NEW.key = '@quotes'
BEGIN
  SELECT RAISE(ABORT, 'quotes locked');
END;`)
	require.NoError(t, err)

	err = r.DeleteClient(ctx, "c1")
	require.Error(t, err)
	require.ErrorContains(t, err, "quotes")

	clients, err := r.Clients().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, ids(clients))
	jobs, err := r.Jobs().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"j1", "j2"}, ids(jobs))
}

func TestGetNextInvoiceNumber_Sequential(t *testing.T) {
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i := 1; i <= 3; i++ {
				n, err := r.GetNextInvoiceNumber(ctx)
				require.NoError(t, err)
				require.Equal(t, fmt.Sprintf("INV-%04d", i), n)

				// intervening adds and deletes do not affect the counter
				require.NoError(t, r.Invoices().Add(ctx, models.Invoice{ID: n}))
				require.NoError(t, r.Invoices().Delete(ctx, n))
			}

			q, err := r.GetNextQuoteNumber(ctx)
			require.NoError(t, err)
			require.Equal(t, "QTE-0001", q, "quote counter is independent")
		})
	}
}

func TestReserveNextSequence(t *testing.T) {
	r := New(kv.NewMemoryStore())
	ctx := context.Background()

	n, err := r.ReserveNextSequence(ctx, SequenceQuote)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = r.ReserveNextSequence(ctx, Sequence("receipt"))
	require.ErrorContains(t, err, "unknown sequence")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "INV-0007", FormatNumber(SequenceInvoice, 7))
	assert.Equal(t, "QTE-0042", FormatNumber(SequenceQuote, 42))
	assert.Equal(t, "INV-12345", FormatNumber(SequenceInvoice, 12345))
}

func TestClearAll_KeepsSettingsAndIsIdempotent(t *testing.T) {
	for name, r := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := r.Store()
			seed(t, r)
			require.NoError(t, store.Set(ctx, KeyUser, []byte(`{"pinHash":"x"}`)))
			require.NoError(t, store.Set(ctx, KeyUserSettings, []byte(`{"country":"US"}`)))
			_, err := r.GetNextInvoiceNumber(ctx)
			require.NoError(t, err)
			_, err = r.GetNextQuoteNumber(ctx)
			require.NoError(t, err)

			require.NoError(t, r.ClearAll(ctx))
			first, err := store.List(ctx)
			require.NoError(t, err)

			require.NoError(t, r.ClearAll(ctx))
			second, err := store.List(ctx)
			require.NoError(t, err)

			require.Equal(t, first, second)
			require.Equal(t, map[string][]byte{KeyUserSettings: []byte(`{"country":"US"}`)}, first)

			n, err := r.GetNextInvoiceNumber(ctx)
			require.NoError(t, err)
			require.True(t, strings.HasSuffix(n, "0001"), "counter restarts after ClearAll")
		})
	}
}
