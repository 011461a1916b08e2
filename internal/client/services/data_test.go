package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jobkeeper/internal/client/calc"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/records"
)

func TestScenario_ClientJobInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client, err := f.data.AddClient(ctx, models.NewClient{Name: "Acme"})
	require.NoError(t, err)

	job, err := f.data.AddJob(ctx, models.NewJob{ClientID: client.ID, Title: "Fix sink", Status: models.JobStatusNotStarted})
	require.NoError(t, err)

	draft := models.Invoice{
		LineItems: []models.LineItem{{Description: "Labor", Quantity: 2, UnitPrice: 50, Amount: 100}},
		TaxRate:   10,
	}
	calc.ApplyToInvoice(&draft)

	inv, err := f.data.AddInvoice(ctx, models.NewInvoice{
		ClientID:  client.ID,
		JobID:     &job.ID,
		LineItems: draft.LineItems,
		Subtotal:  draft.Subtotal,
		TaxRate:   draft.TaxRate,
		TaxAmount: draft.TaxAmount,
		Total:     draft.Total,
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, inv.Subtotal)
	assert.Equal(t, 10.0, inv.TaxAmount)
	assert.Equal(t, 110.0, inv.Total)
	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
	assert.NotEmpty(t, inv.LineItems[0].ID)

	stored, err := f.repo.Invoices().GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.Invoice{inv}, stored)
}

func TestAddClient_ThenGetByIDMatches(t *testing.T) {
	f := newFixture(t)

	c, err := f.data.AddClient(context.Background(), models.NewClient{Name: "Acme", Email: "hi@acme.test"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.Equal(t, "2024-03-01T09:00:01Z", c.CreatedAt)

	got, ok := f.data.GetClientByID(c.ID)
	require.True(t, ok)
	require.Equal(t, c, got)
}

func TestNewDataService_DefaultIDsAreUUIDs(t *testing.T) {
	data := NewDataService(records.New(kv.NewMemoryStore()), nil)
	c, err := data.AddClient(context.Background(), models.NewClient{Name: "A"})
	require.NoError(t, err)
	require.Len(t, c.ID, 36)
}

func TestAdd_ValidationFailsBeforePersisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.data.AddClient(ctx, models.NewClient{Name: ""})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.data.AddClient(ctx, models.NewClient{Name: "x", Email: "not-an-email"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.data.AddInvoice(ctx, models.NewInvoice{ClientID: "c1"})
	require.ErrorIs(t, err, ErrValidation, "empty line items")

	_, err = f.data.AddJob(ctx, models.NewJob{Title: "no client"})
	require.ErrorIs(t, err, ErrValidation)

	all, err := f.store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all, "nothing written, counter not advanced")
}

func TestFailedWriteLeavesCacheUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.data.AddClient(ctx, models.NewClient{Name: "Acme"})
	require.NoError(t, err)

	f.store.setFailures(true, "")

	_, err = f.data.AddClient(ctx, models.NewClient{Name: "Globex"})
	require.ErrorIs(t, err, errDisk)

	renamed := c
	renamed.Name = "Acme Renamed"
	require.ErrorIs(t, f.data.UpdateClient(ctx, renamed), errDisk)
	require.ErrorIs(t, f.data.DeleteClient(ctx, c.ID), errDisk)

	require.Equal(t, []models.Client{c}, f.data.Clients())
}

func TestDeleteClient_CascadesCacheAndStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	acme, err := f.data.AddClient(ctx, models.NewClient{Name: "Acme"})
	require.NoError(t, err)
	globex, err := f.data.AddClient(ctx, models.NewClient{Name: "Globex"})
	require.NoError(t, err)

	items := []models.LineItem{{Description: "x", Quantity: 1, UnitPrice: 10, Amount: 10}}
	for _, c := range []models.Client{acme, globex} {
		_, err = f.data.AddJob(ctx, models.NewJob{ClientID: c.ID, Title: "job"})
		require.NoError(t, err)
		_, err = f.data.AddInvoice(ctx, models.NewInvoice{ClientID: c.ID, LineItems: items})
		require.NoError(t, err)
		_, err = f.data.AddQuote(ctx, models.NewQuote{ClientID: c.ID, LineItems: items})
		require.NoError(t, err)
		_, err = f.data.AddClientNote(ctx, models.NewClientNote{ClientID: c.ID, Content: "hello"})
		require.NoError(t, err)
	}

	require.NoError(t, f.data.DeleteClient(ctx, acme.ID))

	assert.Len(t, f.data.Clients(), 1)
	assert.Empty(t, f.data.GetJobsForClient(acme.ID))
	assert.Empty(t, f.data.GetInvoicesForClient(acme.ID))
	assert.Empty(t, f.data.GetQuotesForClient(acme.ID))
	assert.Empty(t, f.data.GetNotesForClient(acme.ID))
	assert.Len(t, f.data.GetJobsForClient(globex.ID), 1)
	assert.Len(t, f.data.GetQuotesForClient(globex.ID), 1)

	// the cache and a fresh load agree
	before := f.data.Snapshot()
	require.NoError(t, f.data.Refresh(ctx))
	assert.Equal(t, before, f.data.Snapshot())
}

func TestDeleteJob_LeavesInvoicesDangling(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.data.AddClient(ctx, models.NewClient{Name: "Acme"})
	require.NoError(t, err)
	j, err := f.data.AddJob(ctx, models.NewJob{ClientID: c.ID, Title: "job"})
	require.NoError(t, err)
	_, err = f.data.AddInvoice(ctx, models.NewInvoice{ClientID: c.ID, JobID: &j.ID, LineItems: []models.LineItem{{Amount: 1}}})
	require.NoError(t, err)

	require.NoError(t, f.data.DeleteJob(ctx, j.ID))

	_, ok := f.data.GetJobByID(j.ID)
	assert.False(t, ok)
	assert.Len(t, f.data.GetInvoicesForJob(j.ID), 1)
}

func TestRefresh_FailureKeepsCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.data.AddClient(ctx, models.NewClient{Name: "Acme"})
	require.NoError(t, err)

	// a write behind the service's back, then a failing reload
	require.NoError(t, f.repo.Clients().SaveAll(ctx, nil))
	f.store.setFailures(false, records.KeyQuotes)

	require.ErrorIs(t, f.data.Refresh(ctx), errDisk)
	require.Equal(t, []models.Client{c}, f.data.Clients())

	f.store.setFailures(false, "")
	require.NoError(t, f.data.Refresh(ctx))
	require.Empty(t, f.data.Clients())
}

func TestGetNotesForClient_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, content := range []string{"first", "second", "third"} {
		_, err := f.data.AddClientNote(ctx, models.NewClientNote{ClientID: "c1", Content: content, Type: models.NoteTypeCall})
		require.NoError(t, err)
	}
	_, err := f.data.AddClientNote(ctx, models.NewClientNote{ClientID: "c2", Content: "other"})
	require.NoError(t, err)

	notes := f.data.GetNotesForClient("c1")
	require.Len(t, notes, 3)
	assert.Equal(t, "third", notes[0].Content)
	assert.Equal(t, "first", notes[2].Content)
}

func TestAggregatesAndDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	items := []models.LineItem{{Amount: 1}}

	_, err := f.data.AddClient(ctx, models.NewClient{Name: "Acme"})
	require.NoError(t, err)
	_, err = f.data.AddJob(ctx, models.NewJob{ClientID: "c", Title: "a", Status: models.JobStatusNotStarted})
	require.NoError(t, err)
	_, err = f.data.AddJob(ctx, models.NewJob{ClientID: "c", Title: "b", Status: models.JobStatusInProgress})
	require.NoError(t, err)
	_, err = f.data.AddJob(ctx, models.NewJob{ClientID: "c", Title: "c", Status: models.JobStatusCompleted})
	require.NoError(t, err)

	for _, tc := range []struct {
		status models.InvoiceStatus
		total  float64
	}{
		{models.InvoiceStatusPaid, 200},
		{models.InvoiceStatusSent, 50},
		{models.InvoiceStatusOverdue, 25},
		{models.InvoiceStatusDraft, 999},
	} {
		_, err = f.data.AddInvoice(ctx, models.NewInvoice{ClientID: "c", Status: tc.status, LineItems: items, Total: tc.total})
		require.NoError(t, err)
	}
	_, err = f.data.AddQuote(ctx, models.NewQuote{ClientID: "c", LineItems: items})
	require.NoError(t, err)

	assert.Len(t, f.data.GetActiveJobs(), 2)
	assert.Equal(t, 3, f.data.GetJobCountForClient("c"))
	assert.Equal(t, 200.0, f.data.GetTotalRevenue())
	assert.Equal(t, 75.0, f.data.GetPendingRevenue())

	d := f.data.Dashboard()
	assert.Equal(t, Dashboard{Clients: 1, ActiveJobs: 2, OpenQuotes: 1, TotalRevenue: 200, PendingRevenue: 75}, d)
}

func TestGetJobFinancials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	j, err := f.data.AddJob(ctx, models.NewJob{ClientID: "c", Title: "Fix", LaborHours: 5, LaborRate: 20, MaterialsCost: 50})
	require.NoError(t, err)
	_, err = f.data.AddExpense(ctx, j.ID, models.NewExpense{Description: "Pipe", Amount: 25})
	require.NoError(t, err)
	_, err = f.data.AddInvoice(ctx, models.NewInvoice{ClientID: "c", JobID: &j.ID, Status: models.InvoiceStatusPaid, LineItems: []models.LineItem{{Amount: 200}}, Total: 200})
	require.NoError(t, err)

	fin, err := f.data.GetJobFinancials(j.ID)
	require.NoError(t, err)
	assert.Equal(t, 175.0, fin.TotalCost)
	assert.Equal(t, 25.0, fin.Profit)
	assert.Equal(t, "Profit", fin.ProfitLabel)

	_, err = f.data.GetJobFinancials("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceNumbersAreSequential(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	items := []models.LineItem{{Amount: 1}}

	var numbers []string
	for i := 0; i < 3; i++ {
		inv, err := f.data.AddInvoice(ctx, models.NewInvoice{ClientID: "c", LineItems: items})
		require.NoError(t, err)
		numbers = append(numbers, inv.InvoiceNumber)
		require.NoError(t, f.data.DeleteInvoice(ctx, inv.ID))
	}
	assert.Equal(t, []string{"INV-0001", "INV-0002", "INV-0003"}, numbers)
}
