package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

func ptr[T any](v T) *T { return &v }

var settings = models.UserSettings{
	Country: "US", Currency: "USD", Locale: "en-US",
	BusinessName: "Plumb Co", BusinessEmail: "office@plumb.test", DefaultPaymentTerms: "Net 30",
}

func uncompressed(t *testing.T) {
	orig := compress
	compress = false
	t.Cleanup(func() { compress = orig })
}

func TestRenderInvoicePDF(t *testing.T) {
	uncompressed(t)

	inv := models.Invoice{
		InvoiceNumber:   "INV-0001",
		Status:          models.InvoiceStatusSent,
		LineItems:       []models.LineItem{{Description: "Labor", Quantity: 2, UnitPrice: 50, Amount: 100}},
		Subtotal:        100,
		DiscountPercent: ptr(10.0),
		DiscountAmount:  ptr(10.0),
		TaxRate:         20,
		TaxAmount:       18,
		Total:           108,
		IssueDate:       "2024-03-01",
		DueDate:         "2024-03-31",
	}

	var buf bytes.Buffer
	require.NoError(t, RenderInvoicePDF(&buf, inv, models.Client{Name: "Acme"}, settings))

	out := buf.String()
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, out, "INV-0001")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "$108.00")
	assert.Contains(t, out, "Discount \\(10%\\)")
	assert.Contains(t, out, "Net 30")
}

func TestRenderQuotePDF(t *testing.T) {
	uncompressed(t)

	q := models.Quote{
		QuoteNumber: "QTE-0007",
		Status:      models.QuoteStatusDraft,
		LineItems:   []models.LineItem{{Description: "Tiles", Quantity: 1.5, UnitPrice: 10, Amount: 15}},
		Subtotal:    15,
		Total:       15,
		ValidUntil:  "2024-04-01",
	}

	var buf bytes.Buffer
	require.NoError(t, RenderQuotePDF(&buf, q, models.Client{Name: "Globex"}, settings))

	out := buf.String()
	assert.Contains(t, out, "QUOTE")
	assert.Contains(t, out, "QTE-0007")
	assert.Contains(t, out, "Valid until: 2024-04-01")
	assert.Contains(t, out, "1.5")
	assert.NotContains(t, out, "Discount")
}

func TestExportWorkbook(t *testing.T) {
	jobID := "j1"
	snap := models.Snapshot{
		Clients: []models.Client{{ID: "c1", Name: "Acme"}},
		Jobs: []models.Job{{
			ID: "j1", ClientID: "c1", Title: "Fix sink", Status: models.JobStatusInProgress,
			LaborHours: 5, LaborRate: 20, MaterialsCost: 50, Expenses: []models.Expense{{Amount: 25}},
		}},
		Invoices: []models.Invoice{{InvoiceNumber: "INV-0001", ClientID: "c1", JobID: &jobID, Status: models.InvoiceStatusPaid, Total: 200}},
		Quotes:   []models.Quote{{QuoteNumber: "QTE-0001", ClientID: "c1", Status: models.QuoteStatusSent, Total: 50}},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportWorkbook(&buf, snap, settings))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetClients, SheetJobs, SheetInvoices, SheetQuotes}, f.GetSheetList())

	rows, err := f.GetRows(SheetClients)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme", rows[1][1])
	assert.Equal(t, "1", rows[1][7])

	v, err := f.GetCellValue(SheetJobs, "J2")
	require.NoError(t, err)
	assert.Equal(t, "175", v)
	v, err = f.GetCellValue(SheetJobs, "L2")
	require.NoError(t, err)
	assert.Equal(t, "25", v)

	v, err = f.GetCellValue(SheetInvoices, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Acme", v)
	v, err = f.GetCellValue(SheetInvoices, "I1")
	require.NoError(t, err)
	assert.Equal(t, "Total (USD)", v)

	v, err = f.GetCellValue(SheetQuotes, "A2")
	require.NoError(t, err)
	assert.Equal(t, "QTE-0001", v)
}
