package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrijs2005/jobkeeper/internal/client/calc"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

const (
	SheetClients  = "Clients"
	SheetJobs     = "Jobs"
	SheetInvoices = "Invoices"
	SheetQuotes   = "Quotes"
)

// ExportWorkbook writes one sheet per collection. Money columns are plain
// numbers; the currency code is recorded in each money header.
func ExportWorkbook(w io.Writer, snap models.Snapshot, us models.UserSettings) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: style: %w", err)
	}

	clientNames := make(map[string]string, len(snap.Clients))
	for _, c := range snap.Clients {
		clientNames[c.ID] = c.Name
	}
	cur := us.Currency

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{
			name:   SheetClients,
			header: []any{"ID", "Name", "Company", "Email", "Phone", "Address", "Zip", "Jobs", "Created"},
			rows: mapRows(snap.Clients, func(c models.Client) []any {
				return []any{c.ID, c.Name, c.Company, c.Email, c.Phone, c.Address, c.ZipCode, calc.JobCountForClient(snap.Jobs, c.ID), c.CreatedAt}
			}),
		},
		{
			name: SheetJobs,
			header: []any{"ID", "Client", "Title", "Status", "Start", "Due",
				"Labor (" + cur + ")", "Materials (" + cur + ")", "Expenses (" + cur + ")", "Total cost (" + cur + ")", "Paid (" + cur + ")", "Profit (" + cur + ")"},
			rows: mapRows(snap.Jobs, func(j models.Job) []any {
				fin := calc.JobFinancials(j, snap.Invoices)
				return []any{j.ID, clientNames[j.ClientID], j.Title, string(j.Status), j.StartDate, j.DueDate,
					fin.LaborCost, fin.MaterialsCost, fin.ExpensesTotal, fin.TotalCost, fin.PaidRevenue, fin.Profit}
			}),
		},
		{
			name:   SheetInvoices,
			header: []any{"Number", "Client", "Status", "Issue", "Due", "Paid", "Subtotal (" + cur + ")", "Tax (" + cur + ")", "Total (" + cur + ")"},
			rows: mapRows(snap.Invoices, func(i models.Invoice) []any {
				return []any{i.InvoiceNumber, clientNames[i.ClientID], string(i.Status), i.IssueDate, i.DueDate, i.PaidDate, i.Subtotal, i.TaxAmount, i.Total}
			}),
		},
		{
			name:   SheetQuotes,
			header: []any{"Number", "Client", "Status", "Issue", "Valid until", "Subtotal (" + cur + ")", "Tax (" + cur + ")", "Total (" + cur + ")"},
			rows: mapRows(snap.Quotes, func(q models.Quote) []any {
				return []any{q.QuoteNumber, clientNames[q.ClientID], string(q.Status), q.IssueDate, q.ValidUntil, q.Subtotal, q.TaxAmount, q.Total}
			}),
		},
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("export: %w", err)
		}

		if err := f.SetSheetRow(sh.name, "A1", &sh.header); err != nil {
			return fmt.Errorf("export %s: %w", sh.name, err)
		}
		last, err := excelize.CoordinatesToCellName(len(sh.header), 1)
		if err != nil {
			return fmt.Errorf("export %s: %w", sh.name, err)
		}
		if err := f.SetCellStyle(sh.name, "A1", last, bold); err != nil {
			return fmt.Errorf("export %s: %w", sh.name, err)
		}

		for r, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return fmt.Errorf("export %s: %w", sh.name, err)
			}
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return fmt.Errorf("export %s: %w", sh.name, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

func mapRows[T any](items []T, fn func(T) []any) [][]any {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, fn(it))
	}
	return rows
}
