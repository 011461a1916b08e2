package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/calc"
	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/client/report"
	"github.com/dmitrijs2005/jobkeeper/internal/filex"
)

const defaultDocumentDays = 30

func (a *App) listInvoices(ctx context.Context, args []string) error {
	invoices := a.data.Invoices()
	if len(args) > 0 {
		c, err := resolve("client", a.data.Clients(), args[0])
		if err != nil {
			return err
		}
		invoices = a.data.GetInvoicesForClient(c.ID)
	}
	if len(invoices) == 0 {
		a.printf("No invoices.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tCLIENT\tSTATUS\tTOTAL\tDUE")
	for _, inv := range invoices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", shortID(inv.ID), inv.InvoiceNumber, a.clientName(inv.ClientID), inv.Status, a.money(ctx, inv.Total), inv.DueDate)
	}
	return tw.Flush()
}

func (a *App) listQuotes(ctx context.Context, args []string) error {
	quotes := a.data.Quotes()
	if len(args) > 0 {
		c, err := resolve("client", a.data.Clients(), args[0])
		if err != nil {
			return err
		}
		quotes = a.data.GetQuotesForClient(c.ID)
	}
	if len(quotes) == 0 {
		a.printf("No quotes.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tCLIENT\tSTATUS\tTOTAL\tVALID UNTIL")
	for _, q := range quotes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", shortID(q.ID), q.QuoteNumber, a.clientName(q.ClientID), q.Status, a.money(ctx, q.Total), q.ValidUntil)
	}
	return tw.Flush()
}

// draft is what addinvoice and addquote collect before saving.
type draft struct {
	clientID        string
	jobID           *string
	items           []models.LineItem
	discountPercent *float64
	taxRate         float64
	totals          calc.Breakdown
	notes           string
	terms           string
	issueDate       string
	endDate         string
}

func (a *App) readDraft(ctx context.Context, args []string, usage, endLabel string) (draft, error) {
	var d draft
	if err := needArgs(args, 1, usage); err != nil {
		return d, err
	}
	c, err := resolve("client", a.data.Clients(), args[0])
	if err != nil {
		return d, err
	}
	d.clientID = c.ID

	if len(args) > 1 {
		j, err := resolve("job", a.data.GetJobsForClient(c.ID), args[1])
		if err != nil {
			return d, err
		}
		d.jobID = &j.ID
	}

	a.printf("Line items (empty description to finish):\n")
	for {
		desc, err := a.ask("Description")
		if err != nil {
			return d, err
		}
		if desc == "" {
			break
		}
		qty, err := GetFloat(a.reader, "Quantity", a.out, 1)
		if err != nil {
			return d, err
		}
		price, err := GetFloat(a.reader, "Unit price", a.out, 0)
		if err != nil {
			return d, err
		}
		d.items = append(d.items, models.LineItem{Description: desc, Quantity: qty, UnitPrice: price})
	}
	if len(d.items) == 0 {
		return d, errors.New("at least one line item is required")
	}
	d.items = calc.RecomputeLineItems(d.items)

	discount, err := GetFloat(a.reader, "Discount %", a.out, 0)
	if err != nil {
		return d, err
	}
	if discount > 0 {
		d.discountPercent = &discount
	}
	if d.taxRate, err = GetFloat(a.reader, "Tax rate %", a.out, 0); err != nil {
		return d, err
	}

	now := a.now()
	d.issueDate = now.Format(time.DateOnly)
	if d.endDate, err = GetDate(a.reader, endLabel, a.out, now.AddDate(0, 0, defaultDocumentDays).Format(time.DateOnly)); err != nil {
		return d, err
	}
	if d.notes, err = a.ask("Notes (optional)"); err != nil {
		return d, err
	}

	d.terms = a.userSettings(ctx).DefaultPaymentTerms
	d.totals = calc.Totals(d.items, d.discountPercent, d.taxRate)

	a.printf("Subtotal %s, discount %s, tax %s, total %s\n",
		a.money(ctx, d.totals.Subtotal), a.money(ctx, d.totals.DiscountAmount),
		a.money(ctx, d.totals.TaxAmount), a.money(ctx, d.totals.Total))
	return d, nil
}

// invoice recomputes the stored totals from the line items at save time.
func (d draft) invoice() models.NewInvoice {
	inv := models.Invoice{LineItems: d.items, DiscountPercent: d.discountPercent, TaxRate: d.taxRate}
	calc.ApplyToInvoice(&inv)
	return models.NewInvoice{
		ClientID:        d.clientID,
		JobID:           d.jobID,
		LineItems:       inv.LineItems,
		Subtotal:        inv.Subtotal,
		DiscountPercent: inv.DiscountPercent,
		DiscountAmount:  inv.DiscountAmount,
		TaxRate:         inv.TaxRate,
		TaxAmount:       inv.TaxAmount,
		Total:           inv.Total,
		Notes:           d.notes,
		PaymentTerms:    d.terms,
		IssueDate:       d.issueDate,
		DueDate:         d.endDate,
	}
}

func (d draft) quote() models.NewQuote {
	q := models.Quote{LineItems: d.items, DiscountPercent: d.discountPercent, TaxRate: d.taxRate}
	calc.ApplyToQuote(&q)
	return models.NewQuote{
		ClientID:        d.clientID,
		JobID:           d.jobID,
		LineItems:       q.LineItems,
		Subtotal:        q.Subtotal,
		DiscountPercent: q.DiscountPercent,
		DiscountAmount:  q.DiscountAmount,
		TaxRate:         q.TaxRate,
		TaxAmount:       q.TaxAmount,
		Total:           q.Total,
		Notes:           d.notes,
		PaymentTerms:    d.terms,
		IssueDate:       d.issueDate,
		ValidUntil:      d.endDate,
	}
}

func (a *App) addInvoice(ctx context.Context, args []string) error {
	d, err := a.readDraft(ctx, args, "addinvoice <client> [job]", "Due date")
	if err != nil {
		return err
	}

	inv, err := a.data.AddInvoice(ctx, d.invoice())
	if err != nil {
		return err
	}
	a.printf("Invoice %s created (%s).\n", inv.InvoiceNumber, shortID(inv.ID))
	return nil
}

func (a *App) addQuote(ctx context.Context, args []string) error {
	d, err := a.readDraft(ctx, args, "addquote <client> [job]", "Valid until")
	if err != nil {
		return err
	}

	q, err := a.data.AddQuote(ctx, d.quote())
	if err != nil {
		return err
	}
	a.printf("Quote %s created (%s).\n", q.QuoteNumber, shortID(q.ID))
	return nil
}

func (a *App) setInvoiceStatus(ctx context.Context, args []string) error {
	const usage = "invoicestatus <invoice> sent|paid|overdue"
	if err := needArgs(args, 2, usage); err != nil {
		return err
	}
	inv, err := resolve("invoice", a.data.Invoices(), args[0])
	if err != nil {
		return err
	}
	to := models.InvoiceStatus(args[1])
	if !to.Valid() {
		return errUsage(usage)
	}
	if _, err := a.data.SetInvoiceStatus(ctx, inv.ID, to); err != nil {
		return err
	}
	a.printf("Invoice %s is now %s.\n", inv.InvoiceNumber, to)
	return nil
}

func (a *App) payInvoice(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "payinvoice <invoice> [YYYY-MM-DD]"); err != nil {
		return err
	}
	inv, err := resolve("invoice", a.data.Invoices(), args[0])
	if err != nil {
		return err
	}
	date := ""
	if len(args) > 1 {
		if _, err := time.Parse(time.DateOnly, args[1]); err != nil {
			return fmt.Errorf("not a date: %q", args[1])
		}
		date = args[1]
	}

	paid, err := a.data.MarkInvoicePaid(ctx, inv.ID, date)
	if err != nil {
		return err
	}
	a.printf("Invoice %s paid on %s.\n", paid.InvoiceNumber, paid.PaidDate)
	return nil
}

func (a *App) setQuoteStatus(ctx context.Context, args []string) error {
	const usage = "quotestatus <quote> sent|accepted|rejected"
	if err := needArgs(args, 2, usage); err != nil {
		return err
	}
	q, err := resolve("quote", a.data.Quotes(), args[0])
	if err != nil {
		return err
	}
	to := models.QuoteStatus(args[1])
	if !to.Valid() {
		return errUsage(usage)
	}
	if _, err := a.data.SetQuoteStatus(ctx, q.ID, to); err != nil {
		return err
	}
	a.printf("Quote %s is now %s.\n", q.QuoteNumber, to)
	return nil
}

func (a *App) convertQuote(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "convertquote <quote>"); err != nil {
		return err
	}
	q, err := resolve("quote", a.data.Quotes(), args[0])
	if err != nil {
		return err
	}
	inv, err := a.data.ConvertQuoteToInvoice(ctx, q.ID)
	if err != nil {
		return err
	}
	a.printf("Quote %s converted to invoice %s (%s).\n", q.QuoteNumber, inv.InvoiceNumber, shortID(inv.ID))
	return nil
}

func (a *App) exportPDF(ctx context.Context, args []string) error {
	const usage = "pdf invoice|quote <ref> <file.pdf>"
	if err := needArgs(args, 3, usage); err != nil {
		return err
	}
	us := a.userSettings(ctx)

	var buf bytes.Buffer
	switch args[0] {
	case "invoice":
		inv, err := resolve("invoice", a.data.Invoices(), args[1])
		if err != nil {
			return err
		}
		c, _ := a.data.GetClientByID(inv.ClientID)
		if err := report.RenderInvoicePDF(&buf, inv, c, us); err != nil {
			return err
		}
	case "quote":
		q, err := resolve("quote", a.data.Quotes(), args[1])
		if err != nil {
			return err
		}
		c, _ := a.data.GetClientByID(q.ClientID)
		if err := report.RenderQuotePDF(&buf, q, c, us); err != nil {
			return err
		}
	default:
		return errUsage(usage)
	}

	return a.writeOutput(args[2], buf.Bytes())
}

func (a *App) exportWorkbook(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "export <file.xlsx>"); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := report.ExportWorkbook(&buf, a.data.Snapshot(), a.userSettings(ctx)); err != nil {
		return err
	}
	return a.writeOutput(args[0], buf.Bytes())
}

func (a *App) writeOutput(path string, data []byte) error {
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := filex.WriteFileAtomic(path, data, 0o644); err != nil {
		return err
	}
	a.printf("Wrote %s (%d bytes).\n", path, len(data))
	return nil
}
