// Package report renders invoices and quotes as PDF and exports the
// collections as an XLSX workbook.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/money"
)

// compress is switched off in tests so the page text can be searched.
var compress = true

type document struct {
	title        string
	number       string
	status       string
	dates        [][2]string
	items        []models.LineItem
	subtotal     float64
	discountPct  *float64
	discount     *float64
	taxRate      float64
	taxAmount    float64
	total        float64
	notes        string
	paymentTerms string
}

func RenderInvoicePDF(w io.Writer, inv models.Invoice, client models.Client, us models.UserSettings) error {
	dates := [][2]string{{"Issue date", inv.IssueDate}, {"Due date", inv.DueDate}}
	if inv.PaidDate != "" {
		dates = append(dates, [2]string{"Paid", inv.PaidDate})
	}
	return render(w, document{
		title:        "INVOICE",
		number:       inv.InvoiceNumber,
		status:       string(inv.Status),
		dates:        dates,
		items:        inv.LineItems,
		subtotal:     inv.Subtotal,
		discountPct:  inv.DiscountPercent,
		discount:     inv.DiscountAmount,
		taxRate:      inv.TaxRate,
		taxAmount:    inv.TaxAmount,
		total:        inv.Total,
		notes:        inv.Notes,
		paymentTerms: firstNonEmpty(inv.PaymentTerms, us.DefaultPaymentTerms),
	}, client, us)
}

func RenderQuotePDF(w io.Writer, q models.Quote, client models.Client, us models.UserSettings) error {
	return render(w, document{
		title:        "QUOTE",
		number:       q.QuoteNumber,
		status:       string(q.Status),
		dates:        [][2]string{{"Issue date", q.IssueDate}, {"Valid until", q.ValidUntil}},
		items:        q.LineItems,
		subtotal:     q.Subtotal,
		discountPct:  q.DiscountPercent,
		discount:     q.DiscountAmount,
		taxRate:      q.TaxRate,
		taxAmount:    q.TaxAmount,
		total:        q.Total,
		notes:        q.Notes,
		paymentTerms: firstNonEmpty(q.PaymentTerms, us.DefaultPaymentTerms),
	}, client, us)
}

func render(w io.Writer, d document, client models.Client, us models.UserSettings) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetTitle(d.title+" "+d.number, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	amount := func(v float64) string { return tr(money.Format(v, us.Currency, us.Locale)) }

	pdf.AddPage()

	// header: business on the left, document title on the right
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(110, 8, tr(firstNonEmpty(us.BusinessName, "JobKeeper")), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(80, 8, d.title, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range nonEmpty(us.BusinessAddress, us.BusinessEmail, us.BusinessPhone) {
		pdf.CellFormat(110, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(110, 6, "Bill to", "", 0, "L", false, 0, "")
	pdf.CellFormat(80, 6, d.number, "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	left := nonEmpty(client.Name, client.Company, client.Address, client.ZipCode, client.Email, client.Phone)
	right := make([]string, 0, len(d.dates)+1)
	right = append(right, "Status: "+d.status)
	for _, kv := range d.dates {
		if kv[1] != "" {
			right = append(right, kv[0]+": "+kv[1])
		}
	}
	for i := 0; i < max(len(left), len(right)); i++ {
		pdf.CellFormat(110, 5, tr(at(left, i)), "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 5, tr(at(right, i)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// line items
	widths := []float64{90, 25, 35, 40}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range []string{"Description", "Qty", "Unit price", "Amount"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 7, h, "B", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range d.items {
		pdf.CellFormat(widths[0], 6, tr(it.Description), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, trimFloat(it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, amount(it.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, amount(it.Amount), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// totals
	totalRow := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(150, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, value, "", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", amount(d.subtotal), false)
	if d.discount != nil && *d.discount != 0 {
		label := "Discount"
		if d.discountPct != nil {
			label = fmt.Sprintf("Discount (%s%%)", trimFloat(*d.discountPct))
		}
		totalRow(label, "-"+amount(*d.discount), false)
	}
	totalRow(fmt.Sprintf("Tax (%s%%)", trimFloat(d.taxRate)), amount(d.taxAmount), false)
	totalRow("Total", amount(d.total), true)

	if d.paymentTerms != "" || d.notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 9)
		if d.paymentTerms != "" {
			pdf.MultiCell(190, 5, tr("Payment terms: "+d.paymentTerms), "", "L", false)
		}
		if d.notes != "" {
			pdf.MultiCell(190, 5, tr(d.notes), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render %s: %w", strings.ToLower(d.title), err)
	}
	return nil
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
