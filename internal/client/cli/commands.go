package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobkeeper/internal/client/repositories/records"
)

func (a *App) commands() []command {
	return []command{
		{name: "clients", usage: "clients", run: a.listClients},
		{name: "addclient", usage: "addclient", run: a.addClient},
		{name: "showclient", usage: "showclient <client>", run: a.showClient},
		{name: "delclient", usage: "delclient <client>", run: a.deleteClient},
		{name: "notes", usage: "notes <client>", run: a.listNotes},
		{name: "addnote", usage: "addnote <client>", run: a.addNote},

		{name: "jobs", usage: "jobs [client]", run: a.listJobs},
		{name: "addjob", usage: "addjob <client>", run: a.addJob},
		{name: "showjob", usage: "showjob <job>", run: a.showJob},
		{name: "deljob", usage: "deljob <job>", run: a.deleteJob},
		{name: "addexpense", usage: "addexpense <job>", run: a.addExpense},
		{name: "attach", usage: "attach <job> <file>", run: a.attach},
		{name: "fetch", usage: "fetch <job> <attachment> <file>", run: a.fetchAttachment},
		{name: "detach", usage: "detach <job> <attachment>", run: a.detach},
		{name: "setstatus", usage: "setstatus <job> not_started|in_progress|completed", run: a.setJobStatus},

		{name: "invoices", usage: "invoices [client]", run: a.listInvoices},
		{name: "addinvoice", usage: "addinvoice <client> [job]", run: a.addInvoice},
		{name: "invoicestatus", usage: "invoicestatus <invoice> sent|paid|overdue", run: a.setInvoiceStatus},
		{name: "payinvoice", usage: "payinvoice <invoice> [YYYY-MM-DD]", run: a.payInvoice},
		{name: "quotes", usage: "quotes [client]", run: a.listQuotes},
		{name: "addquote", usage: "addquote <client> [job]", run: a.addQuote},
		{name: "quotestatus", usage: "quotestatus <quote> sent|accepted|rejected", run: a.setQuoteStatus},
		{name: "convertquote", usage: "convertquote <quote>", run: a.convertQuote},
		{name: "pdf", usage: "pdf invoice|quote <ref> <file.pdf>", run: a.exportPDF},
		{name: "export", usage: "export <file.xlsx>", run: a.exportWorkbook},
		{name: "dashboard", usage: "dashboard", run: a.dashboard},

		{name: "settings", usage: "settings [countries | country <CODE> | business name|email|phone|address|terms <value>]", run: a.settingsCmd},
		{name: "setpin", usage: "setpin", run: a.setPIN},
		{name: "clearall", usage: "clearall", run: a.clearAll},

		{name: "register", usage: "register", run: a.register},
		{name: "login", usage: "login", run: a.login},
		{name: "jobnotes", usage: "jobnotes <job>", run: a.listJobNotes},
		{name: "addjobnote", usage: "addjobnote <job>", run: a.addJobNote},
		{name: "deljobnote", usage: "deljobnote <job> <note-id>", run: a.deleteJobNote},
	}
}

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// resolve finds the record whose id equals ref or starts with it. Ambiguous
// prefixes are rejected.
func resolve[T records.Record](kind string, items []T, ref string) (T, error) {
	var (
		zero  T
		found []T
	)
	for _, it := range items {
		if it.GetID() == ref {
			return it, nil
		}
		if ref != "" && strings.HasPrefix(it.GetID(), ref) {
			found = append(found, it)
		}
	}
	switch len(found) {
	case 0:
		return zero, fmt.Errorf("%s %q not found", kind, ref)
	case 1:
		return found[0], nil
	default:
		return zero, fmt.Errorf("%s %q is ambiguous (%d matches)", kind, ref, len(found))
	}
}

func (a *App) clientName(id string) string {
	if c, ok := a.data.GetClientByID(id); ok {
		return c.Name
	}
	return "(deleted client)"
}

func (a *App) dashboard(ctx context.Context, _ []string) error {
	d := a.data.Dashboard()
	a.printf("Clients:          %d\n", d.Clients)
	a.printf("Active jobs:      %d\n", d.ActiveJobs)
	a.printf("Open quotes:      %d\n", d.OpenQuotes)
	a.printf("Total revenue:    %s\n", a.money(ctx, d.TotalRevenue))
	a.printf("Pending revenue:  %s\n", a.money(ctx, d.PendingRevenue))
	return nil
}
