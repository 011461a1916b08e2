package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

func (a *App) listClients(_ context.Context, _ []string) error {
	clients := a.data.Clients()
	if len(clients) == 0 {
		a.printf("No clients yet.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOMPANY\tEMAIL\tPHONE\tJOBS")
	for _, c := range clients {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", shortID(c.ID), c.Name, c.Company, c.Email, c.Phone, a.data.GetJobCountForClient(c.ID))
	}
	return tw.Flush()
}

func (a *App) addClient(ctx context.Context, _ []string) error {
	var in models.NewClient

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &in.Name},
		{"Company (optional)", &in.Company},
		{"Email (optional)", &in.Email},
		{"Phone (optional)", &in.Phone},
		{"Address (optional)", &in.Address},
		{"Zip code (optional)", &in.ZipCode},
	}
	for _, f := range fields {
		v, err := a.ask(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	c, err := a.data.AddClient(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Client %s created (%s)\n", c.Name, shortID(c.ID))
	return nil
}

func (a *App) showClient(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "showclient <client>"); err != nil {
		return err
	}
	c, err := resolve("client", a.data.Clients(), args[0])
	if err != nil {
		return err
	}

	a.printf("%s (%s)\n", c.Name, c.ID)
	for _, row := range [][2]string{
		{"Company", c.Company}, {"Email", c.Email}, {"Phone", c.Phone},
		{"Address", c.Address}, {"Zip", c.ZipCode}, {"Notes", c.Notes},
	} {
		if row[1] != "" {
			a.printf("  %-8s %s\n", row[0]+":", row[1])
		}
	}

	a.printf("Jobs:\n")
	for _, j := range a.data.GetJobsForClient(c.ID) {
		a.printf("  %s  %-30s %s\n", shortID(j.ID), j.Title, j.Status)
	}
	a.printf("Invoices:\n")
	for _, inv := range a.data.GetInvoicesForClient(c.ID) {
		a.printf("  %s  %-10s %-8s %s\n", shortID(inv.ID), inv.InvoiceNumber, inv.Status, a.money(ctx, inv.Total))
	}
	a.printf("Quotes:\n")
	for _, q := range a.data.GetQuotesForClient(c.ID) {
		a.printf("  %s  %-10s %-8s %s\n", shortID(q.ID), q.QuoteNumber, q.Status, a.money(ctx, q.Total))
	}
	a.printf("Notes:\n")
	for _, n := range a.data.GetNotesForClient(c.ID) {
		a.printf("  [%s] %s %s\n", n.Type, n.CreatedAt, n.Content)
	}
	return nil
}

func (a *App) deleteClient(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "delclient <client>"); err != nil {
		return err
	}
	c, err := resolve("client", a.data.Clients(), args[0])
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s with all jobs, invoices, quotes and notes?", c.Name), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Cancelled.\n")
		return nil
	}

	if err := a.data.DeleteClient(ctx, c.ID); err != nil {
		return err
	}
	a.printf("Client %s deleted.\n", c.Name)
	return nil
}

func (a *App) listNotes(_ context.Context, args []string) error {
	if err := needArgs(args, 1, "notes <client>"); err != nil {
		return err
	}
	c, err := resolve("client", a.data.Clients(), args[0])
	if err != nil {
		return err
	}

	notes := a.data.GetNotesForClient(c.ID)
	if len(notes) == 0 {
		a.printf("No notes for %s.\n", c.Name)
		return nil
	}
	for _, n := range notes {
		a.printf("%s [%s] %s\n  %s\n", shortID(n.ID), n.Type, n.CreatedAt, n.Content)
	}
	return nil
}

func (a *App) addNote(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "addnote <client>"); err != nil {
		return err
	}
	c, err := resolve("client", a.data.Clients(), args[0])
	if err != nil {
		return err
	}

	typ, err := a.ask("Type: note, call, email or meeting [note]")
	if err != nil {
		return err
	}
	if typ == "" {
		typ = string(models.NoteTypeNote)
	}
	if !models.NoteType(typ).Valid() {
		return fmt.Errorf("unknown note type %q", typ)
	}

	text, err := GetMultiline(a.reader, "Note text", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("note text is empty")
	}

	n, err := a.data.AddClientNote(ctx, models.NewClientNote{ClientID: c.ID, Content: text, Type: models.NoteType(typ)})
	if err != nil {
		return err
	}
	a.printf("Note %s added.\n", shortID(n.ID))
	return nil
}
