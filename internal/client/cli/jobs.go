package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
	"github.com/dmitrijs2005/jobkeeper/internal/filex"
)

const attachmentsDir = "attachments"

// remoteURIScheme marks attachments stored in the backend object store.
const remoteURIScheme = "jobkeeper://"

func (a *App) listJobs(_ context.Context, args []string) error {
	jobs := a.data.Jobs()
	if len(args) > 0 {
		c, err := resolve("client", a.data.Clients(), args[0])
		if err != nil {
			return err
		}
		jobs = a.data.GetJobsForClient(c.ID)
	}
	if len(jobs) == 0 {
		a.printf("No jobs.\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCLIENT\tSTATUS\tSTART\tDUE")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", shortID(j.ID), j.Title, a.clientName(j.ClientID), j.Status, j.StartDate, j.DueDate)
	}
	return tw.Flush()
}

func (a *App) addJob(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "addjob <client>"); err != nil {
		return err
	}
	c, err := resolve("client", a.data.Clients(), args[0])
	if err != nil {
		return err
	}

	in := models.NewJob{ClientID: c.ID}
	if in.Title, err = a.ask("Title"); err != nil {
		return err
	}
	if in.Description, err = a.ask("Description (optional)"); err != nil {
		return err
	}
	if in.LaborHours, err = GetFloat(a.reader, "Labor hours", a.out, 0); err != nil {
		return err
	}
	if in.LaborRate, err = GetFloat(a.reader, "Hourly rate", a.out, 0); err != nil {
		return err
	}
	if in.MaterialsCost, err = GetFloat(a.reader, "Materials cost", a.out, 0); err != nil {
		return err
	}
	if in.StartDate, err = GetDate(a.reader, "Start date", a.out, a.today()); err != nil {
		return err
	}
	if in.DueDate, err = GetDate(a.reader, "Due date", a.out, ""); err != nil {
		return err
	}

	j, err := a.data.AddJob(ctx, in)
	if err != nil {
		return err
	}
	a.printf("Job %q created (%s) for %s\n", j.Title, shortID(j.ID), c.Name)
	return nil
}

func (a *App) showJob(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "showjob <job>"); err != nil {
		return err
	}
	j, err := resolve("job", a.data.Jobs(), args[0])
	if err != nil {
		return err
	}

	a.printf("%s (%s)\n", j.Title, j.ID)
	a.printf("  Client:  %s\n", a.clientName(j.ClientID))
	a.printf("  Status:  %s\n", j.Status)
	if j.Description != "" {
		a.printf("  About:   %s\n", j.Description)
	}
	if j.StartDate != "" || j.DueDate != "" {
		a.printf("  Dates:   %s .. %s\n", j.StartDate, j.DueDate)
	}

	if len(j.Expenses) > 0 {
		a.printf("Expenses:\n")
		for _, e := range j.Expenses {
			a.printf("  %s  %-30s %s\n", e.Date, e.Description, a.money(ctx, e.Amount))
		}
	}
	if len(j.Attachments) > 0 {
		a.printf("Attachments:\n")
		for _, at := range j.Attachments {
			a.printf("  %s  [%s] %s  %s\n", shortID(at.ID), at.Type, at.Name, at.URI)
		}
	}

	f, err := a.data.GetJobFinancials(j.ID)
	if err != nil {
		return err
	}
	a.printf("Financials:\n")
	a.printf("  Labor:      %s (%g h x %s)\n", a.money(ctx, f.LaborCost), j.LaborHours, a.money(ctx, j.LaborRate))
	a.printf("  Materials:  %s\n", a.money(ctx, f.MaterialsCost))
	a.printf("  Expenses:   %s\n", a.money(ctx, f.ExpensesTotal))
	a.printf("  Total cost: %s\n", a.money(ctx, f.TotalCost))
	a.printf("  Paid:       %s\n", a.money(ctx, f.PaidRevenue))
	a.printf("  %-11s %s\n", f.ProfitLabel+":", a.money(ctx, f.Profit))

	for _, inv := range a.data.GetInvoicesForJob(j.ID) {
		a.printf("  invoice %s %s %s\n", inv.InvoiceNumber, inv.Status, a.money(ctx, inv.Total))
	}
	for _, q := range a.data.GetQuotesForJob(j.ID) {
		a.printf("  quote   %s %s %s\n", q.QuoteNumber, q.Status, a.money(ctx, q.Total))
	}
	return nil
}

func (a *App) deleteJob(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "deljob <job>"); err != nil {
		return err
	}
	j, err := resolve("job", a.data.Jobs(), args[0])
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete job %q?", j.Title), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.data.DeleteJob(ctx, j.ID); err != nil {
		return err
	}
	a.printf("Job %q deleted.\n", j.Title)
	return nil
}

func (a *App) addExpense(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "addexpense <job>"); err != nil {
		return err
	}
	j, err := resolve("job", a.data.Jobs(), args[0])
	if err != nil {
		return err
	}

	var in models.NewExpense
	if in.Description, err = a.ask("Description"); err != nil {
		return err
	}
	if in.Amount, err = GetFloat(a.reader, "Amount", a.out, 0); err != nil {
		return err
	}
	if in.Date, err = GetDate(a.reader, "Date", a.out, a.today()); err != nil {
		return err
	}

	if _, err := a.data.AddExpense(ctx, j.ID, in); err != nil {
		return err
	}
	a.printf("Expense added to %q.\n", j.Title)
	return nil
}

func (a *App) setJobStatus(ctx context.Context, args []string) error {
	const usage = "setstatus <job> not_started|in_progress|completed"
	if err := needArgs(args, 2, usage); err != nil {
		return err
	}
	j, err := resolve("job", a.data.Jobs(), args[0])
	if err != nil {
		return err
	}
	to := models.JobStatus(args[1])
	if !to.Valid() {
		return errUsage(usage)
	}
	if _, err := a.data.SetJobStatus(ctx, j.ID, to); err != nil {
		return err
	}
	a.printf("Job %q is now %s.\n", j.Title, to)
	return nil
}

// attach uploads the file to the backend when online and logged in;
// otherwise it keeps a copy under the data directory.
func (a *App) attach(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "attach <job> <file>"); err != nil {
		return err
	}
	j, err := resolve("job", a.data.Jobs(), args[0])
	if err != nil {
		return err
	}

	path := strings.Join(args[1:], " ")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	name := filepath.Base(path)
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	kind := models.AttachmentDocument
	if strings.HasPrefix(contentType, "image/") {
		kind = models.AttachmentImage
	}

	var uri string
	if a.online() && a.api.LoggedIn() {
		key, err := a.api.UploadAttachment(ctx, j.ID, name, contentType, data)
		if err != nil {
			return err
		}
		uri = remoteURIScheme + key
	} else {
		dir, err := filex.EnsureSubdDir(a.config.DataDir, attachmentsDir)
		if err != nil {
			return err
		}
		dst := filepath.Join(dir, j.ID+"-"+name)
		if err := filex.WriteFileAtomic(dst, data, 0o600); err != nil {
			return err
		}
		uri = "file://" + dst
	}

	size := int64(len(data))
	if _, err := a.data.AddAttachment(ctx, j.ID, models.NewAttachment{URI: uri, Name: name, Type: kind, Size: &size}); err != nil {
		return err
	}
	a.printf("Attached %s to %q.\n", name, j.Title)
	return nil
}

// fetchAttachment copies an attachment to dst. Remote attachments need the
// backend; local ones are read from the data directory.
func (a *App) fetchAttachment(ctx context.Context, args []string) error {
	if err := needArgs(args, 3, "fetch <job> <attachment> <file>"); err != nil {
		return err
	}
	j, err := resolve("job", a.data.Jobs(), args[0])
	if err != nil {
		return err
	}
	at, err := resolve("attachment", j.Attachments, args[1])
	if err != nil {
		return err
	}

	var data []byte
	switch {
	case strings.HasPrefix(at.URI, remoteURIScheme):
		if err := a.requireBackend(); err != nil {
			return err
		}
		if data, err = a.api.DownloadAttachment(ctx, strings.TrimPrefix(at.URI, remoteURIScheme)); err != nil {
			return err
		}
	case strings.HasPrefix(at.URI, "file://"):
		if data, err = os.ReadFile(strings.TrimPrefix(at.URI, "file://")); err != nil {
			return fmt.Errorf("read %s: %w", at.Name, err)
		}
	default:
		return fmt.Errorf("unsupported attachment uri %q", at.URI)
	}

	dst := strings.Join(args[2:], " ")
	if err := filex.WriteFileAtomic(dst, data, 0o600); err != nil {
		return err
	}
	a.printf("Saved %s to %s.\n", at.Name, dst)
	return nil
}

func (a *App) detach(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "detach <job> <attachment>"); err != nil {
		return err
	}
	j, err := resolve("job", a.data.Jobs(), args[0])
	if err != nil {
		return err
	}
	at, err := resolve("attachment", j.Attachments, args[1])
	if err != nil {
		return err
	}
	if _, err := a.data.RemoveAttachment(ctx, j.ID, at.ID); err != nil {
		return err
	}
	if path, ok := strings.CutPrefix(at.URI, "file://"); ok {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			a.log.Warn(ctx, "attachment file not removed", "path", path, "error", err)
		}
	}
	a.printf("Removed %s from %q.\n", at.Name, j.Title)
	return nil
}
