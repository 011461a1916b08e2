package cli

import (
	"context"
	"errors"
	"fmt"
)

var errOffline = errors.New("backend is offline")

func (a *App) requireBackend() error {
	if !a.online() {
		return errOffline
	}
	if !a.api.LoggedIn() {
		return errors.New("not logged in, run 'login' first")
	}
	return nil
}

// remoteJobID maps a local job reference to its id. Unknown references are
// passed through so notes can be read for jobs created on other devices.
func (a *App) remoteJobID(ref string) string {
	if j, err := resolve("job", a.data.Jobs(), ref); err == nil {
		return j.ID
	}
	return ref
}

func (a *App) listJobNotes(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "jobnotes <job>"); err != nil {
		return err
	}
	if err := a.requireBackend(); err != nil {
		return err
	}

	notes, err := a.api.ListJobNotes(ctx, a.remoteJobID(args[0]))
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		a.printf("No job notes.\n")
		return nil
	}
	for _, n := range notes {
		a.printf("%s  %s\n  %s\n", n.ID, n.CreatedAt.Local().Format("2006-01-02 15:04"), n.NoteText)
	}
	return nil
}

func (a *App) addJobNote(ctx context.Context, args []string) error {
	if err := needArgs(args, 1, "addjobnote <job>"); err != nil {
		return err
	}
	if err := a.requireBackend(); err != nil {
		return err
	}

	text, err := GetMultiline(a.reader, "Note text", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("note text is empty")
	}

	n, err := a.api.AddJobNote(ctx, a.remoteJobID(args[0]), text)
	if err != nil {
		return err
	}
	a.printf("Job note %s added.\n", n.ID)
	return nil
}

func (a *App) deleteJobNote(ctx context.Context, args []string) error {
	if err := needArgs(args, 2, "deljobnote <job> <note-id>"); err != nil {
		return err
	}
	if err := a.requireBackend(); err != nil {
		return err
	}
	if err := a.api.DeleteJobNote(ctx, a.remoteJobID(args[0]), args[1]); err != nil {
		return fmt.Errorf("delete job note: %w", err)
	}
	a.printf("Job note deleted.\n")
	return nil
}
