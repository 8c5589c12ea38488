package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/quicknotes/internal/client/api"
)

var (
	errNoList    = errors.New("no list loaded, run 'list' first")
	errInvalidID = errors.New("note id must be a positive number")
)

// List fetches all notes (filtered by term on the server) and shows the
// first page.
func (a *App) List(ctx context.Context, term string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	notes, err := a.client.ListNotes(ctx, a.token(), term)
	if err != nil {
		return a.check(err)
	}

	a.notes = notes
	a.search = term
	a.page = 0
	a.render()
	return nil
}

func (a *App) Next(ctx context.Context) error {
	return a.turnPage(1)
}

func (a *App) Prev(ctx context.Context) error {
	return a.turnPage(-1)
}

func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	note, err := a.client.CreateNote(ctx, a.token(), title, content)
	if err != nil {
		return a.check(err)
	}

	fmt.Fprintf(a.out, "Note #%d created.\n", note.ID)
	return a.List(ctx, a.search)
}

// Edit replaces a note. Empty answers keep the current title or content when
// the note is in the last fetched list.
func (a *App) Edit(ctx context.Context, rawID string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	current, known := a.findNote(id)
	titlePrompt, contentPrompt := "New title", "New content"
	if known {
		titlePrompt += fmt.Sprintf(" [%s]", current.Title)
		contentPrompt += " (empty keeps the current content)"
	}

	title, err := getSimpleText(a.reader, titlePrompt, a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, contentPrompt, a.out)
	if err != nil {
		return err
	}
	if known {
		if title == "" {
			title = current.Title
		}
		if content == "" {
			content = current.Content
		}
	}

	if err := a.client.UpdateNote(ctx, a.token(), id, title, content); err != nil {
		return a.check(err)
	}

	fmt.Fprintln(a.out, "Note updated.")
	return a.List(ctx, a.search)
}

func (a *App) Delete(ctx context.Context, rawID string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete note #%d?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.client.DeleteNote(ctx, a.token(), id); err != nil {
		return a.check(err)
	}

	fmt.Fprintln(a.out, "Note deleted.")
	return a.List(ctx, a.search)
}

func (a *App) turnPage(delta int) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if a.notes == nil {
		return errNoList
	}

	page := a.page + delta
	if page < 0 || page >= a.totalPages() {
		if delta > 0 {
			fmt.Fprintln(a.out, "Already on the last page.")
		} else {
			fmt.Fprintln(a.out, "Already on the first page.")
		}
		return nil
	}
	a.page = page
	a.render()
	return nil
}

func (a *App) totalPages() int {
	size := a.config.PageSize
	return max(1, (len(a.notes)+size-1)/size)
}

func (a *App) render() {
	if len(a.notes) == 0 {
		if a.search != "" {
			fmt.Fprintf(a.out, "No notes match %q.\n", a.search)
		} else {
			fmt.Fprintln(a.out, "No notes yet. Use 'add' to create one.")
		}
		return
	}

	size := a.config.PageSize
	start := a.page * size
	end := min(start+size, len(a.notes))

	header := fmt.Sprintf("Notes: page %d of %d, %d total", a.page+1, a.totalPages(), len(a.notes))
	if a.search != "" {
		header += fmt.Sprintf(", matching %q", a.search)
	}
	fmt.Fprintln(a.out, header)

	for _, n := range a.notes[start:end] {
		fmt.Fprintf(a.out, "  #%d  %s  (updated %s)\n", n.ID, n.Title, n.UpdatedAt.Local().Format("2006-01-02 15:04"))
		for _, line := range strings.Split(n.Content, "\n") {
			fmt.Fprintf(a.out, "       %s\n", line)
		}
	}

	var hints []string
	if a.page > 0 {
		hints = append(hints, "'prev'")
	}
	if a.page+1 < a.totalPages() {
		hints = append(hints, "'next'")
	}
	if len(hints) > 0 {
		fmt.Fprintf(a.out, "More: %s\n", strings.Join(hints, ", "))
	}
}

func (a *App) findNote(id int64) (api.Note, bool) {
	for _, n := range a.notes {
		if n.ID == id {
			return n, true
		}
	}
	return api.Note{}, false
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}
