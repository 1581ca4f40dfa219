package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/AliEhsanian/YouTube-Downloader/internal/history"
)

const historyTimeLayout = "2006-01-02 15:04"

func historyAction(c *cli.Context, e *env) error {
	store, err := e.history()
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("history is disabled in the configuration")
	}

	switch {
	case c.Bool(flagClear):
		if err := store.Clear(); err != nil {
			return err
		}
		e.say("History cleared")
		return nil
	case c.IsSet(flagDelete):
		id := c.String(flagDelete)
		if _, err := store.Get(id); err != nil {
			return fmt.Errorf("record %s: %w", id, err)
		}
		if err := store.Delete(id); err != nil {
			return err
		}
		e.say("Deleted record %s", id)
		return nil
	case c.IsSet(flagShow):
		rec, err := store.Get(c.String(flagShow))
		if err != nil {
			return fmt.Errorf("record %s: %w", c.String(flagShow), err)
		}
		printRecord(e, rec)
		return nil
	}

	records, err := store.List(c.Int(flagLimit))
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(e.out, "No downloads recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(e.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFINISHED\tOUTCOME\tQUALITY\tTITLE\tURL")
	for _, rec := range records {
		title := rec.Title
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s/%s\t%s\t%s\n",
			rec.ID, rec.FinishedAt.Local().Format(historyTimeLayout), rec.Outcome, rec.Quality, rec.Format, title, rec.URL)
		if rec.Error != "" {
			fmt.Fprintf(w, "\t\t\t\t  error: %s\t\n", rec.Error)
		}
	}
	return w.Flush()
}

func printRecord(e *env, rec *history.Record) {
	fmt.Fprintf(e.out, "ID:          %s\n", rec.ID)
	fmt.Fprintf(e.out, "URL:         %s\n", rec.URL)
	if rec.Title != "" {
		fmt.Fprintf(e.out, "Title:       %s\n", rec.Title)
	}
	fmt.Fprintf(e.out, "Quality:     %s/%s\n", rec.Quality, rec.Format)
	fmt.Fprintf(e.out, "Playlist:    %t\n", rec.Playlist)
	fmt.Fprintf(e.out, "Outcome:     %s\n", rec.Outcome)
	if rec.Error != "" {
		fmt.Fprintf(e.out, "Error:       %s\n", rec.Error)
	}
	fmt.Fprintf(e.out, "Started:     %s\n", rec.StartedAt.Local().Format(historyTimeLayout))
	fmt.Fprintf(e.out, "Finished:    %s\n", rec.FinishedAt.Local().Format(historyTimeLayout))
	fmt.Fprintf(e.out, "Directory:   %s\n", rec.OutputDir)
	for _, f := range rec.Files {
		fmt.Fprintf(e.out, "File:        %s\n", f)
	}
}
