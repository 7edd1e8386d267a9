package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

func (cli *commandLine) listStudents() error {
	coll := cli.store.LoadAll(context.Background())

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tEMAIL\tNAME\tATTENDANCE")
	for _, rec := range coll {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d (%d%%)\n",
			rec.ID, rec.Email, rec.Name, rec.Attendance.Present, rec.Attendance.Total, rec.Attendance.Percent())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cli.out, "%d student(s)\n", len(coll))
	return nil
}

func (cli *commandLine) export() error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(cli.store.LoadAll(context.Background()))
}
