package core

import (
	"context"
	"io"
	"strconv"
	"strings"
)

const (
	// ExportFilename is the fixed name of the downloadable export.
	ExportFilename = "notes.csv"

	// ExportHeader is the first row of every export.
	ExportHeader = "ID,Content,Fixed?"
)

// Export renders the collection as comma-separated rows in storage order.
//
// Fields are joined without quoting: content containing commas or newlines
// produces rows that cannot be split back reliably.
func (s *Store) Export(ctx context.Context) (string, error) {
	var b strings.Builder
	if err := s.ExportTo(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ExportTo writes the export to w.
func (s *Store) ExportTo(ctx context.Context, w io.Writer) error {
	s.mu.Lock()
	notes := s.load(ctx)
	s.mu.Unlock()

	_, err := io.WriteString(w, formatExport(notes))
	return err
}

func formatExport(notes []Note) string {
	rows := make([]string, 0, len(notes)+1)
	rows = append(rows, ExportHeader)
	for _, n := range notes {
		rows = append(rows, strings.Join([]string{
			strconv.FormatInt(n.ID, 10),
			n.Content,
			strconv.FormatBool(n.Fixed),
		}, ","))
	}
	return strings.Join(rows, "\n")
}
