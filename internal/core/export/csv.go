package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV serializes rows with the fixed header as the first record.
// The caller decides what to do with an empty page; given zero rows this
// still emits the header so the file is well formed.
func WriteCSV(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write(Headers()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		if err := w.Write(row.Values()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
