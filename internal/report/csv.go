package report

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes the report table, header first.
func (d *Document) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(d.Table()); err != nil {
		return err
	}
	return cw.Error()
}
