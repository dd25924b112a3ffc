package csv

import (
	"bytes"
	"encoding/csv"

	"github.com/DefiantLabs/cheqd-tax-cli/config"
	"github.com/DefiantLabs/cheqd-tax-cli/csv/parsers"
)

// Create the CSV and write it to byte buffer
func ToCsv(rows []parsers.CsvRow, headers []string) (bytes.Buffer, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	if err := w.Write(headers); err != nil {
		config.Log.Error("Error writing header to csv", err)
		return b, err
	}

	for _, row := range rows {
		csvForRow := row.GetRowForCsv()
		if err := w.Write(csvForRow); err != nil {
			config.Log.Error("Error writing row to csv", err)
			return b, err
		}
	}

	// Write any buffered data to the underlying writer.
	w.Flush()

	if err := w.Error(); err != nil {
		config.Log.Error("Error flushing csv writer", err)
		return b, err
	}

	return b, nil
}
