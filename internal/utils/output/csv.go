package output

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/law-makers/purify/pkg/models"
)

// WriteBatchCSV writes one row per batch result. Returns an error on failure.
func WriteBatchCSV(w io.Writer, results []models.BatchResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"line", "input", "output", "removed", "error"}); err != nil {
		return err
	}

	for _, r := range results {
		var removed, errText string
		if r.Result != nil {
			removed = strings.Join(r.Result.Removed, " ")
		}
		if r.Error != nil {
			errText = r.Error.Error()
		}
		row := []string{strconv.Itoa(r.Line), r.Input, r.Output, removed, errText}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
