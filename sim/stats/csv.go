package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the column layout of the exported entity log.
var csvHeader = []string{"id", "arrived", "queue_joined", "service_start", "completed", "wait", "service", "group"}

// WriteCSV encodes the entity records as CSV, one row per departed entity in
// departure order. The presentation layer loads this as its tabular log.
func WriteCSV(w io.Writer, records []EntityRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.ID),
			formatMinutes(rec.ArrivedAt),
			formatMinutes(rec.QueueJoinedAt),
			formatMinutes(rec.ServiceStartAt),
			formatMinutes(rec.CompletedAt),
			formatMinutes(rec.Wait),
			formatMinutes(rec.ServiceDuration),
			strconv.Itoa(rec.Group),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for entity %d: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
