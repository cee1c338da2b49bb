package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xvander/hostpulse/internal/scanner"
)

// csvHeader is the fixed column set of the results table. Consumers
// key on these names; the order is part of the format.
var csvHeader = []string{
	"domain",
	"attempted_url",
	"resolved_ips",
	"status_code",
	"server_header",
	"content_type",
	"title",
	"response_time_ms",
	"final_url",
	"cert_subject",
	"error",
}

// WriteCSV writes the results table for the alive subset. Dead targets
// are omitted entirely; absent fields are emitted empty.
func WriteCSV(path string, alive []scanner.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range alive {
		if err := w.Write(csvRow(rec)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvRow(rec scanner.Record) []string {
	status := ""
	elapsed := ""
	if rec.Probe.StatusCode != 0 {
		status = strconv.Itoa(rec.Probe.StatusCode)
		elapsed = strconv.FormatInt(rec.Probe.Duration.Milliseconds(), 10)
	}
	return []string{
		rec.Domain,
		rec.Probe.AttemptedURL,
		strings.Join(rec.Resolved, ";"),
		status,
		rec.Probe.ServerHeader,
		rec.Probe.ContentType,
		rec.Probe.Title,
		elapsed,
		rec.Probe.FinalURL,
		rec.Probe.CertSubject,
		rec.Err,
	}
}
