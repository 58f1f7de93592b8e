package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jonathan/outreach-assistant/internal/db"
)

// exportHeader is the fixed column set of the approved-message export file
var exportHeader = []string{"name", "role", "company", "linkedinUrl", "message"}

// WriteApprovedCSV writes one row per approved message. The file is meant for
// manual human use; nothing in the system ever acts on it.
func WriteApprovedCSV(w io.Writer, messages []db.ApprovedMessage) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, m := range messages {
		record := []string{
			m.TargetName,
			stringValue(m.TargetRole),
			stringValue(m.TargetCompany),
			m.TargetURL,
			m.Content,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
