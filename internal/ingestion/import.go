// Package ingestion handles CSV import of prospect targets and CSV export of
// approved outreach messages.
package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/jonathan/outreach-assistant/internal/db"
)

// ErrNoRecords is returned when the CSV contains no importable rows at all
var ErrNoRecords = errors.New("no records found in CSV")

// maxReportedRows caps how many rejected rows the aggregate error spells out
const maxReportedRows = 10

// RowError describes one rejected CSV row. Row is the 1-based row number in
// the original file, counting the header as row 1.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) String() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

// ImportError aggregates all rejected rows of an import. When any row is
// rejected the whole import fails and nothing is inserted.
type ImportError struct {
	Rows []RowError
}

func (e *ImportError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d row(s) could not be imported: ", len(e.Rows))
	shown := e.Rows
	if len(shown) > maxReportedRows {
		shown = shown[:maxReportedRows]
	}
	parts := make([]string, len(shown))
	for i, r := range shown {
		parts[i] = r.String()
	}
	sb.WriteString(strings.Join(parts, "; "))
	if remaining := len(e.Rows) - len(shown); remaining > 0 {
		fmt.Fprintf(&sb, " (and %d more)", remaining)
	}
	return sb.String()
}

// Header synonyms per field, all matched case-insensitively after trimming
var (
	nameColumns    = []string{"name", "full name", "fullname"}
	urlColumns     = []string{"linkedinurl", "linkedin url", "linkedin", "url", "profile url", "profile"}
	roleColumns    = []string{"role", "title", "position"}
	companyColumns = []string{"company", "organization", "employer"}
)

// columnIndex resolves the first header cell matching any of the synonyms
func columnIndex(header []string, synonyms []string) int {
	for i, cell := range header {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for _, syn := range synonyms {
			if normalized == syn {
				return i
			}
		}
	}
	return -1
}

// cellAt returns the trimmed cell value at idx, tolerating short records
func cellAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// IsLinkedInURL reports whether raw is a syntactically valid absolute URL
// pointing at a LinkedIn profile.
func IsLinkedInURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	return strings.Contains(raw, "linkedin.com/")
}

// ParseTargets reads header-driven CSV text and applies the per-row admission
// policy:
//   - valid rows become NOT_VISITED inserts
//   - rows with a name and a URL that fails validation become BROKEN inserts,
//     preserving visibility of bad data instead of dropping it
//   - rows missing name or URL entirely are rejected with a row reference
//
// Every row is evaluated before the pass/fail decision; if any row was
// rejected the whole import fails with an *ImportError and nothing should be
// inserted. An input with zero importable rows fails with ErrNoRecords.
func ParseTargets(r io.Reader) ([]db.TargetInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may be ragged; validation handles it
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	header := records[0]
	nameIdx := columnIndex(header, nameColumns)
	urlIdx := columnIndex(header, urlColumns)
	roleIdx := columnIndex(header, roleColumns)
	companyIdx := columnIndex(header, companyColumns)

	if nameIdx < 0 || urlIdx < 0 {
		missing := []string{}
		if nameIdx < 0 {
			missing = append(missing, "name")
		}
		if urlIdx < 0 {
			missing = append(missing, "linkedinUrl")
		}
		return nil, fmt.Errorf("CSV header is missing required column(s): %s", strings.Join(missing, ", "))
	}

	var inputs []db.TargetInput
	var rowErrors []RowError

	for i, record := range records[1:] {
		rowNum := i + 2 // header is row 1

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}

		name := cellAt(record, nameIdx)
		rawURL := cellAt(record, urlIdx)
		role := cellAt(record, roleIdx)
		company := cellAt(record, companyIdx)

		var reasons []string
		if name == "" {
			reasons = append(reasons, "name is required")
		}
		if rawURL == "" {
			reasons = append(reasons, "linkedinUrl is required")
		}
		if len(reasons) > 0 {
			rowErrors = append(rowErrors, RowError{Row: rowNum, Reason: strings.Join(reasons, ", ")})
			continue
		}

		in := db.TargetInput{
			Name:        name,
			LinkedInURL: rawURL,
			Status:      db.StatusNotVisited,
		}
		if role != "" {
			in.Role = &role
		}
		if company != "" {
			in.Company = &company
		}
		if !IsLinkedInURL(rawURL) {
			// Name and URL are both present but the URL fails validation:
			// admit the row as BROKEN so the bad data stays visible.
			in.Status = db.StatusBroken
		}
		inputs = append(inputs, in)
	}

	if len(rowErrors) > 0 {
		return nil, &ImportError{Rows: rowErrors}
	}
	if len(inputs) == 0 {
		return nil, ErrNoRecords
	}
	return inputs, nil
}
