package ingestion

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-assistant/internal/db"
)

func ptr(s string) *string { return &s }

// TestWriteApprovedCSV tests the export file shape
func TestWriteApprovedCSV(t *testing.T) {
	messages := []db.ApprovedMessage{
		{
			Message:       db.Message{ID: 1, TargetID: 10, Content: "Hi Jane, quick question about Acme"},
			TargetName:    "Jane Smith",
			TargetURL:     "https://linkedin.com/in/janesmith",
			TargetRole:    ptr("CTO"),
			TargetCompany: ptr("Acme"),
		},
		{
			Message:    db.Message{ID: 2, TargetID: 11, Content: "Hello Bob,\nsaw your post"},
			TargetName: "Bob Jones",
			TargetURL:  "https://linkedin.com/in/bobjones",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteApprovedCSV(&buf, messages))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"name", "role", "company", "linkedinUrl", "message"}, records[0])
	assert.Equal(t, []string{"Jane Smith", "CTO", "Acme", "https://linkedin.com/in/janesmith", "Hi Jane, quick question about Acme"}, records[1])

	// Nil role/company come out as empty cells; multi-line content survives quoting
	assert.Equal(t, "", records[2][1])
	assert.Equal(t, "", records[2][2])
	assert.Equal(t, "Hello Bob,\nsaw your post", records[2][4])
}

// TestWriteApprovedCSV_EmptySet tests that an empty selection still yields a header
func TestWriteApprovedCSV_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteApprovedCSV(&buf, nil))
	assert.Equal(t, "name,role,company,linkedinUrl,message\n", buf.String())
}
