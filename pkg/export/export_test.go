package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactscraper/pkg/models"
)

func webRecords() []models.Record {
	return []models.Record{
		{
			URL:            "https://example.com/a",
			Status:         models.StatusSuccess,
			ResponseTimeMs: 120,
			Title:          "Example A",
			Emails:         []string{"a@example.com", "b@example.com"},
			PhoneNumbers:   []string{"555-123-4567"},
			SocialLinks:    []string{"https://twitter.com/example"},
			Domain:         "example.com",
		},
		{
			URL:            "https://example.com/b",
			Status:         models.StatusError,
			ErrorMessage:   "Connection error: refused",
			ResponseTimeMs: 5,
		},
	}
}

func parseCSV(t *testing.T, data string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSVLeadingColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, webRecords(), nil))

	rows := parseCSV(t, buf.String())
	require.GreaterOrEqual(t, len(rows), 3)

	header := rows[0]
	assert.Equal(t, "URL", header[0])
	assert.Equal(t, "Status", header[1])
	assert.Equal(t, "Response Time (ms)", header[2])

	assert.Equal(t, "https://example.com/a", rows[1][0])
	assert.Equal(t, "success", rows[1][1])
	assert.Equal(t, "120", rows[1][2])
	assert.Equal(t, "error", rows[2][1])
}

func TestWriteCSVJoinsMultiValueFields(t *testing.T) {
	var buf bytes.Buffer
	fields := models.NewFieldSet("emails", "phone")
	require.NoError(t, WriteCSV(&buf, webRecords(), fields))

	rows := parseCSV(t, buf.String())
	require.Len(t, rows[0], 5)
	assert.Equal(t, []string{"URL", "Status", "Response Time (ms)", "Emails", "Phone Numbers"}, rows[0])
	assert.Equal(t, "a@example.com; b@example.com", rows[1][3])
	assert.Equal(t, "555-123-4567", rows[1][4])
}

func TestWriteCSVHonorsFieldSelection(t *testing.T) {
	var buf bytes.Buffer
	fields := models.NewFieldSet("title")
	require.NoError(t, WriteCSV(&buf, webRecords(), fields))

	rows := parseCSV(t, buf.String())
	assert.Equal(t, []string{"URL", "Status", "Response Time (ms)", "Title"}, rows[0])
	assert.NotContains(t, rows[0], "Emails")
}

func TestWriteCSVUsernameIdentity(t *testing.T) {
	records := []models.Record{
		{Username: "alice", Status: models.StatusSuccess, Bio: "painter", ResponseTimeMs: 40},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records, models.NewFieldSet("bio")))

	rows := parseCSV(t, buf.String())
	assert.Equal(t, "Username", rows[0][0])
	assert.Equal(t, "alice", rows[1][0])
}

func TestWriteCSVEmptyRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, nil))

	rows := parseCSV(t, buf.String())
	require.Len(t, rows, 1) // header only
}

func TestWriteJSONRoundTrip(t *testing.T) {
	result := &models.BatchResult{
		SearchTopic: "bakeries",
		Total:       2,
		Successful:  1,
		Failed:      1,
		Records:     webRecords(),
		Status:      models.BatchCompleted,
		Message:     "Scraping completed successfully",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	var decoded models.BatchResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, result.SearchTopic, decoded.SearchTopic)
	assert.Equal(t, result.Total, decoded.Total)
	assert.Len(t, decoded.Records, 2)
}

func TestJSONOmitsUnselectedFields(t *testing.T) {
	records := webRecords()
	for i := range records {
		records[i].Filter(models.NewFieldSet("emails"))
	}

	data, err := json.Marshal(records[0])
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "emails")
	assert.NotContains(t, m, "title")
	assert.NotContains(t, m, "phoneNumbers")
}
