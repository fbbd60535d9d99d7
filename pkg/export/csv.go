// Package export renders batch results as CSV or JSON.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"contactscraper/pkg/models"
)

const multiValueSeparator = "; "

// column describes one optional CSV column: its header, the selection
// name that gates it, and how to read it off a record.
type column struct {
	header string
	field  string
	value  func(*models.Record) string
}

var optionalColumns = []column{
	{"Title", models.FieldTitle, func(r *models.Record) string { return r.Title }},
	{"Full Name", models.FieldBio, func(r *models.Record) string { return r.FullName }},
	{"Bio", models.FieldBio, func(r *models.Record) string { return r.Bio }},
	{"Description", models.FieldDescription, func(r *models.Record) string { return r.Description }},
	{"Emails", models.FieldEmails, func(r *models.Record) string { return joinValues(r.Emails) }},
	{"Phone Numbers", models.FieldPhoneNumbers, func(r *models.Record) string { return joinValues(r.PhoneNumbers) }},
	{"Social Links", models.FieldSocialLinks, func(r *models.Record) string { return joinValues(r.SocialLinks) }},
	{"Website", models.FieldWebsite, func(r *models.Record) string { return r.Website }},
	{"Contact", models.FieldContact, func(r *models.Record) string { return r.Contact }},
	{"Location", models.FieldLocation, func(r *models.Record) string { return r.Location }},
	{"Domain", models.FieldDomain, func(r *models.Record) string { return r.Domain }},
	{"Content", models.FieldContent, func(r *models.Record) string { return r.Content }},
	{"Error Message", models.FieldErrorMessage, func(r *models.Record) string { return r.ErrorMessage }},
}

// WriteCSV writes the records as CSV. The identity, status and response
// time columns always lead; optional columns honor the same field
// selection the JSON output uses, with multi-value fields joined by
// "; ". An empty selection emits every column.
func WriteCSV(w io.Writer, records []models.Record, fields models.FieldSet) error {
	cw := csv.NewWriter(w)

	identityHeader := "URL"
	if usesUsernames(records) {
		identityHeader = "Username"
	}

	cols := selectColumns(fields)

	header := []string{identityHeader, "Status", "Response Time (ms)"}
	for _, c := range cols {
		header = append(header, c.header)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range records {
		r := &records[i]
		row := []string{r.Identity(), r.Status, strconv.FormatInt(r.ResponseTimeMs, 10)}
		for _, c := range cols {
			row = append(row, c.value(r))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func selectColumns(fields models.FieldSet) []column {
	if fields.IsEmpty() {
		return optionalColumns
	}
	var cols []column
	for _, c := range optionalColumns {
		if fields.Has(c.field) {
			cols = append(cols, c)
		}
	}
	return cols
}

func usesUsernames(records []models.Record) bool {
	for i := range records {
		if records[i].Username != "" {
			return true
		}
	}
	return false
}

func joinValues(values []string) string {
	return strings.Join(values, multiValueSeparator)
}
