// Package stats aggregates contact-info statistics over a set of records.
package stats

import "contactscraper/pkg/models"

// Summary holds the aggregate counters for one batch of records.
type Summary struct {
	TotalEmails         int     `json:"totalEmails"`
	TotalPhoneNumbers   int     `json:"totalPhoneNumbers"`
	ProfilesWithContact int     `json:"profilesWithContact"`
	ContactRatePercent  float64 `json:"contactRate"`
}

// Summarize counts contact data across the records. Error records
// contribute nothing except to the denominator of the contact rate.
// An empty record set yields a zero rate, not a division error.
func Summarize(records []models.Record) Summary {
	var s Summary
	for i := range records {
		s.TotalEmails += len(records[i].Emails)
		s.TotalPhoneNumbers += len(records[i].PhoneNumbers)
		if records[i].HasContactInfo() {
			s.ProfilesWithContact++
		}
	}
	if len(records) > 0 {
		s.ContactRatePercent = float64(s.ProfilesWithContact) / float64(len(records)) * 100
	}
	return s
}

// Map renders the summary in the shape batch results embed.
func (s Summary) Map() map[string]interface{} {
	return map[string]interface{}{
		"totalEmails":         s.TotalEmails,
		"totalPhoneNumbers":   s.TotalPhoneNumbers,
		"profilesWithContact": s.ProfilesWithContact,
		"contactRate":         s.ContactRatePercent,
	}
}
