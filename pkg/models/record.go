// Package models holds the value types produced by the scrape paths.
package models

// Record status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Record is one unit of extracted data: a scraped page or an Instagram
// profile. Exactly one of success-with-fields or error-with-message holds;
// ResponseTimeMs is always populated.
type Record struct {
	URL      string `json:"url,omitempty"`
	Username string `json:"username,omitempty"`

	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`

	ResponseTimeMs int64 `json:"responseTimeMs"`

	Title        string   `json:"title,omitempty"`
	FullName     string   `json:"fullName,omitempty"`
	Description  string   `json:"description,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Emails       []string `json:"emails,omitempty"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty"`
	SocialLinks  []string `json:"socialLinks,omitempty"`
	Website      string   `json:"website,omitempty"`
	Content      string   `json:"content,omitempty"`
	Domain       string   `json:"domain,omitempty"`
	Location     string   `json:"location,omitempty"`
	Contact      string   `json:"contact,omitempty"`
	ProfileURL   string   `json:"profileUrl,omitempty"`
}

// Identity returns the record's identity key: the URL for pages, the
// username for profiles.
func (r *Record) Identity() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Username
}

// IsSuccess reports whether the record holds extracted fields.
func (r *Record) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// HasContactInfo reports whether the record carries any contact signal:
// a non-empty email set, phone set, or free-text contact cue.
func (r *Record) HasContactInfo() bool {
	return len(r.Emails) > 0 || len(r.PhoneNumbers) > 0 || r.Contact != ""
}

// Filter clears every optional field not present in the selection.
// An empty selection keeps the full default set. Identity, status,
// error message and response time are always kept.
func (r *Record) Filter(fields FieldSet) {
	if fields.IsEmpty() {
		return
	}
	if !fields.Has(FieldTitle) {
		r.Title = ""
	}
	if !fields.Has(FieldBio) {
		r.Bio = ""
		r.FullName = ""
	}
	if !fields.Has(FieldDescription) {
		r.Description = ""
	}
	if !fields.Has(FieldContact) {
		r.Contact = ""
	}
	if !fields.Has(FieldEmails) {
		r.Emails = nil
	}
	if !fields.Has(FieldPhoneNumbers) {
		r.PhoneNumbers = nil
	}
	if !fields.Has(FieldSocialLinks) {
		r.SocialLinks = nil
	}
	if !fields.Has(FieldWebsite) {
		r.Website = ""
	}
	if !fields.Has(FieldContent) {
		r.Content = ""
	}
	if !fields.Has(FieldDomain) {
		r.Domain = ""
	}
	if !fields.Has(FieldLocation) {
		r.Location = ""
	}
}
