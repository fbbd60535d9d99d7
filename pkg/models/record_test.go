package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullRecord() Record {
	return Record{
		URL:            "https://example.com",
		Status:         StatusSuccess,
		ResponseTimeMs: 120,
		Title:          "Example",
		Description:    "A site",
		Emails:         []string{"a@b.com"},
		PhoneNumbers:   []string{"555-123-4567"},
		SocialLinks:    []string{"https://twitter.com/example"},
		Website:        "https://example.com",
		Content:        "body text",
		Domain:         "example.com",
		Location:       "NYC",
		Contact:        "dm for info",
	}
}

func TestNewFieldSetNormalizesAliases(t *testing.T) {
	fs := NewFieldSet("email", "phone", "title")

	assert.True(t, fs.Has(FieldEmails))
	assert.True(t, fs.Has(FieldPhoneNumbers))
	assert.True(t, fs.Has(FieldTitle))
	assert.False(t, fs.Has(FieldContent))
}

func TestNewFieldSetIgnoresUnrecognized(t *testing.T) {
	fs := NewFieldSet("emails", "bogus", "alsonotreal")

	assert.Len(t, fs, 1)
	assert.True(t, fs.Has(FieldEmails))
}

func TestFilterKeepsOnlySelectedFields(t *testing.T) {
	r := fullRecord()
	r.Filter(NewFieldSet("emails", "title"))

	assert.Equal(t, "Example", r.Title)
	assert.Equal(t, []string{"a@b.com"}, r.Emails)

	assert.Empty(t, r.Description)
	assert.Nil(t, r.PhoneNumbers)
	assert.Nil(t, r.SocialLinks)
	assert.Empty(t, r.Website)
	assert.Empty(t, r.Content)
	assert.Empty(t, r.Domain)
	assert.Empty(t, r.Location)
	assert.Empty(t, r.Contact)
}

func TestFilterAlwaysKeepsIdentityAndStatus(t *testing.T) {
	r := Record{
		URL:            "https://example.com",
		Status:         StatusError,
		ErrorMessage:   "connection refused",
		ResponseTimeMs: 42,
	}
	r.Filter(NewFieldSet("title"))

	assert.Equal(t, "https://example.com", r.URL)
	assert.Equal(t, StatusError, r.Status)
	assert.Equal(t, "connection refused", r.ErrorMessage)
	assert.Equal(t, int64(42), r.ResponseTimeMs)
}

func TestFilterEmptySelectionKeepsEverything(t *testing.T) {
	r := fullRecord()
	r.Filter(NewFieldSet())

	assert.Equal(t, fullRecord(), r)
}

func TestDefaultWebFieldsCoverWebRecord(t *testing.T) {
	fs := DefaultWebFields()

	for _, field := range []string{
		FieldTitle, FieldDescription, FieldEmails, FieldPhoneNumbers,
		FieldSocialLinks, FieldContent, FieldDomain,
	} {
		assert.True(t, fs.Has(field), "missing %s", field)
	}
	assert.False(t, fs.Has(FieldBio))

	r := fullRecord()
	r.Filter(fs)
	assert.Equal(t, fullRecord().Emails, r.Emails)
	assert.Equal(t, fullRecord().Content, r.Content)
	assert.Equal(t, fullRecord().Domain, r.Domain)
}

func TestDefaultProfileFieldsCoverProfileRecord(t *testing.T) {
	fs := DefaultProfileFields()

	for _, field := range []string{
		FieldBio, FieldContact, FieldEmails, FieldPhoneNumbers,
		FieldSocialLinks, FieldWebsite, FieldLocation,
	} {
		assert.True(t, fs.Has(field), "missing %s", field)
	}
	assert.False(t, fs.Has(FieldTitle))
	assert.False(t, fs.Has(FieldContent))
}

func TestIdentity(t *testing.T) {
	page := Record{URL: "https://example.com"}
	profile := Record{Username: "jane"}

	assert.Equal(t, "https://example.com", page.Identity())
	assert.Equal(t, "jane", profile.Identity())
}

func TestHasContactInfo(t *testing.T) {
	assert.True(t, (&Record{Emails: []string{"a@b.com"}}).HasContactInfo())
	assert.True(t, (&Record{PhoneNumbers: []string{"555-123-4567"}}).HasContactInfo())
	assert.True(t, (&Record{Contact: "dm me"}).HasContactInfo())
	assert.False(t, (&Record{Bio: "no contact info"}).HasContactInfo())
}

func TestBatchTally(t *testing.T) {
	b := BatchResult{
		Records: []Record{
			{Status: StatusSuccess},
			{Status: StatusError},
			{Status: StatusSuccess},
		},
	}
	b.Tally()

	assert.Equal(t, 2, b.Successful)
	assert.Equal(t, 1, b.Failed)
}
