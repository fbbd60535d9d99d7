package models

// Canonical field selection names.
const (
	FieldTitle        = "title"
	FieldBio          = "bio"
	FieldDescription  = "description"
	FieldContact      = "contact"
	FieldEmails       = "emails"
	FieldPhoneNumbers = "phoneNumbers"
	FieldSocialLinks  = "socialLinks"
	FieldWebsite      = "website"
	FieldContent      = "content"
	FieldDomain       = "domain"
	FieldLocation     = "location"
	FieldErrorMessage = "errorMessage"
)

// fieldAliases maps accepted aliases to their canonical names.
var fieldAliases = map[string]string{
	"email": FieldEmails,
	"phone": FieldPhoneNumbers,
}

var recognizedFields = map[string]struct{}{
	FieldTitle:        {},
	FieldBio:          {},
	FieldDescription:  {},
	FieldContact:      {},
	FieldEmails:       {},
	FieldPhoneNumbers: {},
	FieldSocialLinks:  {},
	FieldWebsite:      {},
	FieldContent:      {},
	FieldDomain:       {},
	FieldLocation:     {},
	FieldErrorMessage: {},
}

// FieldSet is a caller-supplied selection of optional output fields.
// The zero value (or an empty set) means the full default set.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from raw values. Aliases are normalized;
// unrecognized values are ignored, not rejected.
func NewFieldSet(values ...string) FieldSet {
	fs := make(FieldSet)
	for _, v := range values {
		if canonical, ok := fieldAliases[v]; ok {
			v = canonical
		}
		if _, ok := recognizedFields[v]; ok {
			fs[v] = struct{}{}
		}
	}
	return fs
}

// Has reports whether the canonical field name is selected.
func (fs FieldSet) Has(field string) bool {
	_, ok := fs[field]
	return ok
}

// IsEmpty reports whether no fields are selected, which means the full
// default set applies.
func (fs FieldSet) IsEmpty() bool {
	return len(fs) == 0
}

// DefaultWebFields is the full selection applied to web records when the
// caller supplies none.
func DefaultWebFields() FieldSet {
	return NewFieldSet(FieldTitle, FieldDescription, FieldEmails, FieldPhoneNumbers,
		FieldSocialLinks, FieldContent, FieldDomain)
}

// DefaultProfileFields is the full selection applied to profile records
// when the caller supplies none.
func DefaultProfileFields() FieldSet {
	return NewFieldSet(FieldBio, FieldContact, FieldEmails, FieldPhoneNumbers,
		FieldSocialLinks, FieldWebsite, FieldLocation)
}
