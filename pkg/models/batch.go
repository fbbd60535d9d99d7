package models

// Batch status values.
const (
	BatchCompleted = "completed"
	BatchError     = "error"
)

// BatchResult is the outcome of one scrape operation. Record order carries
// no meaning relative to the input.
type BatchResult struct {
	SearchTopic  string `json:"searchTopic,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`

	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`

	FollowersScraped int `json:"followersScraped,omitempty"`
	FollowingScraped int `json:"followingScraped,omitempty"`

	Records []Record `json:"records"`

	Statistics map[string]interface{} `json:"statistics,omitempty"`

	ProcessingTimeMs int64  `json:"processingTimeMs"`
	Status           string `json:"status"`
	Message          string `json:"message"`
}

// Tally recomputes the success and failure counters from the records.
func (b *BatchResult) Tally() {
	b.Successful = 0
	b.Failed = 0
	for i := range b.Records {
		if b.Records[i].IsSuccess() {
			b.Successful++
		} else {
			b.Failed++
		}
	}
}

// FilterRecords applies the field selection to every record.
func (b *BatchResult) FilterRecords(fields FieldSet) {
	for i := range b.Records {
		b.Records[i].Filter(fields)
	}
}
