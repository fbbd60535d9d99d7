package export

import (
	"encoding/json"
	"io"

	"contactscraper/pkg/models"
)

// WriteJSON writes the full batch result as indented JSON. Field
// selection is applied upstream, before the result reaches export.
func WriteJSON(w io.Writer, result *models.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
