package history

import "github.com/ckd-predict/portal-service/internal/pagination"

// Entry is one stored assessment with the display fallbacks already
// applied.
type Entry struct {
	ID           string         `json:"id,omitempty"`
	Type         string         `json:"type"`
	Timestamp    string         `json:"timestamp,omitempty"`
	Prediction   map[string]any `json:"prediction,omitempty"`
	ClinicalData map[string]any `json:"clinical_data,omitempty"`
}

// Page is the paginated history response. An empty history is a valid
// page with count 0.
type Page struct {
	History    []Entry         `json:"history"`
	Count      int             `json:"count"`
	Pagination pagination.Meta `json:"pagination"`
}
