package history

import (
	"context"

	"github.com/ckd-predict/portal-service/internal/pagination"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// Fetcher is the slice of the prediction API this service needs.
type Fetcher interface {
	FetchHistory(ctx context.Context, patientID string) ([]upstream.HistoryEntry, error)
}

type Service struct {
	api Fetcher
}

func NewService(api Fetcher) *Service {
	return &Service{api: api}
}

// List fetches the patient's stored assessments once and paginates the
// returned slice. No retry on failure; the error surfaces to the
// caller.
func (s *Service) List(ctx context.Context, patientID string, params pagination.Params) (*Page, error) {
	params.Validate()

	entries, err := s.api.FetchHistory(ctx, patientID)
	if err != nil {
		return nil, err
	}

	total := len(entries)
	start, end := params.Bounds(total)

	page := make([]Entry, 0, end-start)
	for _, e := range entries[start:end] {
		page = append(page, Entry{
			ID:           e.ID,
			Type:         e.DisplayType(),
			Timestamp:    e.DisplayTimestamp(),
			Prediction:   e.Prediction,
			ClinicalData: e.ClinicalData,
		})
	}

	return &Page{
		History:    page,
		Count:      total,
		Pagination: params.CalculateMeta(total),
	}, nil
}
