package imaging

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/ckd-predict/portal-service/internal/messaging"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// CTPredictor is the slice of the prediction API this service needs.
type CTPredictor interface {
	PredictCT(ctx context.Context, patientID, filename string, file io.Reader) (*upstream.CTResult, error)
}

type Service struct {
	api       CTPredictor
	publisher messaging.PublisherInterface
}

func NewService(api CTPredictor, publisher messaging.PublisherInterface) *Service {
	return &Service{api: api, publisher: publisher}
}

// Analyze forwards the uploaded scan to the CNN model and maps the
// answer to a display-ready record. The file is streamed through
// untouched; no validation happens here beyond upstream's own.
func (s *Service) Analyze(ctx context.Context, patientID, filename string, file io.Reader) (*ScanResult, error) {
	result, err := s.api.PredictCT(ctx, patientID, filename, file)
	if err != nil {
		return nil, err
	}

	scan := &ScanResult{
		Diagnosis:  result.Prediction,
		Confidence: result.Confidence,
		Heatmap:    result.Heatmap,
	}
	s.publishCompleted(ctx, patientID, scan)

	return scan, nil
}

func (s *Service) publishCompleted(ctx context.Context, patientID string, scan *ScanResult) {
	if s.publisher == nil {
		return
	}

	event := messaging.AssessmentCompletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventImagingCompleted),
		Data: messaging.AssessmentCompletedData{
			PatientID:   patientID,
			Kind:        "imaging",
			Result:      scan.Diagnosis,
			Confidence:  scan.Confidence,
			CompletedAt: time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventImagingCompleted, event); err != nil {
		log.Printf("Failed to publish imaging assessment event: %v", err)
	}
}
