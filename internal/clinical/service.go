package clinical

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ckd-predict/portal-service/internal/catalog"
	"github.com/ckd-predict/portal-service/internal/messaging"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// Predictor is the slice of the prediction API this service needs.
type Predictor interface {
	PredictTabular(ctx context.Context, patientID string, clinical any) (*upstream.TabularResult, error)
}

type Service struct {
	api       Predictor
	publisher messaging.PublisherInterface
	catalog   catalog.Catalog
}

func NewService(api Predictor, publisher messaging.PublisherInterface, cat catalog.Catalog) *Service {
	return &Service{
		api:       api,
		publisher: publisher,
		catalog:   cat,
	}
}

// Assess normalizes the observation, runs it through the random-forest
// model, and maps the answer to a display-ready record. One attempt;
// upstream failures surface as errors.
func (s *Service) Assess(ctx context.Context, patientID string, obs Observation) (*Assessment, error) {
	normalized := Normalize(obs, s.catalog)

	result, err := s.api.PredictTabular(ctx, patientID, normalized)
	if err != nil {
		return nil, err
	}

	assessment := buildAssessment(result)
	s.publishCompleted(ctx, patientID, assessment)

	return assessment, nil
}

func buildAssessment(result *upstream.TabularResult) *Assessment {
	risk := "Low Risk of CKD Detected"
	if result.Status == "Positive" {
		risk = "High Risk of CKD Detected"
	}

	return &Assessment{
		Risk:       risk,
		Summary:    fmt.Sprintf("Confidence: %.1f%% • Stage %d", result.Confidence, result.Stage),
		Status:     result.Status,
		Confidence: result.Confidence,
		Stage:      result.Stage,
		Message:    result.Message,
	}
}

func (s *Service) publishCompleted(ctx context.Context, patientID string, assessment *Assessment) {
	if s.publisher == nil {
		return
	}

	event := messaging.AssessmentCompletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventClinicalCompleted),
		Data: messaging.AssessmentCompletedData{
			PatientID:   patientID,
			Kind:        "clinical",
			Result:      assessment.Risk,
			Confidence:  assessment.Confidence,
			CompletedAt: time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventClinicalCompleted, event); err != nil {
		log.Printf("Failed to publish clinical assessment event: %v", err)
	}
}
