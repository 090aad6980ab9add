package forecast

import (
	"context"
	"log"
	"time"

	"github.com/ckd-predict/portal-service/internal/messaging"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// Forecaster is the slice of the prediction API this service needs.
type Forecaster interface {
	ForecastProgression(ctx context.Context, patientID string) (*upstream.ForecastResult, error)
}

type Service struct {
	api       Forecaster
	publisher messaging.PublisherInterface
}

func NewService(api Forecaster, publisher messaging.PublisherInterface) *Service {
	return &Service{api: api, publisher: publisher}
}

// Predict asks the RNN model for a stage progression forecast built
// from the patient's stored assessment history.
func (s *Service) Predict(ctx context.Context, patientID string) (*Forecast, error) {
	result, err := s.api.ForecastProgression(ctx, patientID)
	if err != nil {
		return nil, err
	}

	forecast := &Forecast{
		PredictedStage:    result.PredictedStage,
		StageLabel:        result.StageLabel,
		Confidence:        result.Confidence,
		DaysToProgression: result.DaysToProgression,
		HistoryUsed:       result.HistoryUsed,
	}
	s.publishCompleted(ctx, patientID, forecast)

	return forecast, nil
}

func (s *Service) publishCompleted(ctx context.Context, patientID string, forecast *Forecast) {
	if s.publisher == nil {
		return
	}

	event := messaging.ForecastCompletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventForecastCompleted),
		Data: messaging.ForecastCompletedData{
			PatientID:      patientID,
			PredictedStage: forecast.PredictedStage,
			Confidence:     forecast.Confidence,
			CompletedAt:    time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventForecastCompleted, event); err != nil {
		log.Printf("Failed to publish forecast event: %v", err)
	}
}
