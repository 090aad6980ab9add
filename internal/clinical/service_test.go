package clinical

import (
	"context"
	"errors"
	"testing"

	"github.com/ckd-predict/portal-service/internal/catalog"
	"github.com/ckd-predict/portal-service/internal/upstream"
)

// mockPredictor implements Predictor for testing
type mockPredictor struct {
	predictFunc func(ctx context.Context, patientID string, clinical any) (*upstream.TabularResult, error)
	calls       int
}

func (m *mockPredictor) PredictTabular(ctx context.Context, patientID string, clinical any) (*upstream.TabularResult, error) {
	m.calls++
	if m.predictFunc != nil {
		return m.predictFunc(ctx, patientID, clinical)
	}
	return nil, errors.New("not implemented")
}

// mockPublisher implements messaging.PublisherInterface for testing
type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, eventData interface{}) error {
	m.published = append(m.published, routingKey)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func TestAssessPositiveResult(t *testing.T) {
	var forwarded NormalizedObservation
	predictor := &mockPredictor{
		predictFunc: func(ctx context.Context, patientID string, clinical any) (*upstream.TabularResult, error) {
			if patientID != "jane@example.com" {
				t.Errorf("Expected patient jane@example.com, got %s", patientID)
			}
			forwarded = clinical.(NormalizedObservation)
			return &upstream.TabularResult{Status: "Positive", Confidence: 87, Stage: 2}, nil
		},
	}
	publisher := &mockPublisher{}
	svc := NewService(predictor, publisher, catalog.Default())

	obs := Observation{
		SerumCreatinine: "2.1",
		GFR:             "40",
		BUN:             "30",
		BloodPressure:   "150/95",
	}
	assessment, err := svc.Assess(context.Background(), "jane@example.com", obs)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	if assessment.Risk != "High Risk of CKD Detected" {
		t.Errorf("Expected high risk headline, got %q", assessment.Risk)
	}
	if assessment.Summary != "Confidence: 87.0% • Stage 2" {
		t.Errorf("Unexpected summary: %q", assessment.Summary)
	}
	if forwarded.BloodPressure != 150 {
		t.Errorf("Expected forwarded blood pressure 150, got %v", forwarded.BloodPressure)
	}
	if forwarded.StressLevel != "medium" {
		t.Errorf("Expected blank stress level to forward medium, got %s", forwarded.StressLevel)
	}
	if len(publisher.published) != 1 || publisher.published[0] != "assessment.clinical.completed" {
		t.Errorf("Expected clinical completed event, got %v", publisher.published)
	}
}

func TestAssessNegativeResult(t *testing.T) {
	predictor := &mockPredictor{
		predictFunc: func(ctx context.Context, patientID string, clinical any) (*upstream.TabularResult, error) {
			return &upstream.TabularResult{Status: "Negative", Confidence: 92.5, Stage: 1}, nil
		},
	}
	svc := NewService(predictor, nil, catalog.Default())

	assessment, err := svc.Assess(context.Background(), "jane@example.com", Observation{})
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if assessment.Risk != "Low Risk of CKD Detected" {
		t.Errorf("Expected low risk headline, got %q", assessment.Risk)
	}
	if assessment.Summary != "Confidence: 92.5% • Stage 1" {
		t.Errorf("Unexpected summary: %q", assessment.Summary)
	}
}

func TestAssessUpstreamFailureSurfaces(t *testing.T) {
	predictor := &mockPredictor{
		predictFunc: func(ctx context.Context, patientID string, clinical any) (*upstream.TabularResult, error) {
			return nil, upstream.ErrUnavailable
		},
	}
	publisher := &mockPublisher{}
	svc := NewService(predictor, publisher, catalog.Default())

	_, err := svc.Assess(context.Background(), "jane@example.com", Observation{})
	if !errors.Is(err, upstream.ErrUnavailable) {
		t.Errorf("Expected ErrUnavailable, got %v", err)
	}
	if predictor.calls != 1 {
		t.Errorf("Expected exactly one upstream attempt, got %d", predictor.calls)
	}
	if len(publisher.published) != 0 {
		t.Errorf("Expected no event on failure, got %v", publisher.published)
	}
}
