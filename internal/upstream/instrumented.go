package upstream

import (
	"context"
	"io"
	"time"
)

// MetricsRecorder receives timing and outcome data for upstream calls.
type MetricsRecorder interface {
	RecordUpstreamCall(ctx context.Context, operation string, durationMs float64, success bool)
	RecordAssessment(ctx context.Context, kind, outcome string)
}

// InstrumentedClient wraps Client and records per-operation latency
// plus assessment outcomes. A nil recorder disables recording.
type InstrumentedClient struct {
	inner   *Client
	metrics MetricsRecorder
}

func NewInstrumentedClient(inner *Client, metrics MetricsRecorder) *InstrumentedClient {
	return &InstrumentedClient{inner: inner, metrics: metrics}
}

func (c *InstrumentedClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	start := time.Now()
	result, err := c.inner.Login(ctx, email, password)
	c.recordCall(ctx, "login", start, err)
	return result, err
}

func (c *InstrumentedClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	start := time.Now()
	result, err := c.inner.Register(ctx, req)
	c.recordCall(ctx, "register", start, err)
	return result, err
}

func (c *InstrumentedClient) PredictTabular(ctx context.Context, patientID string, clinical any) (*TabularResult, error) {
	start := time.Now()
	result, err := c.inner.PredictTabular(ctx, patientID, clinical)
	c.recordCall(ctx, "predict_tabular", start, err)
	c.recordAssessment(ctx, "clinical", err)
	return result, err
}

func (c *InstrumentedClient) PredictCT(ctx context.Context, patientID, filename string, file io.Reader) (*CTResult, error) {
	start := time.Now()
	result, err := c.inner.PredictCT(ctx, patientID, filename, file)
	c.recordCall(ctx, "predict_ct", start, err)
	c.recordAssessment(ctx, "imaging", err)
	return result, err
}

func (c *InstrumentedClient) ForecastProgression(ctx context.Context, patientID string) (*ForecastResult, error) {
	start := time.Now()
	result, err := c.inner.ForecastProgression(ctx, patientID)
	c.recordCall(ctx, "forecast", start, err)
	c.recordAssessment(ctx, "forecast", err)
	return result, err
}

func (c *InstrumentedClient) FetchHistory(ctx context.Context, patientID string) ([]HistoryEntry, error) {
	start := time.Now()
	entries, err := c.inner.FetchHistory(ctx, patientID)
	c.recordCall(ctx, "fetch_history", start, err)
	return entries, err
}

func (c *InstrumentedClient) recordCall(ctx context.Context, operation string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordUpstreamCall(ctx, operation, float64(time.Since(start).Milliseconds()), err == nil)
}

func (c *InstrumentedClient) recordAssessment(ctx context.Context, kind string, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.RecordAssessment(ctx, kind, outcome)
}
