package forecast

import "context"

// ServiceInterface defines the contract for progression forecasting
type ServiceInterface interface {
	Predict(ctx context.Context, patientID string) (*Forecast, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
