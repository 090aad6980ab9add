package clinical

import "context"

// ServiceInterface defines the contract for clinical assessment logic
type ServiceInterface interface {
	Assess(ctx context.Context, patientID string, obs Observation) (*Assessment, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
