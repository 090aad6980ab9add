package imaging

import (
	"context"
	"io"
)

// ServiceInterface defines the contract for CT scan analysis logic
type ServiceInterface interface {
	Analyze(ctx context.Context, patientID, filename string, file io.Reader) (*ScanResult, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
