package history

import (
	"context"

	"github.com/ckd-predict/portal-service/internal/pagination"
)

// ServiceInterface defines the contract for history retrieval
type ServiceInterface interface {
	List(ctx context.Context, patientID string, params pagination.Params) (*Page, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
