package session

import "context"

// Store persists session records. The contract is deliberately small:
// one serialized record per session, last write wins, a missing record
// means "not signed in" rather than an error condition for callers.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	Set(ctx context.Context, rec *Record) error
	Clear(ctx context.Context, id string) error
}
