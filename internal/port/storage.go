package port

import "context"

// ReportStore keeps the rendered HTML report of each simulation.
type ReportStore interface {
	Put(ctx context.Context, key, html string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}
