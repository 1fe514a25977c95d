package store

import (
	"context"

	"github.com/pr-poehali-dev/wedding-invitation-site-58/internal/rsvp"
)

// ResponseStore keeps RSVP responses. Records are append-only: there is no
// update or delete.
type ResponseStore interface {
	// CreateResponse assigns the next id and the creation time and stores r.
	CreateResponse(ctx context.Context, r rsvp.Response) (rsvp.Response, error)
	// ListResponses returns every response, newest first.
	ListResponses(ctx context.Context) ([]rsvp.Response, error)
	Close() error
}
