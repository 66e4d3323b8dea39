// Package booking holds the cart and order workflow: catalog loading, the
// cart engine, order submission and the service availability gate.
package booking

import (
	"context"
	"receh48/src/models"
	"receh48/src/types"
)

// Store is the persistence collaborator used by the workflow.
type Store interface {
	// QueryActiveMembersWithFees returns active members with their fee for
	// st preloaded, fee group included.
	QueryActiveMembersWithFees(ctx context.Context, st types.ServiceType) ([]models.Member, error)
	// QueryContentByKey returns nil without error when the key is missing.
	QueryContentByKey(ctx context.Context, key string) (*models.SiteContent, error)
	// QueryServiceStatus returns nil without error when no row exists.
	QueryServiceStatus(ctx context.Context, serviceKey string) (*models.ServiceStatus, error)
	// InsertOrder persists order once per (session, idempotency key) and
	// returns the stored record. A replayed key whose stored order differs
	// from order fails with ErrIdempotencyReused.
	InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	InsertReview(ctx context.Context, review *models.Review) error
}

// OrderHook runs after an order has been stored.
type OrderHook func(ctx context.Context, order *models.Order)

type Collaborators struct {
	Store          Store
	Notifier       Notifier
	OnOrderCreated []OrderHook
}

func (c Collaborators) notifier() Notifier {
	if c.Notifier == nil {
		return nopNotifier{}
	}
	return c.Notifier
}
