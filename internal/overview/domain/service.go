package domain

import (
	"context"

	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	prismdomain "github.com/prismpay/prism/internal/prism/domain"
)

// SharedPrismsResult lists the prisms a contact participates in, deduped.
type SharedPrismsResult struct {
	Prisms []prismdomain.Summary `json:"prisms"`
	Count  int                   `json:"count"`
}

// Service answers cross-entity questions the dashboard asks.
type Service interface {
	// PrismCount reports how many distinct prisms route to any of the
	// contact's destinations. Unknown contacts count zero.
	PrismCount(ctx context.Context, contactID string) (int64, error)
	// SharedPrisms lists those prisms, one entry per prism regardless of
	// how many of the contact's destinations appear in it.
	SharedPrisms(ctx context.Context, contactID string) (*SharedPrismsResult, error)
	// MemberCount reports how many distinct contacts receive from the prism.
	MemberCount(ctx context.Context, prismID string) (int64, error)
	// PrimaryAccount returns the contact behind the largest split, or nil
	// when the prism has none.
	PrimaryAccount(ctx context.Context, prismID string) (*contactdomain.Display, error)
}
