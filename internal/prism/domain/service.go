package domain

import (
	"context"
	"errors"
)

// SplitInput is one requested allocation line. Percentage is a fraction
// in (0, 1]; the HTTP layer converts 0-100 input before it gets here.
type SplitInput struct {
	DestinationID string  `json:"destinationId"`
	Percentage    float64 `json:"percentage"`
	Description   string  `json:"description"`
}

type CreatePrismRequest struct {
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Splits      []SplitInput `json:"splits"`
}

type ReplacePrismRequest struct {
	PrismID     string
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	Active      *bool        `json:"active"`
	Splits      []SplitInput `json:"splits"`
}

type Service interface {
	Create(ctx context.Context, req CreatePrismRequest) (*Prism, error)
	// Replace swaps the prism's whole split set atomically. The stored
	// set is never left half-replaced.
	Replace(ctx context.Context, req ReplacePrismRequest) (*Prism, error)
	Delete(ctx context.Context, prismID string) error
	List(ctx context.Context) ([]Prism, error)
	GetByID(ctx context.Context, prismID string) (*Prism, error)
}

var (
	ErrInvalidID          = errors.New("invalid_prism_id")
	ErrMissingFields      = errors.New("missing_required_fields")
	ErrInvalidPercentage  = errors.New("invalid_split_percentage")
	ErrPercentageSum      = errors.New("percentage_sum_mismatch")
	ErrUnknownDestination = errors.New("unknown_split_destination")
	ErrSlugTaken          = errors.New("prism_slug_taken")
	ErrNotFound           = errors.New("prism_not_found")
)
