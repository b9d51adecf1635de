package domain

import (
	"context"
	"errors"
)

type AddDestinationRequest struct {
	ContactID string
	Value     string `json:"value"`
	Type      string `json:"type"`
}

type RemoveDestinationRequest struct {
	ContactID     string
	DestinationID string
}

type Service interface {
	Add(ctx context.Context, req AddDestinationRequest) (*PaymentDestination, error)
	Remove(ctx context.Context, req RemoveDestinationRequest) error
	ListForContact(ctx context.Context, contactID string) ([]PaymentDestination, error)
	ListAll(ctx context.Context) ([]PaymentDestination, error)
}

var (
	ErrInvalidID     = errors.New("invalid_destination_id")
	ErrMissingFields = errors.New("destination_missing_fields")
	ErrInvalidType   = errors.New("invalid_destination_type")
	ErrExists        = errors.New("destination_exists")
	ErrNotFound      = errors.New("destination_not_found")
	ErrReferenced    = errors.New("destination_referenced")
)
