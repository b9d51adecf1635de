package domain

import (
	"context"
	"errors"
)

type CreateContactRequest struct {
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	ScreenName string         `json:"screenName"`
	Email      string         `json:"email"`
	Pubkey     string         `json:"pubkey"`
	Metadata   map[string]any `json:"metadata"`
}

type UpdateContactRequest struct {
	ID         string
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	ScreenName string         `json:"screenName"`
	Email      string         `json:"email"`
	Pubkey     string         `json:"pubkey"`
	Metadata   map[string]any `json:"metadata"`
}

type Service interface {
	Create(ctx context.Context, req CreateContactRequest) (*Contact, error)
	Update(ctx context.Context, req UpdateContactRequest) (*Contact, error)
	GetByID(ctx context.Context, id string) (*Contact, error)
	List(ctx context.Context) ([]Contact, error)
}

var (
	ErrInvalidID = errors.New("invalid_contact_id")
	ErrNotFound  = errors.New("contact_not_found")
)
