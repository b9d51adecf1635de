package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, destination *PaymentDestination) error
	// FindOwned returns the destination only when it belongs to contactID,
	// nil otherwise.
	FindOwned(ctx context.Context, db *gorm.DB, contactID, destinationID snowflake.ID) (*PaymentDestination, error)
	// Delete removes the destination only when it belongs to contactID and
	// reports how many rows went away.
	Delete(ctx context.Context, db *gorm.DB, contactID, destinationID snowflake.ID) (int64, error)
	ListByContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) ([]PaymentDestination, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]PaymentDestination, error)
	CountSplitRefs(ctx context.Context, db *gorm.DB, destinationID snowflake.ID) (int64, error)
}
