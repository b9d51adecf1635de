package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, prism *Prism) error
	Update(ctx context.Context, db *gorm.DB, prism *Prism) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, prismID snowflake.ID) (int64, error)
	FindByID(ctx context.Context, db *gorm.DB, prismID snowflake.ID) (*Prism, error)
	List(ctx context.Context, db *gorm.DB) ([]Prism, error)

	InsertSplits(ctx context.Context, db *gorm.DB, splits []Split) error
	DeleteSplits(ctx context.Context, db *gorm.DB, prismID snowflake.ID) error
	// FindSplits returns the prism's splits with destination and owning
	// contact display fields joined in.
	FindSplits(ctx context.Context, db *gorm.DB, prismID snowflake.ID) ([]Split, error)
	// CountDestinations reports how many of the given destination ids
	// actually exist.
	CountDestinations(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (int64, error)
}
