package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	prismdomain "github.com/prismpay/prism/internal/prism/domain"
	"gorm.io/gorm"
)

type Repository interface {
	CountPrismsForContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) (int64, error)
	ListPrismsForContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) ([]prismdomain.Summary, error)
	CountMembers(ctx context.Context, db *gorm.DB, prismID snowflake.ID) (int64, error)
	// FindPrimaryContact returns the owning contact of the top split,
	// highest percentage first, lowest split id breaking ties.
	FindPrimaryContact(ctx context.Context, db *gorm.DB, prismID snowflake.ID) (*contactdomain.Display, error)
}
