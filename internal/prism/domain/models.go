package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
)

// SumTolerance is the slack allowed when checking that split percentages
// cover the whole payment. Percentages are fractions, so a valid set sums
// to 1 within this bound.
const SumTolerance = 0.0001

// Prism is a named payment-splitting configuration. Splits is only
// populated by reads that ask for the expanded form.
type Prism struct {
	ID          snowflake.ID `json:"id" gorm:"column:id"`
	Name        string       `json:"name" gorm:"column:name"`
	Slug        string       `json:"slug" gorm:"column:slug"`
	Description string       `json:"description,omitempty" gorm:"column:description"`
	Active      bool         `json:"active" gorm:"column:active"`
	CreatedAt   time.Time    `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" gorm:"column:updated_at"`

	Splits []Split `json:"splits,omitempty" gorm:"-"`
}

func (Prism) TableName() string {
	return "prisms"
}

// Split routes a fraction of a prism's payments to one destination.
type Split struct {
	ID            snowflake.ID `json:"id" gorm:"column:id"`
	PrismID       snowflake.ID `json:"prismId" gorm:"column:prism_id"`
	DestinationID snowflake.ID `json:"destinationId" gorm:"column:destination_id"`
	Percentage    float64      `json:"percentage" gorm:"column:percentage"`
	Description   string       `json:"description,omitempty" gorm:"column:description"`
	CreatedAt     time.Time    `json:"createdAt" gorm:"column:created_at"`

	Destination *SplitDestination `json:"destination,omitempty" gorm:"-"`
}

func (Split) TableName() string {
	return "splits"
}

// SplitDestination carries the destination and owning-contact display
// fields that expanded prism reads join in.
type SplitDestination struct {
	ID      snowflake.ID           `json:"id"`
	Value   string                 `json:"value"`
	Type    string                 `json:"type"`
	Contact *contactdomain.Display `json:"contact,omitempty"`
}

// Summary is the shared-prism projection: enough to render a card.
type Summary struct {
	ID        snowflake.ID `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	Thumbnail *string      `json:"thumbnail"`
}
