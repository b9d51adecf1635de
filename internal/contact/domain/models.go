package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Contact struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	FirstName  string            `gorm:"column:first_name" json:"firstName,omitempty"`
	LastName   string            `gorm:"column:last_name" json:"lastName,omitempty"`
	ScreenName string            `gorm:"column:screen_name" json:"screenName,omitempty"`
	Email      string            `gorm:"column:email" json:"email,omitempty"`
	Pubkey     string            `gorm:"column:pubkey" json:"pubkey,omitempty"`
	Metadata   datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt  time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time         `gorm:"not null" json:"updatedAt"`
}

func (Contact) TableName() string {
	return "contacts"
}

// Display is the subset of contact fields other features embed when they
// join through a payment destination.
type Display struct {
	ID         snowflake.ID `gorm:"column:id" json:"id"`
	FirstName  string       `gorm:"column:first_name" json:"firstName,omitempty"`
	LastName   string       `gorm:"column:last_name" json:"lastName,omitempty"`
	ScreenName string       `gorm:"column:screen_name" json:"screenName,omitempty"`
}

func (c Contact) Display() Display {
	return Display{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		ScreenName: c.ScreenName,
	}
}

// DisplayName resolves a human-readable name. The model does not require
// any name field, so this can fall back to "Unnamed".
func (d Display) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
	if full != "" {
		return full
	}
	if screen := strings.TrimSpace(d.ScreenName); screen != "" {
		return screen
	}
	return "Unnamed"
}
