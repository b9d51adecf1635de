package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
)

// Destination types form a closed tag set. Behavior never branches on the
// type inside the core, it only gates what the registry will store.
const (
	TypeOffer            = "offer"
	TypeLNURL            = "lnurl"
	TypeLightningAddress = "lightning-address"
)

func ValidType(value string) bool {
	switch value {
	case TypeOffer, TypeLNURL, TypeLightningAddress:
		return true
	default:
		return false
	}
}

type PaymentDestination struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ContactID snowflake.ID `gorm:"column:contact_id;not null;index" json:"contactId"`
	Value     string       `gorm:"not null" json:"value"`
	Type      string       `gorm:"not null" json:"type"`
	CreatedAt time.Time    `gorm:"not null" json:"createdAt"`

	// Contact is populated on joined reads only.
	Contact *contactdomain.Display `gorm:"-" json:"contact,omitempty"`
}

func (PaymentDestination) TableName() string {
	return "payment_destinations"
}
