package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// demoContacts give a fresh install something to click around in.
var demoContacts = []contactdomain.Contact{
	{
		FirstName:  "Satoshi",
		LastName:   "Nakamoto",
		ScreenName: "satoshi",
		Email:      "satoshi@bitcoin.org",
		Metadata: datatypes.JSONMap{
			"telegram":  "@satoshi",
			"twitter":   "@satoshi",
			"bio":       "Bitcoin creator",
			"interests": []string{"cryptography", "distributed systems", "economics"},
		},
	},
	{
		FirstName:  "Alice",
		LastName:   "Lightning",
		ScreenName: "alicezap",
		Pubkey:     "7177772c4187bee24bd427b496fab4f3b134dc1d772d5e96566e063e825ae524",
		Metadata: datatypes.JSONMap{
			"telegram":               "@alicezap",
			"twitter":                "@alicezap",
			"bio":                    "Lightning Network enthusiast",
			"interests":              []string{"lightning", "bitcoin", "programming"},
			"preferredPaymentMethod": "lightning",
		},
	},
	{
		FirstName:  "Bob",
		LastName:   "Builder",
		ScreenName: "bitcoinbob",
		Email:      "bob@builder.btc",
		Pubkey:     "1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef",
		Metadata: datatypes.JSONMap{
			"github": "bitcoinbob",
			"skills": []string{"rust", "c++", "bitcoin core"},
			"bio":    "Bitcoin Core contributor",
		},
	},
	{
		FirstName:  "Carol",
		LastName:   "Crypto",
		ScreenName: "carolcrypto",
		Metadata: datatypes.JSONMap{
			"matrix":    "@carol:matrix.org",
			"interests": []string{"privacy", "encryption", "self-sovereignty"},
			"languages": []string{"English", "Python", "Rust"},
			"bio":       "Privacy advocate and developer",
		},
	},
	{
		FirstName:  "Dave",
		LastName:   "Decentralized",
		ScreenName: "daveweb5",
		Email:      "dave@web5.dev",
		Metadata: datatypes.JSONMap{
			"discord":  "dave#1234",
			"projects": []string{"decentralized identity", "web5", "nostr"},
			"bio":      "Building the decentralized web",
			"skills":   []string{"typescript", "rust", "distributed systems"},
		},
	},
}

// EnsureDemoContacts inserts the sample contacts once, on an empty install.
// It never touches a database that already has contacts.
func EnsureDemoContacts(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Raw(`SELECT COUNT(*) FROM contacts`).Scan(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		for _, contact := range demoContacts {
			contact.ID = node.Generate()
			contact.CreatedAt = now
			contact.UpdatedAt = now
			err := tx.Exec(
				`INSERT INTO contacts (id, first_name, last_name, screen_name, email, pubkey, metadata, created_at, updated_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				contact.ID,
				contact.FirstName,
				contact.LastName,
				contact.ScreenName,
				contact.Email,
				contact.Pubkey,
				contact.Metadata,
				contact.CreatedAt,
				contact.UpdatedAt,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
