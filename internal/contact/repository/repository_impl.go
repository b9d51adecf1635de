package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/prismpay/prism/internal/contact/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, contact *domain.Contact) error {
	return db.WithContext(ctx).Exec(
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
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, contact *domain.Contact) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE contacts
		 SET first_name = ?, last_name = ?, screen_name = ?, email = ?, pubkey = ?, metadata = ?, updated_at = ?
		 WHERE id = ?`,
		contact.FirstName,
		contact.LastName,
		contact.ScreenName,
		contact.Email,
		contact.Pubkey,
		contact.Metadata,
		contact.UpdatedAt,
		contact.ID,
	)
	return result.RowsAffected, result.Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Contact, error) {
	var contact domain.Contact
	err := db.WithContext(ctx).Raw(
		`SELECT id, first_name, last_name, screen_name, email, pubkey, metadata, created_at, updated_at
		 FROM contacts WHERE id = ?`,
		id,
	).Scan(&contact).Error
	if err != nil {
		return nil, err
	}
	if contact.ID == 0 {
		return nil, nil
	}
	return &contact, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := db.WithContext(ctx).Raw(
		`SELECT id, first_name, last_name, screen_name, email, pubkey, metadata, created_at, updated_at
		 FROM contacts
		 ORDER BY first_name ASC, last_name ASC, screen_name ASC`,
	).Scan(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}
