package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	"github.com/prismpay/prism/internal/destination/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, destination *domain.PaymentDestination) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payment_destinations (id, contact_id, value, type, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		destination.ID,
		destination.ContactID,
		destination.Value,
		destination.Type,
		destination.CreatedAt,
	).Error
}

func (r *repo) FindOwned(ctx context.Context, db *gorm.DB, contactID, destinationID snowflake.ID) (*domain.PaymentDestination, error) {
	var destinations []domain.PaymentDestination
	err := db.WithContext(ctx).Raw(
		`SELECT id, contact_id, value, type, created_at
		 FROM payment_destinations
		 WHERE id = ? AND contact_id = ?`,
		destinationID,
		contactID,
	).Scan(&destinations).Error
	if err != nil {
		return nil, err
	}
	if len(destinations) == 0 {
		return nil, nil
	}
	return &destinations[0], nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, contactID, destinationID snowflake.ID) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`DELETE FROM payment_destinations WHERE id = ? AND contact_id = ?`,
		destinationID,
		contactID,
	)
	return result.RowsAffected, result.Error
}

func (r *repo) ListByContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) ([]domain.PaymentDestination, error) {
	var destinations []domain.PaymentDestination
	err := db.WithContext(ctx).Raw(
		`SELECT id, contact_id, value, type, created_at
		 FROM payment_destinations
		 WHERE contact_id = ?
		 ORDER BY created_at DESC, id DESC`,
		contactID,
	).Scan(&destinations).Error
	if err != nil {
		return nil, err
	}
	return destinations, nil
}

type destinationContactRow struct {
	ID                snowflake.ID `gorm:"column:id"`
	ContactID         snowflake.ID `gorm:"column:contact_id"`
	Value             string       `gorm:"column:value"`
	Type              string       `gorm:"column:type"`
	CreatedAt         time.Time    `gorm:"column:created_at"`
	ContactFirstName  string       `gorm:"column:contact_first_name"`
	ContactLastName   string       `gorm:"column:contact_last_name"`
	ContactScreenName string       `gorm:"column:contact_screen_name"`
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB) ([]domain.PaymentDestination, error) {
	var rows []destinationContactRow
	err := db.WithContext(ctx).Raw(
		`SELECT d.id, d.contact_id, d.value, d.type, d.created_at,
		        c.first_name AS contact_first_name,
		        c.last_name AS contact_last_name,
		        c.screen_name AS contact_screen_name
		 FROM payment_destinations d
		 JOIN contacts c ON c.id = d.contact_id
		 ORDER BY d.created_at DESC, d.id DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	destinations := make([]domain.PaymentDestination, 0, len(rows))
	for _, row := range rows {
		destinations = append(destinations, domain.PaymentDestination{
			ID:        row.ID,
			ContactID: row.ContactID,
			Value:     row.Value,
			Type:      row.Type,
			CreatedAt: row.CreatedAt,
			Contact: &contactdomain.Display{
				ID:         row.ContactID,
				FirstName:  row.ContactFirstName,
				LastName:   row.ContactLastName,
				ScreenName: row.ContactScreenName,
			},
		})
	}
	return destinations, nil
}

func (r *repo) CountSplitRefs(ctx context.Context, db *gorm.DB, destinationID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM splits WHERE destination_id = ?`,
		destinationID,
	).Scan(&count).Error
	return count, err
}
