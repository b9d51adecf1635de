package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	"github.com/prismpay/prism/internal/prism/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, prism *domain.Prism) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO prisms (id, name, slug, description, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		prism.ID,
		prism.Name,
		prism.Slug,
		prism.Description,
		prism.Active,
		prism.CreatedAt,
		prism.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, prism *domain.Prism) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE prisms
		 SET name = ?, slug = ?, description = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		prism.Name,
		prism.Slug,
		prism.Description,
		prism.Active,
		prism.UpdatedAt,
		prism.ID,
	)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, prismID snowflake.ID) (int64, error) {
	result := db.WithContext(ctx).Exec(`DELETE FROM prisms WHERE id = ?`, prismID)
	return result.RowsAffected, result.Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, prismID snowflake.ID) (*domain.Prism, error) {
	if prismID == 0 {
		return nil, nil
	}
	var prisms []domain.Prism
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, description, active, created_at, updated_at
		 FROM prisms
		 WHERE id = ?
		 LIMIT 1`,
		prismID,
	).Scan(&prisms).Error
	if err != nil {
		return nil, err
	}
	if len(prisms) == 0 {
		return nil, nil
	}
	return &prisms[0], nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Prism, error) {
	var prisms []domain.Prism
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, slug, description, active, created_at, updated_at
		 FROM prisms
		 ORDER BY created_at DESC, id DESC`,
	).Scan(&prisms).Error
	if err != nil {
		return nil, err
	}
	return prisms, nil
}

func (r *repo) InsertSplits(ctx context.Context, db *gorm.DB, splits []domain.Split) error {
	for i := range splits {
		err := db.WithContext(ctx).Exec(
			`INSERT INTO splits (id, prism_id, destination_id, percentage, description, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			splits[i].ID,
			splits[i].PrismID,
			splits[i].DestinationID,
			splits[i].Percentage,
			splits[i].Description,
			splits[i].CreatedAt,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) DeleteSplits(ctx context.Context, db *gorm.DB, prismID snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM splits WHERE prism_id = ?`, prismID).Error
}

type splitRow struct {
	ID                snowflake.ID `gorm:"column:id"`
	PrismID           snowflake.ID `gorm:"column:prism_id"`
	DestinationID     snowflake.ID `gorm:"column:destination_id"`
	Percentage        float64      `gorm:"column:percentage"`
	Description       string       `gorm:"column:description"`
	CreatedAt         time.Time    `gorm:"column:created_at"`
	DestinationValue  string       `gorm:"column:destination_value"`
	DestinationType   string       `gorm:"column:destination_type"`
	ContactID         snowflake.ID `gorm:"column:contact_id"`
	ContactFirstName  string       `gorm:"column:contact_first_name"`
	ContactLastName   string       `gorm:"column:contact_last_name"`
	ContactScreenName string       `gorm:"column:contact_screen_name"`
}

func (r *repo) FindSplits(ctx context.Context, db *gorm.DB, prismID snowflake.ID) ([]domain.Split, error) {
	var rows []splitRow
	err := db.WithContext(ctx).Raw(
		`SELECT s.id, s.prism_id, s.destination_id, s.percentage, s.description, s.created_at,
		        d.value AS destination_value,
		        d.type AS destination_type,
		        c.id AS contact_id,
		        c.first_name AS contact_first_name,
		        c.last_name AS contact_last_name,
		        c.screen_name AS contact_screen_name
		 FROM splits s
		 JOIN payment_destinations d ON d.id = s.destination_id
		 JOIN contacts c ON c.id = d.contact_id
		 WHERE s.prism_id = ?
		 ORDER BY s.percentage DESC, s.id ASC`,
		prismID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	splits := make([]domain.Split, 0, len(rows))
	for _, row := range rows {
		splits = append(splits, domain.Split{
			ID:            row.ID,
			PrismID:       row.PrismID,
			DestinationID: row.DestinationID,
			Percentage:    row.Percentage,
			Description:   row.Description,
			CreatedAt:     row.CreatedAt,
			Destination: &domain.SplitDestination{
				ID:    row.DestinationID,
				Value: row.DestinationValue,
				Type:  row.DestinationType,
				Contact: &contactdomain.Display{
					ID:         row.ContactID,
					FirstName:  row.ContactFirstName,
					LastName:   row.ContactLastName,
					ScreenName: row.ContactScreenName,
				},
			},
		})
	}
	return splits, nil
}

func (r *repo) CountDestinations(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM payment_destinations WHERE id IN ?`,
		ids,
	).Scan(&count).Error
	return count, err
}
