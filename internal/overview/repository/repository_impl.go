package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	"github.com/prismpay/prism/internal/overview/domain"
	prismdomain "github.com/prismpay/prism/internal/prism/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) CountPrismsForContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT s.prism_id)
		 FROM splits s
		 JOIN payment_destinations d ON d.id = s.destination_id
		 WHERE d.contact_id = ?`,
		contactID,
	).Scan(&count).Error
	return count, err
}

func (r *repo) ListPrismsForContact(ctx context.Context, db *gorm.DB, contactID snowflake.ID) ([]prismdomain.Summary, error) {
	var summaries []prismdomain.Summary
	err := db.WithContext(ctx).Raw(
		`SELECT DISTINCT p.id, p.name, p.slug
		 FROM prisms p
		 JOIN splits s ON s.prism_id = p.id
		 JOIN payment_destinations d ON d.id = s.destination_id
		 WHERE d.contact_id = ?
		 ORDER BY p.id ASC`,
		contactID,
	).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *repo) CountMembers(ctx context.Context, db *gorm.DB, prismID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT d.contact_id)
		 FROM splits s
		 JOIN payment_destinations d ON d.id = s.destination_id
		 WHERE s.prism_id = ?`,
		prismID,
	).Scan(&count).Error
	return count, err
}

func (r *repo) FindPrimaryContact(ctx context.Context, db *gorm.DB, prismID snowflake.ID) (*contactdomain.Display, error) {
	var displays []contactdomain.Display
	err := db.WithContext(ctx).Raw(
		`SELECT c.id, c.first_name, c.last_name, c.screen_name
		 FROM splits s
		 JOIN payment_destinations d ON d.id = s.destination_id
		 JOIN contacts c ON c.id = d.contact_id
		 WHERE s.prism_id = ?
		 ORDER BY s.percentage DESC, s.id ASC
		 LIMIT 1`,
		prismID,
	).Scan(&displays).Error
	if err != nil {
		return nil, err
	}
	if len(displays) == 0 {
		return nil, nil
	}
	return &displays[0], nil
}
