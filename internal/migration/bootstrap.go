package migration

import (
	"errors"

	"gorm.io/gorm"
)

// bootstrapStatements mirror the postgres migrations with portable types,
// for the sqlite and mysql deployments golang-migrate is not wired for.
var bootstrapStatements = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		id BIGINT PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		screen_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		pubkey TEXT NOT NULL DEFAULT '',
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payment_destinations (
		id BIGINT PRIMARY KEY,
		contact_id BIGINT NOT NULL REFERENCES contacts (id),
		value TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		UNIQUE (contact_id, value, type)
	)`,
	`CREATE TABLE IF NOT EXISTS prisms (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS splits (
		id BIGINT PRIMARY KEY,
		prism_id BIGINT NOT NULL REFERENCES prisms (id),
		destination_id BIGINT NOT NULL REFERENCES payment_destinations (id),
		percentage DOUBLE PRECISION NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
}

// Bootstrap creates the schema directly through gorm.
func Bootstrap(db *gorm.DB) error {
	if db == nil {
		return errors.New("bootstrap database handle is required")
	}
	for _, stmt := range bootstrapStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
