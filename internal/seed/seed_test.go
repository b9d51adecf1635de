package seed_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/prismpay/prism/internal/migration"
	"github.com/prismpay/prism/internal/seed"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := migration.Bootstrap(conn); err != nil {
		t.Fatalf("bootstrap schema: %v", err)
	}
	return conn
}

func TestEnsureDemoContacts_InsertsOnceOnly(t *testing.T) {
	conn := openTestDB(t)

	assert.NoError(t, seed.EnsureDemoContacts(conn))

	var count int64
	conn.Raw(`SELECT COUNT(*) FROM contacts`).Scan(&count)
	assert.Equal(t, int64(len(seed.DemoContacts)), count)

	// Second run must not duplicate anything.
	assert.NoError(t, seed.EnsureDemoContacts(conn))
	conn.Raw(`SELECT COUNT(*) FROM contacts`).Scan(&count)
	assert.Equal(t, int64(len(seed.DemoContacts)), count)

	var screenName string
	conn.Raw(`SELECT screen_name FROM contacts ORDER BY first_name ASC LIMIT 1`).Scan(&screenName)
	assert.Equal(t, "alicezap", screenName)
}
