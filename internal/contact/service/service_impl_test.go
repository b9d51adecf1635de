package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/prismpay/prism/internal/contact/domain"
	"github.com/prismpay/prism/internal/contact/repository"
	"github.com/prismpay/prism/internal/migration"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
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

func newTestService(t *testing.T, conn *gorm.DB, node *snowflake.Node) domain.Service {
	t.Helper()
	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateAndGet(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	created, err := svc.Create(context.Background(), domain.CreateContactRequest{
		FirstName:  "Alice",
		LastName:   "Lightning",
		ScreenName: "alicezap",
		Pubkey:     "7177772c4187bee24bd427b496fab4f3b134dc1d772d5e96566e063e825ae524",
		Metadata:   map[string]any{"telegram": "@alicezap"},
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)

	fetched, err := svc.GetByID(context.Background(), created.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "Alice", fetched.FirstName)
	assert.Equal(t, "alicezap", fetched.ScreenName)
	assert.Equal(t, "@alicezap", fetched.Metadata["telegram"])
}

func TestGet_Errors(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	_, err := svc.GetByID(context.Background(), "not-a-snowflake")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	created, err := svc.Create(context.Background(), domain.CreateContactRequest{
		FirstName: "Bob",
	})
	assert.NoError(t, err)

	updated, err := svc.Update(context.Background(), domain.UpdateContactRequest{
		ID:         created.ID.String(),
		FirstName:  "Bob",
		LastName:   "Builder",
		ScreenName: "bitcoinbob",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Builder", updated.LastName)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)

	_, err = svc.Update(context.Background(), domain.UpdateContactRequest{
		ID:        node.Generate().String(),
		FirstName: "Nobody",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_OrderedByName(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	for _, first := range []string{"Carol", "Alice", "Bob"} {
		_, err := svc.Create(context.Background(), domain.CreateContactRequest{FirstName: first})
		assert.NoError(t, err)
	}

	contacts, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, contacts, 3)
	assert.Equal(t, "Alice", contacts[0].FirstName)
	assert.Equal(t, "Bob", contacts[1].FirstName)
	assert.Equal(t, "Carol", contacts[2].FirstName)
}

func TestDisplayName(t *testing.T) {
	full := domain.Display{FirstName: "Alice", LastName: "Lightning", ScreenName: "alicezap"}
	assert.Equal(t, "Alice Lightning", full.DisplayName())

	screenOnly := domain.Display{ScreenName: "alicezap"}
	assert.Equal(t, "alicezap", screenOnly.DisplayName())

	empty := domain.Display{}
	assert.Equal(t, "Unnamed", empty.DisplayName())
}
