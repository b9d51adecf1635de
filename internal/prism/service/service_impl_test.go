package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/prismpay/prism/internal/migration"
	"github.com/prismpay/prism/internal/prism/domain"
	"github.com/prismpay/prism/internal/prism/repository"
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

func seedContact(t *testing.T, conn *gorm.DB, node *snowflake.Node, screenName string) snowflake.ID {
	t.Helper()
	id := node.Generate()
	now := time.Now().UTC()
	err := conn.Exec(
		`INSERT INTO contacts (id, first_name, last_name, screen_name, email, pubkey, metadata, created_at, updated_at)
		 VALUES (?, '', '', ?, '', '', '{}', ?, ?)`,
		id, screenName, now, now,
	).Error
	if err != nil {
		t.Fatalf("seed contact: %v", err)
	}
	return id
}

func seedDestination(t *testing.T, conn *gorm.DB, node *snowflake.Node, contactID snowflake.ID, value string) snowflake.ID {
	t.Helper()
	id := node.Generate()
	err := conn.Exec(
		`INSERT INTO payment_destinations (id, contact_id, value, type, created_at)
		 VALUES (?, ?, ?, 'lightning-address', ?)`,
		id, contactID, value, time.Now().UTC(),
	).Error
	if err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	return id
}

func splitRows(t *testing.T, conn *gorm.DB, prismID snowflake.ID) []snowflake.ID {
	t.Helper()
	var ids []snowflake.ID
	err := conn.Raw(`SELECT id FROM splits WHERE prism_id = ? ORDER BY id ASC`, prismID).Scan(&ids).Error
	if err != nil {
		t.Fatalf("read splits: %v", err)
	}
	return ids
}

func TestCreate_CommitsValidSplitSet(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	destA := seedDestination(t, conn, node, contactID, "alice@getalby.com")
	destB := seedDestination(t, conn, node, contactID, "alice@ln.tips")

	prism, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name: "Team Prism",
		Slug: "Team Prism",
		Splits: []domain.SplitInput{
			{DestinationID: destA.String(), Percentage: 0.6},
			{DestinationID: destB.String(), Percentage: 0.4},
		},
	})
	assert.NoError(t, err)
	assert.NotNil(t, prism)
	assert.Equal(t, "team-prism", prism.Slug)
	assert.True(t, prism.Active)
	assert.Len(t, prism.Splits, 2)
	assert.Equal(t, 0.6, prism.Splits[0].Percentage)
	assert.Equal(t, "alice", prism.Splits[0].Destination.Contact.ScreenName)
}

func TestCreate_SumTolerance(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	destA := seedDestination(t, conn, node, contactID, "a@getalby.com")
	destB := seedDestination(t, conn, node, contactID, "b@getalby.com")

	cases := []struct {
		name    string
		a, b    float64
		wantErr error
	}{
		{name: "exact", a: 0.5, b: 0.5},
		{name: "within tolerance", a: 0.49995, b: 0.5},
		{name: "under", a: 0.35, b: 0.5, wantErr: domain.ErrPercentageSum},
		{name: "over", a: 0.52, b: 0.5, wantErr: domain.ErrPercentageSum},
	}

	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), domain.CreatePrismRequest{
				Name: fmt.Sprintf("prism-%d", i),
				Slug: fmt.Sprintf("prism-%d", i),
				Splits: []domain.SplitInput{
					{DestinationID: destA.String(), Percentage: tc.a},
					{DestinationID: destB.String(), Percentage: tc.b},
				},
			})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreate_MissingFields(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	dest := seedDestination(t, conn, node, contactID, "a@getalby.com")

	_, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name:   "",
		Slug:   "no-name",
		Splits: []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingFields)

	_, err = svc.Create(context.Background(), domain.CreatePrismRequest{
		Name:   "no slug",
		Slug:   "",
		Splits: []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingFields)

	_, err = svc.Create(context.Background(), domain.CreatePrismRequest{Name: "no splits", Slug: "no-splits"})
	assert.ErrorIs(t, err, domain.ErrMissingFields)

	var count int64
	conn.Raw(`SELECT COUNT(*) FROM prisms`).Scan(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreate_UnknownDestination(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	_, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name:   "ghost",
		Slug:   "ghost",
		Splits: []domain.SplitInput{{DestinationID: node.Generate().String(), Percentage: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownDestination)

	var count int64
	conn.Raw(`SELECT COUNT(*) FROM prisms`).Scan(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreate_DuplicateSlugConflict(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	dest := seedDestination(t, conn, node, contactID, "a@getalby.com")

	req := domain.CreatePrismRequest{
		Name:   "Same Name",
		Slug:   "Same Name",
		Splits: []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	}
	_, err := svc.Create(context.Background(), req)
	assert.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrSlugTaken)

	var count int64
	conn.Raw(`SELECT COUNT(*) FROM prisms`).Scan(&count)
	assert.Equal(t, int64(1), count)
}

func TestReplace_SwapsWholeSplitSet(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	destA := seedDestination(t, conn, node, contactID, "a@getalby.com")
	destB := seedDestination(t, conn, node, contactID, "b@getalby.com")

	created, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name: "turnover",
		Slug: "turnover",
		Splits: []domain.SplitInput{
			{DestinationID: destA.String(), Percentage: 0.5},
			{DestinationID: destB.String(), Percentage: 0.5},
		},
	})
	assert.NoError(t, err)
	before := splitRows(t, conn, created.ID)
	assert.Len(t, before, 2)

	inactive := false
	replaced, err := svc.Replace(context.Background(), domain.ReplacePrismRequest{
		PrismID: created.ID.String(),
		Name:    "turnover v2",
		Slug:    "turnover v2",
		Active:  &inactive,
		Splits:  []domain.SplitInput{{DestinationID: destA.String(), Percentage: 1}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "turnover-v2", replaced.Slug)
	assert.False(t, replaced.Active)
	assert.Len(t, replaced.Splits, 1)

	after := splitRows(t, conn, created.ID)
	assert.Len(t, after, 1)
	for _, old := range before {
		assert.NotContains(t, after, old)
	}
}

func TestReplace_InvalidSumLeavesPriorState(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	destA := seedDestination(t, conn, node, contactID, "a@getalby.com")
	destB := seedDestination(t, conn, node, contactID, "b@getalby.com")

	created, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name: "steady",
		Slug: "steady",
		Splits: []domain.SplitInput{
			{DestinationID: destA.String(), Percentage: 0.5},
			{DestinationID: destB.String(), Percentage: 0.5},
		},
	})
	assert.NoError(t, err)
	before := splitRows(t, conn, created.ID)

	_, err = svc.Replace(context.Background(), domain.ReplacePrismRequest{
		PrismID: created.ID.String(),
		Name:    "steady",
		Slug:    "steady",
		Splits: []domain.SplitInput{
			{DestinationID: destA.String(), Percentage: 0.6},
			{DestinationID: destB.String(), Percentage: 0.5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrPercentageSum)

	after := splitRows(t, conn, created.ID)
	assert.Equal(t, before, after)

	reloaded, err := svc.GetByID(context.Background(), created.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "steady", reloaded.Name)
}

func TestReplace_SlugConflictRollsBack(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	dest := seedDestination(t, conn, node, contactID, "a@getalby.com")

	_, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name:   "first",
		Slug:   "first",
		Splits: []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	})
	assert.NoError(t, err)

	second, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name:   "second",
		Slug:   "second",
		Splits: []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	})
	assert.NoError(t, err)
	before := splitRows(t, conn, second.ID)

	_, err = svc.Replace(context.Background(), domain.ReplacePrismRequest{
		PrismID: second.ID.String(),
		Name:    "second",
		Slug:    "first",
		Splits:  []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrSlugTaken)

	after := splitRows(t, conn, second.ID)
	assert.Equal(t, before, after)

	reloaded, err := svc.GetByID(context.Background(), second.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "second", reloaded.Slug)
}

func TestReplace_NotFound(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	_, err := svc.Replace(context.Background(), domain.ReplacePrismRequest{
		PrismID: node.Generate().String(),
		Name:    "nobody",
		Slug:    "nobody",
		Splits:  []domain.SplitInput{{DestinationID: node.Generate().String(), Percentage: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_CascadesSplits(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	dest := seedDestination(t, conn, node, contactID, "a@getalby.com")

	created, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name:   "doomed",
		Slug:   "doomed",
		Splits: []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(context.Background(), created.ID.String()))
	assert.Empty(t, splitRows(t, conn, created.ID))

	_, err = svc.GetByID(context.Background(), created.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID.String()), domain.ErrNotFound)
}

// splitInsertFailingRepo simulates a destination disappearing between the
// existence check and the split insert, which the database reports as a
// foreign key violation.
type splitInsertFailingRepo struct {
	domain.Repository
}

func (r splitInsertFailingRepo) InsertSplits(ctx context.Context, db *gorm.DB, splits []domain.Split) error {
	return errors.New("FOREIGN KEY constraint failed")
}

func TestCreate_DestinationGoneAtInsertIsUnknownDestination(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)

	contactID := seedContact(t, conn, node, "alice")
	dest := seedDestination(t, conn, node, contactID, "a@getalby.com")

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  splitInsertFailingRepo{Repository: repository.Provide()},
	})

	_, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name:   "raced",
		Slug:   "raced",
		Splits: []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownDestination)

	var count int64
	conn.Raw(`SELECT COUNT(*) FROM prisms`).Scan(&count)
	assert.Equal(t, int64(0), count)
}

func TestReplace_DestinationGoneAtInsertLeavesPriorState(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	dest := seedDestination(t, conn, node, contactID, "a@getalby.com")

	created, err := svc.Create(context.Background(), domain.CreatePrismRequest{
		Name:   "stable",
		Slug:   "stable",
		Splits: []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	})
	assert.NoError(t, err)
	before := splitRows(t, conn, created.ID)

	failing := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  splitInsertFailingRepo{Repository: repository.Provide()},
	})
	_, err = failing.Replace(context.Background(), domain.ReplacePrismRequest{
		PrismID: created.ID.String(),
		Name:    "stable",
		Slug:    "stable",
		Splits:  []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownDestination)
	assert.Equal(t, before, splitRows(t, conn, created.ID))
}

func TestList_NewestFirstWithoutSplits(t *testing.T) {
	conn := openTestDB(t)
	node, _ := snowflake.NewNode(1)
	svc := newTestService(t, conn, node)

	contactID := seedContact(t, conn, node, "alice")
	dest := seedDestination(t, conn, node, contactID, "a@getalby.com")

	for _, name := range []string{"one", "two", "three"} {
		_, err := svc.Create(context.Background(), domain.CreatePrismRequest{
			Name:   name,
			Slug:   name,
			Splits: []domain.SplitInput{{DestinationID: dest.String(), Percentage: 1}},
		})
		assert.NoError(t, err)
	}

	prisms, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, prisms, 3)
	assert.Equal(t, "three", prisms[0].Name)
	assert.Equal(t, "one", prisms[2].Name)
	assert.Empty(t, prisms[0].Splits)
}
