package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	"github.com/prismpay/prism/internal/destination/domain"
	obsmetrics "github.com/prismpay/prism/internal/observability/metrics"
	"github.com/prismpay/prism/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     domain.Repository
	Contacts contactdomain.Repository
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     domain.Repository
	contacts contactdomain.Repository
	metrics  *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("destination.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		contacts: p.Contacts,
		metrics:  p.Metrics,
	}
}

func (s *Service) Add(ctx context.Context, req domain.AddDestinationRequest) (*domain.PaymentDestination, error) {
	contactID, err := parseID(req.ContactID, contactdomain.ErrInvalidID)
	if err != nil {
		return nil, err
	}

	value := strings.TrimSpace(req.Value)
	destinationType := strings.TrimSpace(req.Type)
	if value == "" || destinationType == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidType(destinationType) {
		return nil, domain.ErrInvalidType
	}

	contact, err := s.contacts.FindByID(ctx, s.db, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, contactdomain.ErrNotFound
	}

	destination := domain.PaymentDestination{
		ID:        s.genID.Generate(),
		ContactID: contactID,
		Value:     value,
		Type:      destinationType,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &destination); err != nil {
		if db.IsDuplicateKeyErr(err) {
			s.metrics.RecordDestinationWrite(ctx, "add", "conflict")
			return nil, domain.ErrExists
		}
		return nil, err
	}

	s.metrics.RecordDestinationWrite(ctx, "add", "ok")
	return &destination, nil
}

func (s *Service) Remove(ctx context.Context, req domain.RemoveDestinationRequest) error {
	contactID, err := parseID(req.ContactID, contactdomain.ErrInvalidID)
	if err != nil {
		return err
	}
	destinationID, err := parseID(req.DestinationID, domain.ErrInvalidID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned, err := s.repo.FindOwned(ctx, tx, contactID, destinationID)
		if err != nil {
			return err
		}
		if owned == nil {
			// Either the destination does not exist or it belongs to another
			// contact. Both read as not-found for this caller.
			return domain.ErrNotFound
		}

		refs, err := s.repo.CountSplitRefs(ctx, tx, destinationID)
		if err != nil {
			return err
		}
		if refs > 0 {
			// Committed allocations keep their destinations. Drop the splits
			// first (via prism replace) before removing the destination.
			return domain.ErrReferenced
		}

		rows, err := s.repo.Delete(ctx, tx, contactID, destinationID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordDestinationWrite(ctx, "remove", "ok")
	return nil
}

func (s *Service) ListForContact(ctx context.Context, rawContactID string) ([]domain.PaymentDestination, error) {
	contactID, err := parseID(rawContactID, contactdomain.ErrInvalidID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByContact(ctx, s.db, contactID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.PaymentDestination, error) {
	return s.repo.ListAll(ctx, s.db)
}

func parseID(value string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}
