package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	obsmetrics "github.com/prismpay/prism/internal/observability/metrics"
	"github.com/prismpay/prism/internal/prism/domain"
	"github.com/prismpay/prism/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("prism.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

// allocation is a validated create/replace payload.
type allocation struct {
	Name        string
	Slug        string
	Description string
	Splits      []domain.SplitInput
	SplitIDs    []snowflake.ID
}

func (s *Service) validate(ctx context.Context, name, rawSlug string, splits []domain.SplitInput) (*allocation, error) {
	name = strings.TrimSpace(name)
	normalized := slug.Make(strings.TrimSpace(rawSlug))
	if name == "" || normalized == "" || len(splits) == 0 {
		s.metrics.RecordAllocationRejected(ctx, "missing_fields")
		return nil, domain.ErrMissingFields
	}

	ids := make([]snowflake.ID, 0, len(splits))
	seen := make(map[snowflake.ID]struct{}, len(splits))
	sum := 0.0
	for _, split := range splits {
		id, err := snowflake.ParseString(strings.TrimSpace(split.DestinationID))
		if err != nil || id == 0 {
			s.metrics.RecordAllocationRejected(ctx, "unknown_destination")
			return nil, domain.ErrUnknownDestination
		}
		if split.Percentage <= 0 || split.Percentage > 1 {
			s.metrics.RecordAllocationRejected(ctx, "invalid_percentage")
			return nil, domain.ErrInvalidPercentage
		}
		sum += split.Percentage
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	if math.Abs(sum-1) > domain.SumTolerance {
		s.metrics.RecordAllocationRejected(ctx, "percentage_sum")
		return nil, domain.ErrPercentageSum
	}

	count, err := s.repo.CountDestinations(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		s.metrics.RecordAllocationRejected(ctx, "unknown_destination")
		return nil, domain.ErrUnknownDestination
	}

	return &allocation{
		Name:     name,
		Slug:     normalized,
		Splits:   splits,
		SplitIDs: ids,
	}, nil
}

func (s *Service) buildSplits(prismID snowflake.ID, inputs []domain.SplitInput, now time.Time) []domain.Split {
	splits := make([]domain.Split, 0, len(inputs))
	for _, input := range inputs {
		id, _ := snowflake.ParseString(strings.TrimSpace(input.DestinationID))
		splits = append(splits, domain.Split{
			ID:            s.genID.Generate(),
			PrismID:       prismID,
			DestinationID: id,
			Percentage:    input.Percentage,
			Description:   strings.TrimSpace(input.Description),
			CreatedAt:     now,
		})
	}
	return splits
}

func (s *Service) Create(ctx context.Context, req domain.CreatePrismRequest) (*domain.Prism, error) {
	validated, err := s.validate(ctx, req.Name, req.Slug, req.Splits)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	prism := domain.Prism{
		ID:          s.genID.Generate(),
		Name:        validated.Name,
		Slug:        validated.Slug,
		Description: strings.TrimSpace(req.Description),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &prism); err != nil {
			return err
		}
		return s.repo.InsertSplits(ctx, tx, s.buildSplits(prism.ID, validated.Splits, now))
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			s.metrics.RecordAllocationRejected(ctx, "slug_taken")
			return nil, domain.ErrSlugTaken
		}
		// A destination removed between the existence check and the insert
		// surfaces as a foreign key violation.
		if db.IsForeignKeyErr(err) {
			s.metrics.RecordAllocationRejected(ctx, "unknown_destination")
			return nil, domain.ErrUnknownDestination
		}
		return nil, err
	}

	s.metrics.RecordAllocationCommit(ctx, "create")
	s.log.Info("prism created",
		zap.String("prism_id", prism.ID.String()),
		zap.String("slug", prism.Slug),
		zap.Int("splits", len(validated.Splits)),
	)
	return s.load(ctx, prism.ID)
}

func (s *Service) Replace(ctx context.Context, req domain.ReplacePrismRequest) (*domain.Prism, error) {
	prismID, err := parseID(req.PrismID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, prismID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	validated, err := s.validate(ctx, req.Name, req.Slug, req.Splits)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := domain.Prism{
		ID:          prismID,
		Name:        validated.Name,
		Slug:        validated.Slug,
		Description: strings.TrimSpace(req.Description),
		Active:      existing.Active,
		UpdatedAt:   now,
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo.Update(ctx, tx, &updated); err != nil {
			return err
		}
		if err := s.repo.DeleteSplits(ctx, tx, prismID); err != nil {
			return err
		}
		return s.repo.InsertSplits(ctx, tx, s.buildSplits(prismID, validated.Splits, now))
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			s.metrics.RecordAllocationRejected(ctx, "slug_taken")
			return nil, domain.ErrSlugTaken
		}
		if db.IsForeignKeyErr(err) {
			s.metrics.RecordAllocationRejected(ctx, "unknown_destination")
			return nil, domain.ErrUnknownDestination
		}
		return nil, err
	}

	s.metrics.RecordAllocationCommit(ctx, "replace")
	s.log.Info("prism splits replaced",
		zap.String("prism_id", prismID.String()),
		zap.Int("splits", len(validated.Splits)),
	)
	return s.load(ctx, prismID)
}

func (s *Service) Delete(ctx context.Context, rawPrismID string) error {
	prismID, err := parseID(rawPrismID)
	if err != nil {
		return err
	}

	var rows int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DeleteSplits(ctx, tx, prismID); err != nil {
			return err
		}
		rows, err = s.repo.Delete(ctx, tx, prismID)
		return err
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	s.log.Info("prism deleted", zap.String("prism_id", prismID.String()))
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.Prism, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, rawPrismID string) (*domain.Prism, error) {
	prismID, err := parseID(rawPrismID)
	if err != nil {
		return nil, err
	}

	prism, err := s.load(ctx, prismID)
	if err != nil {
		return nil, err
	}
	if prism == nil {
		return nil, domain.ErrNotFound
	}
	return prism, nil
}

func (s *Service) load(ctx context.Context, prismID snowflake.ID) (*domain.Prism, error) {
	prism, err := s.repo.FindByID(ctx, s.db, prismID)
	if err != nil || prism == nil {
		return prism, err
	}
	splits, err := s.repo.FindSplits(ctx, s.db, prismID)
	if err != nil {
		return nil, err
	}
	prism.Splits = splits
	return prism, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
