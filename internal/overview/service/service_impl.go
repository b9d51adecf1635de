package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/prismpay/prism/internal/config"
	contactdomain "github.com/prismpay/prism/internal/contact/domain"
	"github.com/prismpay/prism/internal/overview/domain"
	prismdomain "github.com/prismpay/prism/internal/prism/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Prisms  prismdomain.Repository
	Display *config.DisplayConfigHolder `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	prisms  prismdomain.Repository
	display *config.DisplayConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("overview.service"),
		repo:    p.Repo,
		prisms:  p.Prisms,
		display: p.Display,
	}
}

func (s *Service) PrismCount(ctx context.Context, rawContactID string) (int64, error) {
	contactID, err := parseID(rawContactID, contactdomain.ErrInvalidID)
	if err != nil {
		return 0, err
	}
	return s.repo.CountPrismsForContact(ctx, s.db, contactID)
}

func (s *Service) SharedPrisms(ctx context.Context, rawContactID string) (*domain.SharedPrismsResult, error) {
	contactID, err := parseID(rawContactID, contactdomain.ErrInvalidID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.repo.ListPrismsForContact(ctx, s.db, contactID)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(s.display.Current().ThumbnailBaseURL, "/")
	for i := range summaries {
		if base == "" {
			continue
		}
		url := base + "/" + summaries[i].Slug + ".png"
		summaries[i].Thumbnail = &url
	}

	return &domain.SharedPrismsResult{
		Prisms: summaries,
		Count:  len(summaries),
	}, nil
}

func (s *Service) MemberCount(ctx context.Context, rawPrismID string) (int64, error) {
	prismID, err := s.requirePrism(ctx, rawPrismID)
	if err != nil {
		return 0, err
	}
	return s.repo.CountMembers(ctx, s.db, prismID)
}

func (s *Service) PrimaryAccount(ctx context.Context, rawPrismID string) (*contactdomain.Display, error) {
	prismID, err := s.requirePrism(ctx, rawPrismID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindPrimaryContact(ctx, s.db, prismID)
}

func (s *Service) requirePrism(ctx context.Context, rawPrismID string) (snowflake.ID, error) {
	prismID, err := parseID(rawPrismID, prismdomain.ErrInvalidID)
	if err != nil {
		return 0, err
	}
	prism, err := s.prisms.FindByID(ctx, s.db, prismID)
	if err != nil {
		return 0, err
	}
	if prism == nil {
		return 0, prismdomain.ErrNotFound
	}
	return prismID, nil
}

func parseID(value string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}
