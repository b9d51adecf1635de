package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/prismpay/prism/internal/contact/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("contact.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateContactRequest) (*domain.Contact, error) {
	now := time.Now().UTC()
	contact := domain.Contact{
		ID:         s.genID.Generate(),
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		ScreenName: strings.TrimSpace(req.ScreenName),
		Email:      strings.TrimSpace(req.Email),
		Pubkey:     strings.TrimSpace(req.Pubkey),
		Metadata:   metadataOrEmpty(req.Metadata),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &contact); err != nil {
		return nil, err
	}

	return &contact, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateContactRequest) (*domain.Contact, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	contact := domain.Contact{
		ID:         id,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		ScreenName: strings.TrimSpace(req.ScreenName),
		Email:      strings.TrimSpace(req.Email),
		Pubkey:     strings.TrimSpace(req.Pubkey),
		Metadata:   metadataOrEmpty(req.Metadata),
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  time.Now().UTC(),
	}

	rows, err := s.repo.Update(ctx, s.db, &contact)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}

	return &contact, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (*domain.Contact, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return nil, err
	}

	contact, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, domain.ErrNotFound
	}

	return contact, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func metadataOrEmpty(metadata map[string]any) datatypes.JSONMap {
	if metadata == nil {
		return datatypes.JSONMap{}
	}
	return datatypes.JSONMap(metadata)
}
