package service

import (
	"context"
	"errors"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/repository"
	"gorm.io/gorm"
)

var ErrSponsorNotFound = errors.New("sponsor not found")

type SponsorParams struct {
	NameZH    *string
	NameEN    *string
	Abbr      *string
	Category  *string
	LogoURL   *string
	Website   *string
	SortOrder *int
	IsActive  *bool
}

type SponsorService interface {
	ListActive(ctx context.Context) ([]models.Sponsor, error)
	ListAll(ctx context.Context) ([]models.Sponsor, error)
	Create(ctx context.Context, params SponsorParams) (*models.Sponsor, error)
	Update(ctx context.Context, id uint, params SponsorParams) (*models.Sponsor, error)
	Delete(ctx context.Context, id uint) error
}

type sponsorService struct {
	repo repository.SponsorRepository
}

func NewSponsorService(repo repository.SponsorRepository) SponsorService {
	return &sponsorService{repo: repo}
}

func (s *sponsorService) ListActive(ctx context.Context) ([]models.Sponsor, error) {
	return s.repo.FindActive(ctx)
}

func (s *sponsorService) ListAll(ctx context.Context) ([]models.Sponsor, error) {
	return s.repo.FindAll(ctx)
}

func (s *sponsorService) Create(ctx context.Context, params SponsorParams) (*models.Sponsor, error) {
	if params.NameZH == nil || *params.NameZH == "" || params.NameEN == nil || *params.NameEN == "" {
		return nil, &ValidationError{Field: "name", Reason: "both name_zh and name_en are required"}
	}
	if params.Category == nil || *params.Category == "" {
		return nil, &ValidationError{Field: "category", Reason: "must not be empty"}
	}

	sponsor := &models.Sponsor{
		NameZH:   *params.NameZH,
		NameEN:   *params.NameEN,
		Category: *params.Category,
		IsActive: true,
	}
	applySponsorParams(sponsor, params)

	if err := s.repo.Create(ctx, sponsor); err != nil {
		return nil, err
	}
	return sponsor, nil
}

func (s *sponsorService) Update(ctx context.Context, id uint, params SponsorParams) (*models.Sponsor, error) {
	sponsor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, err
	}

	if params.NameZH != nil {
		sponsor.NameZH = *params.NameZH
	}
	if params.NameEN != nil {
		sponsor.NameEN = *params.NameEN
	}
	if params.Category != nil {
		sponsor.Category = *params.Category
	}
	applySponsorParams(sponsor, params)

	if err := s.repo.Save(ctx, sponsor); err != nil {
		return nil, err
	}
	return sponsor, nil
}

func applySponsorParams(sponsor *models.Sponsor, params SponsorParams) {
	if params.Abbr != nil {
		sponsor.Abbr = *params.Abbr
	}
	if params.LogoURL != nil {
		sponsor.LogoURL = *params.LogoURL
	}
	if params.Website != nil {
		sponsor.Website = *params.Website
	}
	if params.SortOrder != nil {
		sponsor.SortOrder = *params.SortOrder
	}
	if params.IsActive != nil {
		sponsor.IsActive = *params.IsActive
	}
}

func (s *sponsorService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSponsorNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
