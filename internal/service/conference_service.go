package service

import (
	"context"
	"errors"

	"github.com/academic-forum/forum-tickets/internal/models"
	"github.com/academic-forum/forum-tickets/internal/repository"
	"gorm.io/gorm"
)

var ErrConferenceNotFound = errors.New("conference not found")

type ConferenceParams struct {
	NameZH       *string
	NameEN       *string
	SubtitleZH   *string
	SubtitleEN   *string
	DateStart    *string
	DateEnd      *string
	CheckinTime  *string
	VenueZH      *string
	VenueEN      *string
	ContactEmail *string
	IsActive     *bool
}

type ConferenceService interface {
	GetActive(ctx context.Context) (*models.Conference, error)
	ListAll(ctx context.Context) ([]models.Conference, error)
	Create(ctx context.Context, params ConferenceParams) (*models.Conference, error)
	Update(ctx context.Context, id uint, params ConferenceParams) (*models.Conference, error)
	Delete(ctx context.Context, id uint) error
}

type conferenceService struct {
	repo repository.ConferenceRepository
}

func NewConferenceService(repo repository.ConferenceRepository) ConferenceService {
	return &conferenceService{repo: repo}
}

func (s *conferenceService) GetActive(ctx context.Context) (*models.Conference, error) {
	conf, err := s.repo.FindActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConferenceNotFound
		}
		return nil, err
	}
	return conf, nil
}

func (s *conferenceService) ListAll(ctx context.Context) ([]models.Conference, error) {
	return s.repo.FindAll(ctx)
}

func (s *conferenceService) Create(ctx context.Context, params ConferenceParams) (*models.Conference, error) {
	for field, v := range map[string]*string{
		"name_zh":    params.NameZH,
		"name_en":    params.NameEN,
		"date_start": params.DateStart,
		"date_end":   params.DateEnd,
		"venue_zh":   params.VenueZH,
		"venue_en":   params.VenueEN,
	} {
		if v == nil || *v == "" {
			return nil, &ValidationError{Field: field, Reason: "must not be empty"}
		}
	}

	conf := &models.Conference{
		NameZH:    *params.NameZH,
		NameEN:    *params.NameEN,
		DateStart: *params.DateStart,
		DateEnd:   *params.DateEnd,
		VenueZH:   *params.VenueZH,
		VenueEN:   *params.VenueEN,
	}
	applyConferenceParams(conf, params)

	if err := s.repo.Create(ctx, conf); err != nil {
		return nil, err
	}
	if conf.IsActive {
		if err := s.repo.Activate(ctx, conf.ID); err != nil {
			return nil, err
		}
	}
	return conf, nil
}

func (s *conferenceService) Update(ctx context.Context, id uint, params ConferenceParams) (*models.Conference, error) {
	conf, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConferenceNotFound
		}
		return nil, err
	}

	if params.NameZH != nil {
		conf.NameZH = *params.NameZH
	}
	if params.NameEN != nil {
		conf.NameEN = *params.NameEN
	}
	if params.DateStart != nil {
		conf.DateStart = *params.DateStart
	}
	if params.DateEnd != nil {
		conf.DateEnd = *params.DateEnd
	}
	if params.VenueZH != nil {
		conf.VenueZH = *params.VenueZH
	}
	if params.VenueEN != nil {
		conf.VenueEN = *params.VenueEN
	}
	applyConferenceParams(conf, params)

	if err := s.repo.Save(ctx, conf); err != nil {
		return nil, err
	}
	// Activation is exclusive; demote any other active conference.
	if params.IsActive != nil && *params.IsActive {
		if err := s.repo.Activate(ctx, conf.ID); err != nil {
			return nil, err
		}
	}
	return conf, nil
}

func applyConferenceParams(conf *models.Conference, params ConferenceParams) {
	if params.SubtitleZH != nil {
		conf.SubtitleZH = *params.SubtitleZH
	}
	if params.SubtitleEN != nil {
		conf.SubtitleEN = *params.SubtitleEN
	}
	if params.CheckinTime != nil {
		conf.CheckinTime = *params.CheckinTime
	}
	if params.ContactEmail != nil {
		conf.ContactEmail = *params.ContactEmail
	}
	if params.IsActive != nil {
		conf.IsActive = *params.IsActive
	}
}

func (s *conferenceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConferenceNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}
