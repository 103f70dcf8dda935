package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/repository"
)

// ProfileInput is the validated profile form payload.
type ProfileInput struct {
	Name               string
	Country            string
	City               string
	Email              string
	Phone              string
	MissionDescription string
	SocialLinks        domain.SocialLinks
	IsPublic           bool
}

// ProfileService manages a member's own directory record.
type ProfileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService constructs the service.
func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetOwn returns the subject's profile, or nil when none exists yet.
func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// Upsert creates the subject's profile on first submission and updates it on
// every later one; a subject never ends up with more than one profile. The
// returned bool reports whether a new profile was created.
func (s *ProfileService) Upsert(ctx context.Context, userID string, input ProfileInput) (*domain.Profile, bool, error) {
	profile := &domain.Profile{
		UserID:             userID,
		Name:               strings.TrimSpace(input.Name),
		Country:            input.Country,
		City:               strings.TrimSpace(input.City),
		Email:              optional(input.Email),
		Phone:              optional(input.Phone),
		MissionDescription: optional(input.MissionDescription),
		SocialLinks:        input.SocialLinks,
		IsPublic:           input.IsPublic,
	}

	existing, err := s.GetOwn(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, false, err
		}
		return profile, true, nil
	}

	profile.ID = existing.ID
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, false, err
	}
	return profile, false, nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
