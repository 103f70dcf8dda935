package dto

import (
	"time"

	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/service"
)

// ProfileRequest is the profile form payload. Optional string fields accept
// the empty string, mirroring a cleared form input.
type ProfileRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=100"`
	Country            string `json:"country" validate:"required"`
	City               string `json:"city" validate:"required,max=100"`
	Email              string `json:"email" validate:"omitempty,email"`
	Phone              string `json:"phone" validate:"omitempty,max=20"`
	MissionDescription string `json:"mission_description" validate:"omitempty,max=1000"`
	Website            string `json:"website" validate:"omitempty,url"`
	LinkedIn           string `json:"linkedin" validate:"omitempty,url"`
	Facebook           string `json:"facebook" validate:"omitempty,url"`
	Instagram          string `json:"instagram" validate:"omitempty,url"`
	IsPublic           bool   `json:"is_public"`
}

// ToInput converts the request into the service-layer payload.
func (r ProfileRequest) ToInput() service.ProfileInput {
	return service.ProfileInput{
		Name:               r.Name,
		Country:            r.Country,
		City:               r.City,
		Email:              r.Email,
		Phone:              r.Phone,
		MissionDescription: r.MissionDescription,
		SocialLinks: domain.SocialLinks{
			Website:   r.Website,
			LinkedIn:  r.LinkedIn,
			Facebook:  r.Facebook,
			Instagram: r.Instagram,
		},
		IsPublic: r.IsPublic,
	}
}

// ProfileResponse is the wire form of a profile.
type ProfileResponse struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"user_id"`
	Name               string             `json:"name"`
	Country            string             `json:"country"`
	City               string             `json:"city"`
	Email              *string            `json:"email,omitempty"`
	Phone              *string            `json:"phone,omitempty"`
	MissionDescription *string            `json:"mission_description,omitempty"`
	SocialLinks        domain.SocialLinks `json:"social_links"`
	IsPublic           bool               `json:"is_public"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NewProfileResponse maps a domain profile.
func NewProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		Name:               p.Name,
		Country:            p.Country,
		City:               p.City,
		Email:              p.Email,
		Phone:              p.Phone,
		MissionDescription: p.MissionDescription,
		SocialLinks:        p.SocialLinks,
		IsPublic:           p.IsPublic,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
