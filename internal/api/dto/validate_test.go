package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/member-directory/pkg/util"
)

func fieldErrors(t *testing.T, err error) map[string]any {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	return domainErr.Details
}

func TestValidateSignUpRequest(t *testing.T) {
	valid := SignUpRequest{Name: "Ana", Email: "ana@example.com", Password: "s3cret"}
	assert.NoError(t, Validate(valid))

	err := Validate(SignUpRequest{Name: "A", Email: "not-an-email", Password: "short"})
	details := fieldErrors(t, err)

	// Field names come back as json tags so clients can match form inputs.
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Equal(t, "invalid email", details["email"])
}

func TestValidateProfileRequest(t *testing.T) {
	valid := ProfileRequest{
		Name:    "Ana",
		Country: "IN",
		City:    "Vrindavan",
		Website: "https://example.com",
	}
	assert.NoError(t, Validate(valid))

	// Optional fields accept the empty string but reject malformed values.
	err := Validate(ProfileRequest{Name: "Ana", Country: "IN", City: "Vrindavan", Website: "not a url"})
	details := fieldErrors(t, err)
	assert.Contains(t, details, "website")

	err = Validate(ProfileRequest{City: "Vrindavan"})
	details = fieldErrors(t, err)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "country")
}

func TestValidateAnnouncementRequest(t *testing.T) {
	valid := CreateAnnouncementRequest{
		Title:    "Kirtan every evening",
		Content:  "All are welcome to join the evening program.",
		Category: "collaboration",
	}
	assert.NoError(t, Validate(valid))

	err := Validate(CreateAnnouncementRequest{Title: "Hi", Content: "too short", Category: "gossip"})
	details := fieldErrors(t, err)
	assert.Contains(t, details, "title")
	assert.Contains(t, details, "content")
	assert.Contains(t, details, "category")
}

func TestValidateSetAnnouncementStatusRequest(t *testing.T) {
	assert.NoError(t, Validate(SetAnnouncementStatusRequest{Status: "approved"}))
	assert.NoError(t, Validate(SetAnnouncementStatusRequest{Status: "rejected"}))

	err := Validate(SetAnnouncementStatusRequest{Status: "pending"})
	details := fieldErrors(t, err)
	assert.Contains(t, details, "status")
}
