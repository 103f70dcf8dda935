package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/member-directory/internal/api/dto"
	"github.com/spec-kit/member-directory/internal/auth"
	"github.com/spec-kit/member-directory/internal/authstate"
	"github.com/spec-kit/member-directory/internal/domain"
	"github.com/spec-kit/member-directory/internal/service"
	"github.com/spec-kit/member-directory/internal/session"
	apperrors "github.com/spec-kit/member-directory/pkg/util"
)

// AuthHandler exposes the sign-up/sign-in/sign-out surface.
type AuthHandler struct {
	tracker  *authstate.Tracker
	store    session.Store
	tokens   *auth.TokenManager
	accounts *service.AccountService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(tracker *authstate.Tracker, store session.Store, tokens *auth.TokenManager, accounts *service.AccountService) *AuthHandler {
	return &AuthHandler{tracker: tracker, store: store, tokens: tokens, accounts: accounts}
}

// View handles GET /auth. The mode query parameter selects which form the
// client opens with; anything but "signup" means sign-in.
func (h *AuthHandler) View(c *fiber.Ctx) error {
	mode := "signin"
	if c.Query("mode") == "signup" {
		mode = "signup"
	}
	return c.JSON(fiber.Map{"data": dto.AuthViewResponse{Mode: mode}})
}

// SignUp handles POST /auth/signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sess, err := h.tracker.SignUp(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, session.ErrEmailTaken) {
			return apperrors.NewConflict("email already registered", nil)
		}
		return err
	}

	return h.respondWithSession(c, sess, http.StatusCreated)
}

// SignIn handles POST /auth/signin.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sess, err := h.tracker.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrInvalidCredentials):
			return apperrors.NewUnauthorized("invalid credentials")
		case errors.Is(err, session.ErrAccountSuspended):
			return apperrors.NewForbidden("account suspended")
		}
		return err
	}

	return h.respondWithSession(c, sess, http.StatusOK)
}

// SignOut handles POST /auth/signout.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	token, ok := auth.SessionTokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.tracker.SignOut(c.Context(), token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "signed_out"}})
}

// Refresh handles POST /auth/refresh, rotating the session expiry and
// issuing a fresh access token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token, ok := auth.SessionTokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	sess, err := h.store.RefreshSession(c.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return apperrors.NewUnauthorized("session expired")
		}
		return err
	}

	return h.respondWithSession(c, sess, http.StatusOK)
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	token, err := h.accounts.RequestPasswordReset(c.Context(), req.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": fiber.Map{"status": "accepted"}})
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"data": fiber.Map{
			"reset_token": token.Token,
			"expires_at":  token.ExpiresAt,
		},
	})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.accounts.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_reset"}})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	st := auth.StateFromContext(c)
	if !st.Authenticated {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.accounts.ChangePassword(c.Context(), st.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password_changed"}})
}

func (h *AuthHandler) respondWithSession(c *fiber.Ctx, sess *domain.Session, status int) error {
	accessToken, exp, err := h.tokens.GenerateToken(sess.UserID, sess.Token)
	if err != nil {
		return err
	}
	return c.Status(status).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    sess.UserID,
				"name":  sess.Name,
				"email": sess.Email,
			},
			"auth": dto.AuthResponse{AccessToken: accessToken, ExpiresAt: exp},
		},
	})
}
