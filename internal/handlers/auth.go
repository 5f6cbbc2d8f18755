package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/splitkaro/backend/internal/auth"
	"github.com/splitkaro/backend/internal/middleware"
	"github.com/splitkaro/backend/internal/models"
	"github.com/splitkaro/backend/internal/storage"
)

type AuthHandler struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

func NewAuthHandler(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.Email == "" || req.DisplayName == "" {
		return failure(c, fiber.StatusBadRequest, "email and displayName are required")
	}

	user, err := h.authenticator.Register(c.Context(), req.Email, req.DisplayName, req.PhoneNumber, req.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		return fail(c, err)
	}

	return success(c, fiber.StatusCreated, sessionResponse{Token: token, User: user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.authenticator.Authenticate(c.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return fail(c, err)
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		return fail(c, err)
	}

	return success(c, fiber.StatusOK, sessionResponse{Token: token, User: user})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.store.GetUserByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, user)
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		return failure(c, fiber.StatusBadRequest, "displayName is required")
	}

	user, err := h.store.GetUserByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}

	user.DisplayName = req.DisplayName
	user.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if err := h.store.UpdateUserProfile(c.Context(), user); err != nil {
		return fail(c, err)
	}

	return success(c, fiber.StatusOK, user)
}
