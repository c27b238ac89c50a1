package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/repository"
	"github.com/NitishV2006/OneOrbit/internal/services"
	"github.com/NitishV2006/OneOrbit/pkg/utils"
)

type identityService interface {
	Login(ctx context.Context, username, password string) (*models.Account, error)
	Signup(ctx context.Context, candidate models.NewAccount) (*models.Account, error)
	Resolve(ctx context.Context, userID string) (*models.Account, error)
}

type AuthHandler struct {
	service   identityService
	jwtSecret string
}

func NewAuthHandler(service identityService, jwtSecret string) *AuthHandler {
	return &AuthHandler{service: service, jwtSecret: jwtSecret}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	account, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"error": "Invalid username or password"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to log in"})
	}

	return h.respondWithToken(c, account)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.NewAccount
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	account, err := h.service.Signup(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Username already exists"})
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Username and password are required"})
		default:
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "Failed to create account"})
		}
	}

	return h.respondWithToken(c, account)
}

// Me resolves the session identity at startup. A stale id (account gone)
// yields 404, which the client treats as "no user".
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	account, err := h.service.Resolve(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	return c.JSON(fiber.Map{"user": accountJSON(account)})
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, account *models.Account) error {
	token, err := utils.GenerateToken(account.ID, "user", h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  accountJSON(account),
	})
}

func accountJSON(account *models.Account) fiber.Map {
	return fiber.Map{
		"id":         account.ID,
		"username":   account.Username,
		"avatar_url": account.AvatarURL,
	}
}
