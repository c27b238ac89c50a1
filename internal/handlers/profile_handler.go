package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/repository"
)

type avatarUpdater interface {
	Resolve(ctx context.Context, userID string) (*models.Account, error)
	UpdateAvatar(ctx context.Context, userID, avatarURL string) (*models.Account, error)
}

type ProfileHandler struct {
	accounts avatarUpdater
	data     userDataAccess
}

func NewProfileHandler(accounts avatarUpdater, data userDataAccess) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, data: data}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	account, err := h.accounts.Resolve(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	data, err := h.data.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load profile"})
	}

	return c.JSON(fiber.Map{
		"account": accountJSON(account),
		"profile": data.Profile,
	})
}

type updateProfileRequest struct {
	Bio      *string           `json:"bio"`
	Skills   *[]string         `json:"skills"`
	Projects *[]models.Project `json:"projects"`
}

// UpdateProfile applies partial edits. Absent fields keep their stored
// value, so sending {"bio": ""} clears the bio but omitting it does not.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	data, err := h.data.Update(c.Context(), userID, func(data *models.UserData) error {
		if req.Bio != nil {
			data.Profile.Bio = strings.TrimSpace(*req.Bio)
		}
		if req.Skills != nil {
			skills := make([]string, 0, len(*req.Skills))
			for _, s := range *req.Skills {
				if s = strings.TrimSpace(s); s != "" {
					skills = append(skills, s)
				}
			}
			data.Profile.Skills = skills
		}
		if req.Projects != nil {
			projects := make([]models.Project, 0, len(*req.Projects))
			for _, p := range *req.Projects {
				p.Title = strings.TrimSpace(p.Title)
				if p.Title != "" {
					projects = append(projects, p)
				}
			}
			data.Profile.Projects = projects
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"profile": data.Profile})
}

type updateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl"`
}

func (h *ProfileHandler) UpdateAvatar(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateAvatarRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	req.AvatarURL = strings.TrimSpace(req.AvatarURL)
	if req.AvatarURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Avatar URL is required"})
	}

	account, err := h.accounts.UpdateAvatar(c.Context(), userID, req.AvatarURL)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update avatar"})
	}

	return c.JSON(fiber.Map{"account": accountJSON(account)})
}
