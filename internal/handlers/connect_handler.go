package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/NitishV2006/OneOrbit/internal/models"
	"github.com/NitishV2006/OneOrbit/internal/services"
	feedws "github.com/NitishV2006/OneOrbit/internal/websocket"
	"github.com/NitishV2006/OneOrbit/pkg/utils"
)

type accountResolver interface {
	Resolve(ctx context.Context, userID string) (*models.Account, error)
}

type ConnectHandler struct {
	trio      *services.TrioService
	accounts  accountResolver
	data      userDataAccess
	hub       *feedws.Hub
	jwtSecret string
}

func NewConnectHandler(trio *services.TrioService, accounts accountResolver, data userDataAccess, hub *feedws.Hub, jwtSecret string) *ConnectHandler {
	return &ConnectHandler{
		trio:      trio,
		accounts:  accounts,
		data:      data,
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

func (h *ConnectHandler) GetFeed(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	data, err := h.data.Load(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load check-in feed"})
	}

	checkIns := append([]models.CheckIn{}, data.CheckIns...)
	sort.SliceStable(checkIns, func(a, b int) bool {
		return checkIns[a].Timestamp < checkIns[b].Timestamp
	})

	return c.JSON(fiber.Map{
		"members":   data.TrioMembers,
		"check_ins": checkIns,
	})
}

func (h *ConnectHandler) CreateTrio(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	data, err := h.trio.CreateTrio(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create trio"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"members": data.TrioMembers})
}

type checkInRequest struct {
	Message string `json:"message"`
}

func (h *ConnectHandler) PostCheckIn(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req checkInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}

	account, err := h.accounts.Resolve(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	data, err := h.trio.PostCheckIn(c.Context(), account, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to post check-in"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"check_ins": data.CheckIns})
}

func (h *ConnectHandler) WeeklyActivity(c *fiber.Ctx) error {
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
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load activity"})
	}

	return c.JSON(fiber.Map{"activity": h.trio.WeeklyActivity(account, data, time.Now().UTC())})
}

func (h *ConnectHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	return c.Next()
}

func (h *ConnectHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := feedws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *ConnectHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}
