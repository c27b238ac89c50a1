package handlers

import "github.com/gofiber/fiber/v2"

func currentUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok && userID != ""
}
