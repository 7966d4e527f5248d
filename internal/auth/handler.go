package auth

import (
	"strings"

	"salestrack-backend/internal/config"
	"salestrack-backend/internal/database"
	"salestrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Username or password incorrect")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Username or password incorrect")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":          user.ID,
				"username":    user.Username,
				"name":        user.Name,
				"role":        user.Role,
				"salesman_id": user.SalesmanID,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDVal := c.Locals(CtxUserIDKey)

		var user models.User
		if userID, ok := userIDVal.(uint); ok {
			if err := database.DB.First(&user, userID).Error; err == nil {
				return c.JSON(fiber.Map{
					"user_id":     user.ID,
					"username":    user.Username,
					"name":        user.Name,
					"email":       user.Email,
					"role":        user.Role,
					"salesman_id": user.SalesmanID,
				})
			}
		}

		// Fallback: answer from the token if the row is unreadable
		return c.JSON(fiber.Map{
			"user_id":     userIDVal,
			"username":    c.Locals(CtxUsernameKey),
			"role":        c.Locals(CtxUserRoleKey),
			"salesman_id": c.Locals(CtxSalesmanIDKey),
		})
	}
}
