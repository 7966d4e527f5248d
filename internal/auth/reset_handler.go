package auth

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"salestrack-backend/internal/database"
	"salestrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const resetCodeTTL = 10 * time.Minute

type ForgotPasswordRequest struct {
	Username string `json:"username"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// POST /api/auth/forgot-password
// Issues a one-time code stored in the password_resets table. Mail delivery
// is not part of this service; the code is handed to whatever sends it.
// The response is the same whether or not the user exists.
func ForgotPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ForgotPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		username := strings.TrimSpace(strings.ToLower(body.Username))
		if username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username is required")
		}

		var user models.User
		if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil || user.Email == "" {
			// Do not reveal which usernames exist or lack an email
			return c.JSON(fiber.Map{"success": true})
		}

		code, err := generateResetCode()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not generate reset code")
		}

		// One active code per user: replace any previous one
		database.DB.Where("username = ?", username).Delete(&models.PasswordReset{})

		reset := models.PasswordReset{
			Username:  username,
			Code:      code,
			ExpiresAt: time.Now().Add(resetCodeTTL),
		}
		if err := database.DB.Create(&reset).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not store reset code")
		}

		log.Printf("Password reset code issued for %q (delivery to %s handled externally)", username, user.Email)

		return c.JSON(fiber.Map{"success": true})
	}
}

// POST /api/auth/reset-password
func ResetPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		username := strings.TrimSpace(strings.ToLower(body.Username))
		if username == "" || body.Code == "" || body.NewPassword == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username, code and new_password are required")
		}

		var reset models.PasswordReset
		if err := database.DB.Where("username = ? AND code = ?", username, body.Code).First(&reset).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid reset code")
		}

		if time.Now().After(reset.ExpiresAt) {
			database.DB.Delete(&reset)
			return fiber.NewError(fiber.StatusUnauthorized, "Reset code has expired")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		if err := database.DB.Model(&models.User{}).
			Where("username = ?", username).
			Update("password_hash", string(hash)).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update password")
		}

		database.DB.Delete(&reset)

		return c.JSON(fiber.Map{"success": true})
	}
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
