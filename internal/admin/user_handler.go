package admin

import (
	"errors"
	"fmt"
	"strings"

	"salestrack-backend/internal/audit"
	"salestrack-backend/internal/auth"
	"salestrack-backend/internal/database"
	"salestrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Username   string          `json:"username"`
	Password   string          `json:"password"`
	Name       string          `json:"name"`
	Role       models.UserRole `json:"role"`
	SalesmanID string          `json:"salesman_id"` // required when role=salesman
	Email      string          `json:"email"`
}

type UserResponse struct {
	ID         uint            `json:"id"`
	Username   string          `json:"username"`
	Name       string          `json:"name"`
	Role       models.UserRole `json:"role"`
	SalesmanID *string         `json:"salesman_id"`
	Email      string          `json:"email"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Role:       u.Role,
		SalesmanID: u.SalesmanID,
		Email:      u.Email,
	}
}

// POST /api/admin/users
func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))
		body.Name = strings.TrimSpace(body.Name)
		body.SalesmanID = strings.TrimSpace(body.SalesmanID)
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		if body.Username == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username, password and name are required")
		}

		switch body.Role {
		case models.RoleAdmin:
			if body.SalesmanID != "" {
				return fiber.NewError(fiber.StatusBadRequest, "An admin account cannot carry a salesman_id")
			}
		case models.RoleSalesman:
			if body.SalesmanID == "" {
				return fiber.NewError(fiber.StatusBadRequest, "salesman_id is required for role=salesman")
			}
		default:
			return fiber.NewError(fiber.StatusBadRequest, "role must be 'admin' or 'salesman'")
		}

		var count int64
		database.DB.Model(&models.User{}).Where("username = ?", body.Username).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Username is already taken")
		}
		if body.Role == models.RoleSalesman {
			database.DB.Model(&models.User{}).Where("salesman_id = ?", body.SalesmanID).Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "Salesman id is already taken")
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Username:     body.Username,
			PasswordHash: string(hash),
			Name:         body.Name,
			Role:         body.Role,
			Email:        body.Email,
		}
		if body.Role == models.RoleSalesman {
			sid := body.SalesmanID
			user.SalesmanID = &sid
		}

		if err := database.DB.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "Username or salesman id is already taken")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		return c.Status(fiber.StatusCreated).JSON(toUserResponse(&user))
	}
}

// GET /api/admin/users?role=salesman
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.User{})
		if role := c.Query("role"); role != "" {
			dbq = dbq.Where("role = ?", role)
		}

		var users []models.User
		if err := dbq.Order("username asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list users")
		}

		resp := make([]UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, toUserResponse(&users[i]))
		}
		return c.JSON(resp)
	}
}

// DELETE /api/admin/users/:id
// Deleting a salesman account also removes that salesman's sales and leave
// applications. The store has no foreign keys between these tables, so the
// cascade is done here, inside one transaction.
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load user")
		}

		if actingID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok && actingID == user.ID {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot delete your own account")
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if user.SalesmanID != nil {
				if err := tx.Where("salesman_id = ?", *user.SalesmanID).Delete(&models.Sale{}).Error; err != nil {
					return err
				}
				if err := tx.Where("salesman_id = ?", *user.SalesmanID).Delete(&models.Leave{}).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&user).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}

		audit.WriteLogFromContext(c, audit.LogOptions{
			EntityType:  "user",
			EntityID:    user.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Deleted user %q (role %s)", user.Username, user.Role),
			After:       toUserResponse(&user),
		})

		return c.JSON(fiber.Map{"success": true})
	}
}
