package sales

import (
	"strings"
	"time"

	"salestrack-backend/internal/auth"
	"salestrack-backend/internal/database"
	"salestrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSaleRequest struct {
	SalesmanID   string  `json:"salesman_id"`
	SalesmanName string  `json:"salesman_name"`
	Date         string  `json:"date"` // "YYYY-MM-DD", defaults to today
	Brand        string  `json:"brand"`
	ItemCode     string  `json:"item_code"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	TotalAmount  float64 `json:"total_amount"` // optional, derived when 0
}

// POST /api/sales
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		// A salesman only records sales against himself
		if role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole); role == models.RoleSalesman {
			if sid := auth.SalesmanIDFromContext(c); sid != nil {
				body.SalesmanID = *sid
			}
		}

		body.SalesmanID = strings.TrimSpace(body.SalesmanID)
		if body.SalesmanID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "salesman_id is required")
		}
		if body.Quantity < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must be at least 1")
		}
		if body.Price < 0 || body.TotalAmount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price and total_amount cannot be negative")
		}

		date := strings.TrimSpace(body.Date)
		if date == "" {
			date = time.Now().Format("2006-01-02")
		} else if _, err := time.Parse("2006-01-02", date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		sale := models.Sale{
			SalesmanID:   body.SalesmanID,
			SalesmanName: strings.TrimSpace(body.SalesmanName),
			Date:         date,
			Brand:        strings.TrimSpace(body.Brand),
			ItemCode:     strings.TrimSpace(body.ItemCode),
			Quantity:     body.Quantity,
			Price:        body.Price,
			TotalAmount:  body.TotalAmount,
		}
		if sale.TotalAmount == 0 {
			sale.TotalAmount = float64(sale.Quantity) * sale.Price
		}

		if err := database.DB.Create(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not record sale")
		}

		return c.Status(fiber.StatusCreated).JSON(sale)
	}
}

// GET /api/sales?salesman_id=S1&from=2024-01-01&to=2024-01-31&brand=X
// ISO date strings order lexicographically, so range filters compare directly.
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Sale{})

		if role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole); role == models.RoleSalesman {
			sid := auth.SalesmanIDFromContext(c)
			if sid == nil {
				return fiber.NewError(fiber.StatusForbidden, "No salesman id on this account")
			}
			dbq = dbq.Where("salesman_id = ?", *sid)
		} else if salesmanID := c.Query("salesman_id"); salesmanID != "" {
			dbq = dbq.Where("salesman_id = ?", salesmanID)
		}

		if from := c.Query("from"); from != "" {
			if _, err := time.Parse("2006-01-02", from); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if to := c.Query("to"); to != "" {
			if _, err := time.Parse("2006-01-02", to); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
			}
			dbq = dbq.Where("date <= ?", to)
		}
		if brand := c.Query("brand"); brand != "" {
			dbq = dbq.Where("brand = ?", brand)
		}

		var salesRows []models.Sale
		if err := dbq.Order("date asc, id asc").Find(&salesRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list sales")
		}

		return c.JSON(salesRows)
	}
}
