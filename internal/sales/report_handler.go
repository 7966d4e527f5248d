package sales

import (
	"time"

	"salestrack-backend/internal/database"
	"salestrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Legacy rows were stored without a total, so every aggregate falls back to
// quantity*price inside the query.
const totalExpr = "CASE WHEN total_amount > 0 THEN total_amount ELSE quantity * price END"

type SummaryResponse struct {
	SalesmanID  string  `json:"salesman_id,omitempty"`
	From        string  `json:"from,omitempty"`
	To          string  `json:"to,omitempty"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
}

// GET /api/reports/summary?salesman_id=S1&from=2024-01-01&to=2024-01-31
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		salesmanID := c.Query("salesman_id")
		from := c.Query("from")
		to := c.Query("to")

		dbq := database.DB.Model(&models.Sale{})
		if salesmanID != "" {
			dbq = dbq.Where("salesman_id = ?", salesmanID)
		}
		if from != "" {
			if _, err := time.Parse("2006-01-02", from); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from date is invalid")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if to != "" {
			if _, err := time.Parse("2006-01-02", to); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to date is invalid")
			}
			dbq = dbq.Where("date <= ?", to)
		}

		var row struct {
			Total float64 `gorm:"column:total"`
			Count int64   `gorm:"column:count"`
		}
		if err := dbq.Select("COALESCE(SUM(" + totalExpr + "), 0) as total, COUNT(*) as count").
			Scan(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute summary")
		}

		return c.JSON(SummaryResponse{
			SalesmanID:  salesmanID,
			From:        from,
			To:          to,
			TotalAmount: row.Total,
			Count:       row.Count,
		})
	}
}

type BrandTotals struct {
	Brand         string  `gorm:"column:brand" json:"brand"`
	TotalSales    float64 `gorm:"column:total_sales" json:"totalSales"`
	TotalQuantity int64   `gorm:"column:total_quantity" json:"totalQuantity"`
	Transactions  int64   `gorm:"column:transactions" json:"transactions"`
}

// GET /api/reports/by-brand
func ByBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []BrandTotals
		if err := database.DB.Model(&models.Sale{}).
			Select("brand, SUM(" + totalExpr + ") as total_sales, SUM(quantity) as total_quantity, COUNT(*) as transactions").
			Group("brand").
			Order("total_sales desc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute brand totals")
		}

		return c.JSON(rows)
	}
}

type SalesmanTotals struct {
	SalesmanID    string  `gorm:"column:salesman_id" json:"salesmanId"`
	SalesmanName  string  `gorm:"column:salesman_name" json:"salesmanName"`
	TotalSales    float64 `gorm:"column:total_sales" json:"totalSales"`
	TotalQuantity int64   `gorm:"column:total_quantity" json:"totalQuantity"`
	Transactions  int64   `gorm:"column:transactions" json:"transactions"`
}

// GET /api/reports/by-salesman
// MIN(salesman_name) carries a deterministic display name through the group.
func BySalesmanHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []SalesmanTotals
		if err := database.DB.Model(&models.Sale{}).
			Select("salesman_id, MIN(salesman_name) as salesman_name, SUM(" + totalExpr + ") as total_sales, SUM(quantity) as total_quantity, COUNT(*) as transactions").
			Group("salesman_id").
			Order("total_sales desc").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute salesman totals")
		}

		return c.JSON(rows)
	}
}

// GET /api/reports/monthly?month=2024-02
// The date column is a "YYYY-MM-DD" string precisely so a month is a prefix.
func MonthlyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		month := c.Query("month")
		if _, err := time.Parse("2006-01", month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be 'YYYY-MM'")
		}

		dbq := database.DB.Model(&models.Sale{}).Where("date LIKE ?", month+"%")
		if salesmanID := c.Query("salesman_id"); salesmanID != "" {
			dbq = dbq.Where("salesman_id = ?", salesmanID)
		}

		var row struct {
			Total float64 `gorm:"column:total"`
			Count int64   `gorm:"column:count"`
		}
		if err := dbq.Select("COALESCE(SUM(" + totalExpr + "), 0) as total, COUNT(*) as count").
			Scan(&row).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute monthly totals")
		}

		return c.JSON(fiber.Map{
			"month":        month,
			"total_amount": row.Total,
			"count":        row.Count,
		})
	}
}
