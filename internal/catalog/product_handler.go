package catalog

import (
	"errors"
	"strings"

	"salestrack-backend/internal/database"
	"salestrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Brand       string  `json:"brand"`
	ItemCode    string  `json:"item_code"`
	ModelNumber string  `json:"model_number"`
	EAN         string  `json:"ean"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.ItemCode = strings.TrimSpace(body.ItemCode)
		if body.Brand == "" && body.ItemCode == "" && body.Description == "" {
			return fiber.NewError(fiber.StatusBadRequest, "At least one of brand, item_code or description is required")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Price cannot be negative")
		}

		// Item code is the catalog dedup key when present
		if body.ItemCode != "" {
			var count int64
			database.DB.Model(&models.Product{}).Where("item_code = ?", body.ItemCode).Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "A product with this item code already exists")
			}
		}

		product := models.Product{
			Brand:       strings.TrimSpace(body.Brand),
			ItemCode:    body.ItemCode,
			ModelNumber: strings.TrimSpace(body.ModelNumber),
			EAN:         strings.TrimSpace(body.EAN),
			Description: strings.TrimSpace(body.Description),
			Price:       body.Price,
			Stock:       body.Stock,
			Category:    strings.TrimSpace(body.Category),
			Status:      strings.ToLower(strings.TrimSpace(body.Status)),
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}

		return c.Status(fiber.StatusCreated).JSON(product)
	}
}

// GET /api/products?brand=X&item_code=Y
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		if brand := c.Query("brand"); brand != "" {
			dbq = dbq.Where("brand = ?", brand)
		}
		if code := c.Query("item_code"); code != "" {
			dbq = dbq.Where("item_code = ?", code)
		}

		var products []models.Product
		if err := dbq.Order("brand asc, item_code asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		return c.JSON(products)
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
		}

		var product models.Product
		if err := database.DB.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load product")
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Price cannot be negative")
		}

		body.ItemCode = strings.TrimSpace(body.ItemCode)
		if body.ItemCode != "" && body.ItemCode != product.ItemCode {
			var count int64
			database.DB.Model(&models.Product{}).
				Where("item_code = ? AND id <> ?", body.ItemCode, product.ID).Count(&count)
			if count > 0 {
				return fiber.NewError(fiber.StatusConflict, "A product with this item code already exists")
			}
		}

		product.Brand = strings.TrimSpace(body.Brand)
		product.ItemCode = body.ItemCode
		product.ModelNumber = strings.TrimSpace(body.ModelNumber)
		product.EAN = strings.TrimSpace(body.EAN)
		product.Description = strings.TrimSpace(body.Description)
		product.Price = body.Price
		product.Stock = body.Stock
		product.Category = strings.TrimSpace(body.Category)
		product.Status = strings.ToLower(strings.TrimSpace(body.Status))

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}

		return c.JSON(product)
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid product id")
		}

		res := database.DB.Delete(&models.Product{}, id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
