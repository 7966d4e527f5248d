package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"salestrack-backend/internal/audit"
	"salestrack-backend/internal/config"
	"salestrack-backend/internal/database"
	"salestrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/imports/products
func ImportProductsHandler() fiber.Handler {
	return importHandler("product_import", func(wb *Workbook) (Summary, error) {
		return ImportProducts(NewGormStore(database.DB), wb)
	})
}

// POST /api/imports/sales
func ImportSalesHandler() fiber.Handler {
	return importHandler("sale_import", func(wb *Workbook) (Summary, error) {
		return ImportSales(NewGormStore(database.DB), wb)
	})
}

// POST /api/imports/leaves
func ImportLeavesHandler(cfg *config.Config) fiber.Handler {
	return importHandler("leave_import", func(wb *Workbook) (Summary, error) {
		return ImportLeaves(NewGormStore(database.DB), wb, cfg.LeaveDefaultStatus)
	})
}

// POST /api/imports/users
func ImportUsersHandler() fiber.Handler {
	return importHandler("user_import", func(wb *Workbook) (Summary, error) {
		return ImportUsers(NewGormStore(database.DB), wb)
	})
}

// importHandler wraps the shared upload plumbing: receive the file, park it
// in a temp path that is removed on every exit, parse, run the policy,
// answer with the summary.
func importHandler(entityType string, run func(*Workbook) (Summary, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File upload failed: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files can be imported")
		}

		tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("import-%d-%s", time.Now().UnixNano(), filepath.Base(fileHeader.Filename)))
		if err := c.SaveFile(fileHeader, tmpPath); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not store uploaded file")
		}
		defer os.Remove(tmpPath)

		wb, err := ReadWorkbook(tmpPath)
		if err != nil {
			if errors.Is(err, ErrEmptyWorkbook) {
				return fiber.NewError(fiber.StatusBadRequest, "Spreadsheet is empty")
			}
			return fiber.NewError(fiber.StatusBadRequest, "Spreadsheet could not be read: "+err.Error())
		}

		sum, err := run(wb)
		if err != nil {
			// Row-level problems are already tallied; this is a batch-level failure
			return fiber.NewError(fiber.StatusInternalServerError,
				fmt.Sprintf("Import failed after %d records: %v", sum.Inserted, err))
		}

		audit.WriteLogFromContext(c, audit.LogOptions{
			EntityType:  entityType,
			Action:      models.AuditActionImport,
			Description: fmt.Sprintf("Imported %s: %d inserted, %d skipped of %d rows", fileHeader.Filename, sum.Inserted, sum.Skipped, sum.TotalRows),
			After:       sum,
		})

		return c.JSON(fiber.Map{
			"success":   true,
			"inserted":  sum.Inserted,
			"skipped":   sum.Skipped,
			"totalRows": sum.TotalRows,
		})
	}
}
