package leave

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"salestrack-backend/internal/audit"
	"salestrack-backend/internal/auth"
	"salestrack-backend/internal/config"
	"salestrack-backend/internal/database"
	"salestrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateLeaveRequest struct {
	SalesmanID   string `json:"salesman_id"`
	SalesmanName string `json:"salesman_name"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"` // defaults to from_date
	Reason       string `json:"reason"`
	IsCritical   bool   `json:"is_critical"`
	LeaveType    string `json:"leave_type"` // defaults to "other"
}

// POST /api/leaves
// The duplicate pre-check gives a friendly message; the unique index on
// (salesman_id, from_date) is what actually holds under concurrent requests.
func CreateLeaveHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLeaveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole); role == models.RoleSalesman {
			if sid := auth.SalesmanIDFromContext(c); sid != nil {
				body.SalesmanID = *sid
			}
		}

		body.SalesmanID = strings.TrimSpace(body.SalesmanID)
		if body.SalesmanID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "salesman_id is required")
		}
		if _, err := time.Parse(dateLayout, body.FromDate); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "from_date must be 'YYYY-MM-DD'")
		}
		if body.ToDate == "" {
			body.ToDate = body.FromDate
		}
		if _, err := time.Parse(dateLayout, body.ToDate); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "to_date must be 'YYYY-MM-DD'")
		}
		if body.ToDate < body.FromDate {
			return fiber.NewError(fiber.StatusBadRequest, "to_date cannot be before from_date")
		}

		leaveType := models.LeaveType(strings.ToLower(strings.TrimSpace(body.LeaveType)))
		switch leaveType {
		case models.LeaveTypeSick, models.LeaveTypePersonal, models.LeaveTypeVacation, models.LeaveTypeEmergency, models.LeaveTypeOther:
		case "":
			leaveType = models.LeaveTypeOther
		default:
			return fiber.NewError(fiber.StatusBadRequest, "leave_type must be one of sick, personal, vacation, emergency, other")
		}

		var count int64
		database.DB.Model(&models.Leave{}).
			Where("salesman_id = ? AND from_date = ?", body.SalesmanID, body.FromDate).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "A leave application already exists for this salesman and start date")
		}

		l := models.Leave{
			SalesmanID:   body.SalesmanID,
			SalesmanName: strings.TrimSpace(body.SalesmanName),
			FromDate:     body.FromDate,
			ToDate:       body.ToDate,
			Date:         body.FromDate,
			Reason:       strings.TrimSpace(body.Reason),
			Status:       cfg.LeaveDefaultStatus,
			IsCritical:   body.IsCritical,
			LeaveType:    leaveType,
		}

		if err := database.DB.Create(&l).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent request won the race
				return fiber.NewError(fiber.StatusConflict, "A leave application already exists for this salesman and start date")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create leave application")
		}

		return c.Status(fiber.StatusCreated).JSON(l)
	}
}

// GET /api/leaves?salesman_id=S1&status=pending&year=2024
func ListLeavesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Leave{})

		if role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole); role == models.RoleSalesman {
			sid := auth.SalesmanIDFromContext(c)
			if sid == nil {
				return fiber.NewError(fiber.StatusForbidden, "No salesman id on this account")
			}
			dbq = dbq.Where("salesman_id = ?", *sid)
		} else if salesmanID := c.Query("salesman_id"); salesmanID != "" {
			dbq = dbq.Where("salesman_id = ?", salesmanID)
		}

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", strings.ToLower(status))
		}
		if year := c.Query("year"); year != "" {
			if _, err := strconv.Atoi(year); err != nil || len(year) != 4 {
				return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
			}
			dbq = dbq.Where("from_date LIKE ?", year+"-%")
		}

		var leaves []models.Leave
		if err := dbq.Order("from_date desc, id desc").Find(&leaves).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list leave applications")
		}

		return c.JSON(leaves)
	}
}

// PUT /api/leaves/:id/approve
func ApproveLeaveHandler() fiber.Handler {
	return statusChangeHandler(models.LeaveStatusApproved)
}

// PUT /api/leaves/:id/reject
func RejectLeaveHandler() fiber.Handler {
	return statusChangeHandler(models.LeaveStatusRejected)
}

type statusChangeRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

func statusChangeHandler(target models.LeaveStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid leave id")
		}

		var body statusChangeRequest
		if target == models.LeaveStatusRejected {
			if err := c.BodyParser(&body); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
			}
			if strings.TrimSpace(body.RejectionReason) == "" {
				return fiber.NewError(fiber.StatusBadRequest, "rejection_reason is required")
			}
		}

		var l models.Leave
		if err := database.DB.First(&l, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Leave application not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load leave application")
		}

		changed, err := applyTransition(&l, target, adminDisplayName(c), strings.TrimSpace(body.RejectionReason), time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusConflict, "Status cannot change: "+err.Error())
		}
		if !changed {
			// Re-applying the current status is a no-op
			return c.JSON(l)
		}

		if err := database.DB.Save(&l).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update leave application")
		}

		audit.WriteLogFromContext(c, audit.LogOptions{
			EntityType:  "leave",
			EntityID:    l.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Leave %d for %s marked %s", l.ID, l.SalesmanID, l.Status),
			After:       l,
		})

		return c.JSON(l)
	}
}

// adminDisplayName resolves the acting admin's name, falling back to the
// token username.
func adminDisplayName(c *fiber.Ctx) string {
	if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
		var user models.User
		if err := database.DB.First(&user, userID).Error; err == nil {
			return user.Name
		}
	}
	if username, ok := c.Locals(auth.CtxUsernameKey).(string); ok {
		return username
	}
	return ""
}

type BalanceResponse struct {
	SalesmanID     string `json:"salesman_id"`
	Year           int    `json:"year"`
	ApprovedLeaves int    `json:"approved_leaves"`
	TotalDays      int    `json:"total_days"`
}

// GET /api/leaves/balance?salesman_id=S1&year=2024
// The per-salesman-per-year set is small and the inclusive span needs
// calendar arithmetic, so this one sums in memory instead of in SQL.
func BalanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		salesmanID := c.Query("salesman_id")
		if role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole); role == models.RoleSalesman {
			sid := auth.SalesmanIDFromContext(c)
			if sid == nil {
				return fiber.NewError(fiber.StatusForbidden, "No salesman id on this account")
			}
			salesmanID = *sid
		}
		if salesmanID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "salesman_id is required")
		}

		year := time.Now().Year()
		if y := c.Query("year"); y != "" {
			parsed, err := strconv.Atoi(y)
			if err != nil || parsed < 2000 || parsed > 2100 {
				return fiber.NewError(fiber.StatusBadRequest, "year is invalid")
			}
			year = parsed
		}

		var leaves []models.Leave
		if err := database.DB.
			Where("salesman_id = ? AND status = ? AND from_date LIKE ?",
				salesmanID, models.LeaveStatusApproved, fmt.Sprintf("%d-%%", year)).
			Find(&leaves).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute leave balance")
		}

		resp := BalanceResponse{SalesmanID: salesmanID, Year: year, ApprovedLeaves: len(leaves)}
		for _, l := range leaves {
			resp.TotalDays += DurationDays(l.FromDate, l.ToDate)
		}

		return c.JSON(resp)
	}
}
