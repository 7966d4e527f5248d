package audit

import (
	"encoding/json"
	"fmt"
	"log"

	"salestrack-backend/internal/auth"
	"salestrack-backend/internal/database"
	"salestrack-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb columns want the JSON literal "null", not an empty string
	afterStr := "null"
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("could not write audit log: %w", err)
	}
	return nil
}

// WriteLogFromContext fills in the acting user from the request token. Audit
// failures are logged, never surfaced to the caller.
func WriteLogFromContext(c *fiber.Ctx, opts LogOptions) {
	if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
		opts.UserID = userID
	}
	if username, ok := c.Locals(auth.CtxUsernameKey).(string); ok {
		opts.UserName = username
	}
	if err := WriteLog(opts); err != nil {
		log.Printf("audit: %v", err)
	}
}
