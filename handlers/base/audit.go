package base

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institucion-api/forms"
	"github.com/sahilchouksey/institucion-api/model"
	"github.com/sahilchouksey/institucion-api/utils/middleware"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// auditHook records a form save in the same transaction as the row.
func (v *ViewSet[T, PT, I]) auditHook(c *fiber.Ctx, action string) forms.Hook {
	return func(tx *gorm.DB, entity model.Entity, changes map[string]forms.Change) error {
		if action == model.AuditUpdate && len(changes) == 0 {
			return nil
		}
		return v.writeAudit(tx, c, action, entity, changes)
	}
}

// writeAudit stores one audit row. Creations and hard deletes snapshot the
// record itself instead of a change set.
func (v *ViewSet[T, PT, I]) writeAudit(tx *gorm.DB, c *fiber.Ctx, action string, entity model.Entity, changes map[string]forms.Change) error {
	var payload interface{} = changes
	if changes == nil {
		payload = entity
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	entry := model.AuditLog{
		Action:     action,
		Resource:   v.cfg.Resource,
		ResourceID: entity.GetID(),
		Changes:    datatypes.JSON(raw),
		Actor:      middleware.Actor(c),
		IPAddress:  c.IP(),
		RequestID:  c.GetRespHeader(fiber.HeaderXRequestID),
	}
	return tx.Create(&entry).Error
}
