// Package base holds the generic controller shared by every catalog
// resource: create, update, soft delete, restore, hard delete and the
// datatable-backed listings.
package base

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/institucion-api/forms"
	"github.com/sahilchouksey/institucion-api/model"
	"github.com/sahilchouksey/institucion-api/serializers"
	"github.com/sahilchouksey/institucion-api/utils/query"
	"github.com/sahilchouksey/institucion-api/utils/response"
	"github.com/sahilchouksey/institucion-api/utils/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Conflict is a business rule refusal, answered with 400 and its message.
type Conflict struct {
	Message string
}

func (e *Conflict) Error() string {
	return e.Message
}

// Config describes one resource to the generic ViewSet.
type Config[T any, I any] struct {
	// Name is the entity name used in not-found messages, e.g. "Modalidad"
	Name string
	// Resource is the audit resource name, e.g. "modalidades"
	Resource string

	NewForm    func(input I, instance *T) forms.Form[T]
	FillFrom   func(input *I, instance *T)
	Serializer serializers.Serializer[T]
	FormFields []forms.FieldMeta

	SearchFields []string
	Joins        []query.Join
	Preloads     []string

	// Filters extracts entity-specific datatable filters from the request.
	Filters func(c *fiber.Ctx) (map[string]interface{}, error)

	// BeforeDelete and BeforeHardDelete may refuse the operation with a
	// *Conflict. They run inside the delete transaction.
	BeforeDelete     func(tx *gorm.DB, instance *T) error
	BeforeHardDelete func(tx *gorm.DB, instance *T) error
}

// ViewSet implements the generic request handlers for one entity type.
type ViewSet[T any, PT interface {
	*T
	model.Entity
}, I any] struct {
	db           *gorm.DB
	log          *zap.Logger
	validator    *validation.Validator
	cfg          Config[T, I]
	defaultLimit int
}

// NewViewSet creates the handlers for a resource.
func NewViewSet[T any, PT interface {
	*T
	model.Entity
}, I any](db *gorm.DB, log *zap.Logger, defaultLimit int, cfg Config[T, I]) *ViewSet[T, PT, I] {
	if log == nil {
		log = zap.NewNop()
	}
	return &ViewSet[T, PT, I]{
		db:           db,
		log:          log.With(zap.String("resource", cfg.Resource)),
		validator:    validation.NewValidator(),
		cfg:          cfg,
		defaultLimit: defaultLimit,
	}
}

// DB returns the store the view set works on
func (v *ViewSet[T, PT, I]) DB() *gorm.DB {
	return v.db
}

// Logger returns the resource-scoped logger
func (v *ViewSet[T, PT, I]) Logger() *zap.Logger {
	return v.log
}

func (v *ViewSet[T, PT, I]) notFoundMessage() string {
	return fmt.Sprintf("No %s matches the given query.", v.cfg.Name)
}

// object loads the record named by the :id param in the active scope,
// writing the 404 itself when it does not resolve.
func (v *ViewSet[T, PT, I]) object(c *fiber.Ctx, scope model.Scope) (PT, bool, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, false, v.notFound(c, scope)
	}

	instance, err := query.FindByID[T, PT](v.db.WithContext(c.UserContext()), scope, id, v.cfg.Preloads...)
	if errors.Is(err, query.ErrNotFound) {
		return nil, false, v.notFound(c, scope)
	}
	if err != nil {
		return nil, false, v.internalError(c, "Failed to fetch "+v.cfg.Resource, err)
	}
	return instance, true, nil
}

// notFound answers a missing record: default lookups use a detail body,
// the inactive-aware actions an error body.
func (v *ViewSet[T, PT, I]) notFound(c *fiber.Ctx, scope model.Scope) error {
	if scope == model.ScopeAll {
		return response.NotFound(c, v.notFoundMessage())
	}
	return response.NotFoundDetail(c, v.notFoundMessage())
}

func (v *ViewSet[T, PT, I]) internalError(c *fiber.Ctx, message string, err error) error {
	v.log.Error(message,
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	return response.InternalServerError(c, message)
}

// Retrieve handles GET /:id
func (v *ViewSet[T, PT, I]) Retrieve(c *fiber.Ctx) error {
	instance, ok, err := v.object(c, model.ScopeActive)
	if !ok {
		return err
	}
	return response.Success(c, v.cfg.Serializer.Serialize(instance, serializers.ViewDetail))
}

// Create handles POST /
func (v *ViewSet[T, PT, I]) Create(c *fiber.Ctx) error {
	var input I
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	form := v.cfg.NewForm(input, nil)
	return v.saveForm(c, form, model.AuditCreate, fiber.StatusCreated)
}

// Update handles PUT /:id
func (v *ViewSet[T, PT, I]) Update(c *fiber.Ctx) error {
	return v.update(c, false)
}

// PartialUpdate handles PATCH /:id. Missing fields keep their stored value.
func (v *ViewSet[T, PT, I]) PartialUpdate(c *fiber.Ctx) error {
	return v.update(c, true)
}

func (v *ViewSet[T, PT, I]) update(c *fiber.Ctx, partial bool) error {
	instance, ok, err := v.object(c, model.ScopeActive)
	if !ok {
		return err
	}

	var input I
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if partial && v.cfg.FillFrom != nil {
		v.cfg.FillFrom(&input, (*T)(instance))
	}

	form := v.cfg.NewForm(input, (*T)(instance))
	return v.saveForm(c, form, model.AuditUpdate, fiber.StatusOK)
}

// saveForm validates, then saves inside one transaction with the audit row.
func (v *ViewSet[T, PT, I]) saveForm(c *fiber.Ctx, form forms.Form[T], action string, status int) error {
	ctx := c.UserContext()

	result, err := form.Validate(ctx)
	if err != nil {
		return v.internalError(c, "Failed to validate "+v.cfg.Resource, err)
	}
	if !result.IsValid() {
		v.log.Debug("validation failed",
			zap.String("action", action),
			zap.Strings("errors", result.Errors.List()),
		)
		return response.ValidationError(c, result.Errors)
	}

	saved, err := form.Save(ctx, v.auditHook(c, action))
	if err != nil {
		return v.internalError(c, "Failed to save "+v.cfg.Resource, err)
	}

	out := v.cfg.Serializer.Serialize(saved, serializers.ViewDefault)
	if status == fiber.StatusCreated {
		return response.Created(c, out)
	}
	return response.Success(c, out)
}

// Destroy handles DELETE /:id as a soft delete
func (v *ViewSet[T, PT, I]) Destroy(c *fiber.Ctx) error {
	instance, ok, err := v.object(c, model.ScopeActive)
	if !ok {
		return err
	}

	err = v.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if v.cfg.BeforeDelete != nil {
			if err := v.cfg.BeforeDelete(tx, (*T)(instance)); err != nil {
				return err
			}
		}
		if err := model.SoftDelete(tx, instance); err != nil {
			return err
		}
		return v.writeAudit(tx, c, model.AuditDelete, instance, estadoChange(true, false))
	})
	if err != nil {
		return v.writeError(c, "Failed to delete "+v.cfg.Resource, err)
	}

	return response.NoContent(c)
}

// Restore handles PATCH /:id/restore
func (v *ViewSet[T, PT, I]) Restore(c *fiber.Ctx) error {
	instance, ok, err := v.object(c, model.ScopeAll)
	if !ok {
		return err
	}

	wasActive := instance.IsActive()
	err = v.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := model.Restore(tx, instance); err != nil {
			return err
		}
		return v.writeAudit(tx, c, model.AuditRestore, instance, estadoChange(wasActive, true))
	})
	if err != nil {
		return v.writeError(c, "Failed to restore "+v.cfg.Resource, err)
	}

	return response.Success(c, v.cfg.Serializer.Serialize(instance, serializers.ViewDefault))
}

// HardDelete handles DELETE /:id/hard_delete
func (v *ViewSet[T, PT, I]) HardDelete(c *fiber.Ctx) error {
	instance, ok, err := v.object(c, model.ScopeAll)
	if !ok {
		return err
	}

	err = v.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if v.cfg.BeforeHardDelete != nil {
			if err := v.cfg.BeforeHardDelete(tx, (*T)(instance)); err != nil {
				return err
			}
		}
		if err := model.HardDelete(tx, instance); err != nil {
			return err
		}
		return v.writeAudit(tx, c, model.AuditHardDelete, instance, nil)
	})
	if err != nil {
		return v.writeError(c, "Failed to delete "+v.cfg.Resource, err)
	}

	return response.NoContent(c)
}

// writeError maps a transaction failure: a *Conflict is a 400, anything
// else a 500.
func (v *ViewSet[T, PT, I]) writeError(c *fiber.Ctx, message string, err error) error {
	var conflict *Conflict
	if errors.As(err, &conflict) {
		return response.BadRequest(c, conflict.Message)
	}
	return v.internalError(c, message, err)
}

// Form handles GET /form
func (v *ViewSet[T, PT, I]) Form(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{"fields": v.cfg.FormFields})
}

func estadoChange(old, new bool) map[string]forms.Change {
	return map[string]forms.Change{"estado": {Old: old, New: new}}
}

// splitFields parses the fields query parameter
func splitFields(raw string) []string {
	if raw == "" {
		return nil
	}
	var fields []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
