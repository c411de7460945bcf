// Package forms validates and normalizes catalog input before anything is
// written. A form never returns validation problems as Go errors: Validate
// yields a Result that is either Valid (with the cleaned record) or Invalid
// (with per-field messages).
package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sahilchouksey/institucion-api/model"
	"github.com/sahilchouksey/institucion-api/utils/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NonFieldErrors is the key for errors that involve more than one field.
const NonFieldErrors = "__all__"

var ErrInvalidForm = errors.New("el formulario contiene errores y no puede ser guardado")

// Errors maps a field name to its messages.
type Errors map[string][]string

// Add appends a message to a field
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Has reports whether a field has at least one message
func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

// Any reports whether there is any message at all
func (e Errors) Any() bool {
	for _, msgs := range e {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

// List flattens the errors, prefixing field errors with their field name.
func (e Errors) List() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []string
	for _, f := range fields {
		for _, msg := range e[f] {
			if f == NonFieldErrors {
				out = append(out, msg)
			} else {
				out = append(out, f+": "+msg)
			}
		}
	}
	return out
}

// Result is the outcome of Validate.
type Result[T any] struct {
	Instance *T
	Errors   Errors
}

// Valid wraps a cleaned record
func Valid[T any](instance *T) Result[T] {
	return Result[T]{Instance: instance}
}

// Invalid wraps validation messages
func Invalid[T any](errs Errors) Result[T] {
	return Result[T]{Errors: errs}
}

// IsValid reports whether the form produced a record
func (r Result[T]) IsValid() bool {
	return r.Instance != nil && !r.Errors.Any()
}

// Change is an old/new pair for a field touched by an update.
type Change struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// Hook runs inside the save transaction after the row is written.
type Hook func(tx *gorm.DB, entity model.Entity, changes map[string]Change) error

// FieldMeta describes a form field for clients building their own form.
type FieldMeta struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Required  bool   `json:"required"`
	HelpText  string `json:"help_text"`
	MaxLength int    `json:"max_length,omitempty"`
	Widget    string `json:"widget_type"`
}

// Form is implemented by every entity form.
type Form[T any] interface {
	Validate(ctx context.Context) (Result[T], error)
	Save(ctx context.Context, hooks ...Hook) (*T, error)
	IsCreating() bool
}

// Base carries what every form shares: the store, the validator and the
// record being edited (nil when creating).
type Base[T any] struct {
	db        *gorm.DB
	validator *validation.Validator
	instance  *T
	result    *Result[T]
	changes   map[string]Change
}

func newBase[T any](db *gorm.DB, v *validation.Validator, instance *T) Base[T] {
	if v == nil {
		v = validation.NewValidator()
	}
	return Base[T]{db: db, validator: v, instance: instance}
}

// IsCreating reports whether the form is not bound to a stored record
func (b *Base[T]) IsCreating() bool {
	return b.instance == nil
}

// IsUpdating reports whether the form is bound to a stored record
func (b *Base[T]) IsUpdating() bool {
	return b.instance != nil
}

// ChangedFields returns the fields an update touched. Empty when creating.
func (b *Base[T]) ChangedFields() map[string]Change {
	return b.changes
}

func (b *Base[T]) trackChange(field string, old, new interface{}) {
	if b.IsCreating() || old == new {
		return
	}
	if b.changes == nil {
		b.changes = make(map[string]Change)
	}
	b.changes[field] = Change{Old: old, New: new}
}

// cleanNombre trims, normalizes and checks a name. It returns the cleaned
// value and whether it can be used by later checks.
func (b *Base[T]) cleanNombre(raw *string, errs Errors) (string, bool) {
	if raw == nil {
		errs.Add("nombre", validation.MsgRequired)
		return "", false
	}
	nombre := validation.SanitizeString(*raw)
	if nombre == "" {
		errs.Add("nombre", validation.MsgNombreVacio)
		return "", false
	}
	nombre = validation.TitleCase(nombre)
	if msgs := b.validator.NombreErrors(nombre); len(msgs) > 0 {
		for _, msg := range msgs {
			errs.Add("nombre", msg)
		}
		return nombre, false
	}
	return nombre, true
}

// saveWithTransaction writes entity and runs hooks atomically.
func (b *Base[T]) saveWithTransaction(ctx context.Context, entity model.Entity, hooks []Hook) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(entity).Error; err != nil {
			return fmt.Errorf("save %s: %w", entity.TableName(), err)
		}
		for _, hook := range hooks {
			if err := hook(tx, entity, b.changes); err != nil {
				return err
			}
		}
		return nil
	})
}

// ParseID converts a JSON or form value into a primary key.
func ParseID(v interface{}) (uint, bool) {
	switch id := v.(type) {
	case float64:
		if id <= 0 || id != float64(uint(id)) {
			return 0, false
		}
		return uint(id), true
	case json.Number:
		n, err := strconv.ParseUint(id.String(), 10, 64)
		return uint(n), err == nil && n > 0
	case string:
		n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
		return uint(n), err == nil && n > 0
	case int:
		return uint(id), id > 0
	case uint:
		return id, id > 0
	}
	return 0, false
}

// isBlank reports a missing reference value
func isBlank(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}
