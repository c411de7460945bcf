package model

import (
	"time"

	"gorm.io/gorm"
)

// Scope selects which rows a query may see.
// Every lookup takes one explicitly; there is no implicit default filter.
type Scope int

const (
	// ScopeActive only sees rows with estado = true
	ScopeActive Scope = iota
	// ScopeAll sees active and inactive rows
	ScopeAll
)

// Apply restricts db to the scope. table qualifies the estado column so the
// scope stays unambiguous once joins are added.
func (s Scope) Apply(db *gorm.DB, table string) *gorm.DB {
	if s == ScopeAll {
		return db
	}
	if table == "" {
		return db.Where("estado = ?", true)
	}
	return db.Where(table+".estado = ?", true)
}

func (s Scope) String() string {
	if s == ScopeAll {
		return "all"
	}
	return "active"
}

// BaseModel carries the soft-delete flag and system timestamps shared by
// every catalog entity.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Estado    bool      `gorm:"not null;default:true;index" json:"estado"`
}

// GetID returns the primary key
func (b *BaseModel) GetID() uint {
	return b.ID
}

// IsActive reports whether the row is visible in the active scope
func (b *BaseModel) IsActive() bool {
	return b.Estado
}

// SetEstado flips the soft-delete flag in memory
func (b *BaseModel) SetEstado(estado bool) {
	b.Estado = estado
}

// Entity is implemented by every soft-deletable catalog record.
type Entity interface {
	TableName() string
	GetID() uint
	IsActive() bool
	SetEstado(estado bool)
	String() string
}

// Ordered is implemented by entities that declare a default listing order.
type Ordered interface {
	DefaultOrder() []string
}

// SoftDelete flags the row inactive. Only estado and updated_at are written,
// so name rules are not re-run on the stored record.
func SoftDelete(tx *gorm.DB, entity Entity) error {
	return setEstado(tx, entity, false)
}

// Restore flags an inactive row active again.
func Restore(tx *gorm.DB, entity Entity) error {
	return setEstado(tx, entity, true)
}

// HardDelete removes the row permanently.
func HardDelete(tx *gorm.DB, entity Entity) error {
	return tx.Delete(entity).Error
}

func setEstado(tx *gorm.DB, entity Entity, estado bool) error {
	if entity.GetID() == 0 {
		return gorm.ErrMissingWhereClause
	}
	if err := tx.Table(entity.TableName()).Where("id = ?", entity.GetID()).Updates(map[string]interface{}{
		"estado":     estado,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return err
	}
	entity.SetEstado(estado)
	return nil
}
