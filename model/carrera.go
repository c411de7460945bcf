package model

import "fmt"

// Carrera is an academic program offered under exactly one Modalidad.
// Names are unique across all modalidades, not per modalidad.
type Carrera struct {
	BaseModel
	Nombre      string `gorm:"type:varchar(150);not null;uniqueIndex" json:"nombre"`
	ModalidadID uint   `gorm:"not null;index" json:"modalidad"`

	// Relationships
	Modalidad Modalidad `gorm:"foreignKey:ModalidadID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (Carrera) TableName() string {
	return "carreras"
}

// DefaultOrder lists carreras alphabetically
func (Carrera) DefaultOrder() []string {
	return []string{"nombre"}
}

func (c *Carrera) String() string {
	return fmt.Sprintf("%s - %s", c.Nombre, c.Modalidad.Nombre)
}
