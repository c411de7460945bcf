package model

// Modalidad is the delivery mode of an academic program (e.g. Presencial).
type Modalidad struct {
	BaseModel
	Nombre string `gorm:"type:varchar(150);not null;uniqueIndex" json:"nombre"`

	// Relationships
	Carreras []Carrera `gorm:"foreignKey:ModalidadID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// TableName overrides GORM's default pluralisation for Spanish names.
func (Modalidad) TableName() string {
	return "modalidades"
}

// DefaultOrder lists modalidades alphabetically
func (Modalidad) DefaultOrder() []string {
	return []string{"nombre"}
}

func (m *Modalidad) String() string {
	return m.Nombre
}
