package serializers

import "github.com/sahilchouksey/institucion-api/model"

// ModalidadFull is the default Modalidad representation.
type ModalidadFull struct {
	ID        uint    `json:"id"`
	Display   string  `json:"display"`
	IDDisplay string  `json:"id_display"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
	Nombre    string  `json:"nombre"`
	Estado    bool    `json:"estado"`
}

// ModalidadList is the listing representation.
type ModalidadList struct {
	ID        uint    `json:"id"`
	CreatedAt *string `json:"created_at"`
	Nombre    string  `json:"nombre"`
	Estado    bool    `json:"estado"`
}

// ModalidadDetail is the retrieve representation.
type ModalidadDetail struct {
	ID        uint    `json:"id"`
	CreatedAt *string `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
	Nombre    string  `json:"nombre"`
	Estado    bool    `json:"estado"`
}

type ModalidadSerializer struct {
	clock Clock
}

func NewModalidadSerializer(clock Clock) *ModalidadSerializer {
	return &ModalidadSerializer{clock: clock}
}

func (s *ModalidadSerializer) Serialize(m *model.Modalidad, view View) interface{} {
	switch view {
	case ViewList:
		return ModalidadList{
			ID:        m.ID,
			CreatedAt: s.clock.Format(m.CreatedAt),
			Nombre:    m.Nombre,
			Estado:    m.Estado,
		}
	case ViewDetail:
		return ModalidadDetail{
			ID:        m.ID,
			CreatedAt: s.clock.Format(m.CreatedAt),
			UpdatedAt: s.clock.Format(m.UpdatedAt),
			Nombre:    m.Nombre,
			Estado:    m.Estado,
		}
	default:
		return s.Full(m)
	}
}

// Full is the default view with its concrete type, for embedding.
func (s *ModalidadSerializer) Full(m *model.Modalidad) ModalidadFull {
	return ModalidadFull{
		ID:        m.ID,
		Display:   Display(m),
		IDDisplay: IDDisplay(m),
		CreatedAt: s.clock.Format(m.CreatedAt),
		UpdatedAt: s.clock.Format(m.UpdatedAt),
		Nombre:    m.Nombre,
		Estado:    m.Estado,
	}
}
