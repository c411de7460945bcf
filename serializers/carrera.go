package serializers

import "github.com/sahilchouksey/institucion-api/model"

// CarreraFull is the default Carrera representation; modalidad is the id.
type CarreraFull struct {
	ID              uint    `json:"id"`
	Display         string  `json:"display"`
	IDDisplay       string  `json:"id_display"`
	CreatedAt       *string `json:"created_at"`
	UpdatedAt       *string `json:"updated_at"`
	ModalidadNombre string  `json:"modalidad_nombre"`
	Nombre          string  `json:"nombre"`
	Estado          bool    `json:"estado"`
	Modalidad       uint    `json:"modalidad"`
}

// CarreraList is the listing representation.
type CarreraList struct {
	ID              uint    `json:"id"`
	CreatedAt       *string `json:"created_at"`
	ModalidadNombre string  `json:"modalidad_nombre"`
	Nombre          string  `json:"nombre"`
	Estado          bool    `json:"estado"`
}

// CarreraDetail is the retrieve representation with the modalidad expanded.
type CarreraDetail struct {
	ID        uint          `json:"id"`
	CreatedAt *string       `json:"created_at"`
	UpdatedAt *string       `json:"updated_at"`
	Nombre    string        `json:"nombre"`
	Estado    bool          `json:"estado"`
	Modalidad ModalidadFull `json:"modalidad"`
}

type CarreraSerializer struct {
	clock     Clock
	modalidad *ModalidadSerializer
}

func NewCarreraSerializer(clock Clock) *CarreraSerializer {
	return &CarreraSerializer{clock: clock, modalidad: NewModalidadSerializer(clock)}
}

// Serialize expects c.Modalidad to be loaded.
func (s *CarreraSerializer) Serialize(c *model.Carrera, view View) interface{} {
	switch view {
	case ViewList:
		return CarreraList{
			ID:              c.ID,
			CreatedAt:       s.clock.Format(c.CreatedAt),
			ModalidadNombre: c.Modalidad.Nombre,
			Nombre:          c.Nombre,
			Estado:          c.Estado,
		}
	case ViewDetail:
		return CarreraDetail{
			ID:        c.ID,
			CreatedAt: s.clock.Format(c.CreatedAt),
			UpdatedAt: s.clock.Format(c.UpdatedAt),
			Nombre:    c.Nombre,
			Estado:    c.Estado,
			Modalidad: s.modalidad.Full(&c.Modalidad),
		}
	default:
		return CarreraFull{
			ID:              c.ID,
			Display:         Display(c),
			IDDisplay:       IDDisplay(c),
			CreatedAt:       s.clock.Format(c.CreatedAt),
			UpdatedAt:       s.clock.Format(c.UpdatedAt),
			ModalidadNombre: c.Modalidad.Nombre,
			Nombre:          c.Nombre,
			Estado:          c.Estado,
			Modalidad:       c.ModalidadID,
		}
	}
}
