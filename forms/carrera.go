package forms

import (
	"context"
	"errors"
	"fmt"

	"github.com/sahilchouksey/institucion-api/model"
	"github.com/sahilchouksey/institucion-api/utils/validation"
	"gorm.io/gorm"
)

const (
	msgModalidadRequerida = "Debe seleccionar una modalidad."
	msgModalidadInvalida  = "Escoja una opción válida. Esa opción no está entre las disponibles."
	msgModalidadInactiva  = "La modalidad seleccionada está inactiva."
	msgCarreraDuplicada   = `Ya existe la carrera "%s" con la modalidad "%s". ` +
		"No se puede tener el mismo nombre de carrera con múltiples modalidades."
)

// CarreraInput is the writable part of a Carrera. Modalidad accepts a JSON
// number or a numeric string.
type CarreraInput struct {
	Nombre    *string     `json:"nombre"`
	Modalidad interface{} `json:"modalidad"`
}

// FillFrom copies stored values into fields the client left out.
func (in *CarreraInput) FillFrom(c *model.Carrera) {
	if in.Nombre == nil {
		nombre := c.Nombre
		in.Nombre = &nombre
	}
	if in.Modalidad == nil {
		in.Modalidad = float64(c.ModalidadID)
	}
}

// CarreraForm validates and saves a Carrera.
type CarreraForm struct {
	Base[model.Carrera]
	input CarreraInput
}

// NewCarreraForm binds input to instance. Pass a nil instance to create.
func NewCarreraForm(db *gorm.DB, v *validation.Validator, input CarreraInput, instance *model.Carrera) *CarreraForm {
	return &CarreraForm{
		Base:  newBase(db, v, instance),
		input: input,
	}
}

// CarreraFields describes the Carrera form
func CarreraFields() []FieldMeta {
	return []FieldMeta{
		{
			Name:      "nombre",
			Label:     "Nombre de la Carrera",
			Required:  true,
			HelpText:  "Nombre único de la carrera (mínimo 3 caracteres)",
			MaxLength: validation.NombreMaxLength,
			Widget:    "TextInput",
		},
		{
			Name:     "modalidad",
			Label:    "Modalidad",
			Required: true,
			HelpText: "Seleccione la modalidad a la que pertenece esta carrera",
			Widget:   "Select",
		},
	}
}

// Validate cleans the input. The name must be unique among all carreras
// regardless of modalidad, and the modalidad must exist and be active.
func (f *CarreraForm) Validate(ctx context.Context) (Result[model.Carrera], error) {
	errs := Errors{}
	f.changes = nil

	nombre, nombreOK := f.cleanNombre(f.input.Nombre, errs)

	modalidad, err := f.cleanModalidad(ctx, errs)
	if err != nil {
		return Result[model.Carrera]{}, err
	}

	if nombreOK {
		existing, err := f.carreraConNombre(ctx, nombre)
		if err != nil {
			return Result[model.Carrera]{}, err
		}
		if existing != nil {
			errs.Add(NonFieldErrors, fmt.Sprintf(msgCarreraDuplicada, nombre, existing.Modalidad.Nombre))
		}
	}

	if errs.Any() {
		res := Invalid[model.Carrera](errs)
		f.result = &res
		return res, nil
	}

	cleaned := &model.Carrera{}
	if f.instance != nil {
		copied := *f.instance
		cleaned = &copied
		f.trackChange("nombre", f.instance.Nombre, nombre)
		f.trackChange("modalidad", f.instance.ModalidadID, modalidad.ID)
	} else {
		cleaned.Estado = true
	}
	cleaned.Nombre = nombre
	cleaned.ModalidadID = modalidad.ID
	cleaned.Modalidad = *modalidad

	res := Valid(cleaned)
	f.result = &res
	return res, nil
}

func (f *CarreraForm) cleanModalidad(ctx context.Context, errs Errors) (*model.Modalidad, error) {
	if isBlank(f.input.Modalidad) {
		errs.Add("modalidad", msgModalidadRequerida)
		return nil, nil
	}
	id, ok := ParseID(f.input.Modalidad)
	if !ok {
		errs.Add("modalidad", msgModalidadInvalida)
		return nil, nil
	}

	var m model.Modalidad
	err := model.ScopeAll.Apply(f.db.WithContext(ctx), "").First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errs.Add("modalidad", msgModalidadInvalida)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load modalidad %d: %w", id, err)
	}
	if !m.Estado {
		errs.Add("modalidad", msgModalidadInactiva)
		return nil, nil
	}
	return &m, nil
}

// carreraConNombre finds another carrera, active or not, holding nombre.
func (f *CarreraForm) carreraConNombre(ctx context.Context, nombre string) (*model.Carrera, error) {
	q := model.ScopeAll.Apply(f.db.WithContext(ctx), "").
		Preload("Modalidad").
		Where("LOWER(nombre) = LOWER(?)", nombre)
	if f.instance != nil {
		q = q.Where("id <> ?", f.instance.ID)
	}

	var existing model.Carrera
	err := q.Order("id").First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check carrera nombre: %w", err)
	}
	return &existing, nil
}

// Save writes the cleaned record in one transaction together with hooks.
func (f *CarreraForm) Save(ctx context.Context, hooks ...Hook) (*model.Carrera, error) {
	if f.result == nil || !f.result.IsValid() {
		return nil, ErrInvalidForm
	}
	c := f.result.Instance
	if err := f.saveWithTransaction(ctx, c, hooks); err != nil {
		return nil, err
	}
	return c, nil
}
