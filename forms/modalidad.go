package forms

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/institucion-api/model"
	"github.com/sahilchouksey/institucion-api/utils/validation"
	"gorm.io/gorm"
)

const msgModalidadDuplicada = "Ya existe una modalidad con este nombre."

// ModalidadInput is the writable part of a Modalidad.
type ModalidadInput struct {
	Nombre *string `json:"nombre"`
}

// FillFrom copies stored values into fields the client left out, turning a
// partial update into a full one.
func (in *ModalidadInput) FillFrom(m *model.Modalidad) {
	if in.Nombre == nil {
		nombre := m.Nombre
		in.Nombre = &nombre
	}
}

// ModalidadForm validates and saves a Modalidad.
type ModalidadForm struct {
	Base[model.Modalidad]
	input ModalidadInput
}

// NewModalidadForm binds input to instance. Pass a nil instance to create.
func NewModalidadForm(db *gorm.DB, v *validation.Validator, input ModalidadInput, instance *model.Modalidad) *ModalidadForm {
	return &ModalidadForm{
		Base:  newBase(db, v, instance),
		input: input,
	}
}

// ModalidadFields describes the Modalidad form
func ModalidadFields() []FieldMeta {
	return []FieldMeta{
		{
			Name:      "nombre",
			Label:     "Nombre de la Modalidad",
			Required:  true,
			HelpText:  "Nombre único de la modalidad (mínimo 3 caracteres)",
			MaxLength: validation.NombreMaxLength,
			Widget:    "TextInput",
		},
	}
}

// Validate cleans the input and checks name uniqueness across active and
// inactive modalidades, excluding the bound record.
// Only store failures are returned as errors.
func (f *ModalidadForm) Validate(ctx context.Context) (Result[model.Modalidad], error) {
	errs := Errors{}
	f.changes = nil

	nombre, ok := f.cleanNombre(f.input.Nombre, errs)
	if ok {
		taken, err := f.nombreTaken(ctx, nombre)
		if err != nil {
			return Result[model.Modalidad]{}, err
		}
		if taken {
			errs.Add("nombre", msgModalidadDuplicada)
		}
	}

	if errs.Any() {
		res := Invalid[model.Modalidad](errs)
		f.result = &res
		return res, nil
	}

	cleaned := &model.Modalidad{}
	if f.instance != nil {
		copied := *f.instance
		cleaned = &copied
		f.trackChange("nombre", f.instance.Nombre, nombre)
	} else {
		cleaned.Estado = true
	}
	cleaned.Nombre = nombre

	res := Valid(cleaned)
	f.result = &res
	return res, nil
}

func (f *ModalidadForm) nombreTaken(ctx context.Context, nombre string) (bool, error) {
	q := model.ScopeAll.Apply(f.db.WithContext(ctx).Model(&model.Modalidad{}), "").
		Where("LOWER(nombre) = LOWER(?)", nombre)
	if f.instance != nil {
		q = q.Where("id <> ?", f.instance.ID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check modalidad nombre: %w", err)
	}
	return count > 0, nil
}

// Save writes the cleaned record in one transaction together with hooks.
func (f *ModalidadForm) Save(ctx context.Context, hooks ...Hook) (*model.Modalidad, error) {
	if f.result == nil || !f.result.IsValid() {
		return nil, ErrInvalidForm
	}
	m := f.result.Instance
	if err := f.saveWithTransaction(ctx, m, hooks); err != nil {
		return nil, err
	}
	return m, nil
}
